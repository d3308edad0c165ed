// Package config holds the user-editable settings: which external tools
// run the media commands, what the generated artifacts are called, and
// how logging behaves. Settings come from an optional per-user YAML file
// with environment variables as read-only overrides on top.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToolsConfig names the external executables the direct execution path
// invokes. Both are resolved via PATH.
type ToolsConfig struct {
	Player     string `yaml:"player"`
	Transcoder string `yaml:"transcoder"`
}

// ArtifactsConfig names the files a successful compile writes.
type ArtifactsConfig struct {
	Script   string `yaml:"script"`    // generated Python script
	Tree     string `yaml:"tree"`      // parse tree dump
	ListFile string `yaml:"list_file"` // concat demuxer list
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type Config struct {
	Tools     ToolsConfig     `yaml:"tools"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() Config {
	return Config{
		Tools:     ToolsConfig{Player: "vlc", Transcoder: "ffmpeg"},
		Artifacts: ArtifactsConfig{Script: "generated_video_script.py", Tree: "ast_tree.py", ListFile: "files.txt"},
		Logging:   LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvPlayer     = "VIDCMD_PLAYER"
	EnvTranscoder = "VIDCMD_TRANSCODER"
	EnvScript     = "VIDCMD_SCRIPT_OUT"
	EnvTree       = "VIDCMD_TREE_OUT"
	EnvListFile   = "VIDCMD_LIST_FILE"
	EnvLogLevel   = "VIDCMD_LOG_LEVEL"
	EnvLogFormat  = "VIDCMD_LOG_FORMAT"
	EnvLogSource  = "VIDCMD_LOG_SOURCE"
	EnvLogFile    = "VIDCMD_LOG_FILE"
)

// Path returns the per-user config file path.
func Path() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "vidcmd")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "vidcmd")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "vidcmd")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file if present, applies defaults, and
// merges environment overrides. A missing or malformed file falls back to
// defaults silently; overrides still apply.
func Load() (Config, error) {
	cfg := Defaults()
	path, err := Path()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML, creating the config directory when
// needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *Config, src *Config) {
	if strings.TrimSpace(src.Tools.Player) != "" {
		dst.Tools.Player = strings.TrimSpace(src.Tools.Player)
	}
	if strings.TrimSpace(src.Tools.Transcoder) != "" {
		dst.Tools.Transcoder = strings.TrimSpace(src.Tools.Transcoder)
	}
	if strings.TrimSpace(src.Artifacts.Script) != "" {
		dst.Artifacts.Script = strings.TrimSpace(src.Artifacts.Script)
	}
	if strings.TrimSpace(src.Artifacts.Tree) != "" {
		dst.Artifacts.Tree = strings.TrimSpace(src.Artifacts.Tree)
	}
	if strings.TrimSpace(src.Artifacts.ListFile) != "" {
		dst.Artifacts.ListFile = strings.TrimSpace(src.Artifacts.ListFile)
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvPlayer)); v != "" {
		cfg.Tools.Player = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTranscoder)); v != "" {
		cfg.Tools.Transcoder = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvScript)); v != "" {
		cfg.Artifacts.Script = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTree)); v != "" {
		cfg.Artifacts.Tree = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvListFile)); v != "" {
		cfg.Artifacts.ListFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
