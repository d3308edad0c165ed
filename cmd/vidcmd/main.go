package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vidcmd/vidcmd/internal/config"
	"github.com/vidcmd/vidcmd/internal/log"
	"github.com/vidcmd/vidcmd/pkgs/engine"
	"github.com/vidcmd/vidcmd/pkgs/interpreter"
	"github.com/vidcmd/vidcmd/pkgs/lexer"
)

// Build-time variables - can be set via ldflags
var (
	Version   string = "dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
)

// Global flags
var (
	scriptFile string
	scriptOut  string
	debug      bool
)

var cfg config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vidcmd [flags]",
	Short: "Compile video editing scripts to Python",
	Long: `vidcmd compiles simple video editing scripts into executable Python.
A script is a sequence of play, frame, concat, and audio commands with let
bindings and if guards. A successful compile writes the generated Python
script and a parse tree dump; a script with errors writes nothing.
By default, it looks for script.vid in the current directory.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: setup,
	RunE:              compileCommand,
}

var runCmd = &cobra.Command{
	Use:   "run [flags]",
	Short: "Execute a script directly",
	Long: `Execute a script immediately by invoking the configured media player
and transcoder, without writing the Python script first. Useful for trying
edits out before generating anything.`,
	Args: cobra.NoArgs,
	RunE: runCommand,
}

var scanCmd = &cobra.Command{
	Use:   "scan [flags]",
	Short: "Tokenize a script and print the token stream",
	Long: `Tokenize a script and print one token per line with its position.
Lexical errors are reported but do not stop the scan, so the whole stream
is always shown.`,
	Args: cobra.NoArgs,
	RunE: scanCommand,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display version, build time, and git commit information for vidcmd.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vidcmd %s\n", Version)
		fmt.Printf("Built: %s\n", BuildTime)
		fmt.Printf("Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&scriptFile, "file", "f", "script.vid", "Path to script file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")

	rootCmd.Flags().StringVarP(&scriptOut, "output", "o", "", "Generated Python script path (default from config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the config and initializes logging before any subcommand
// runs.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	cfg = loaded
	logOpts := log.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	}
	if debug {
		logOpts.Level = "debug"
	}
	log.Init(logOpts)
	return nil
}

// compile reads and compiles the script file, reporting every diagnostic
// on stderr. The returned result is nil when the script had errors.
func compile() (*engine.Result, error) {
	content, err := os.ReadFile(scriptFile)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", scriptFile, err)
	}

	result := engine.Compile(string(content))
	if result.HasErrors() {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return nil, fmt.Errorf("%s: %d error(s)", scriptFile, len(result.Errors))
	}
	return result, nil
}

func compileCommand(cmd *cobra.Command, args []string) error {
	logger := log.WithComponent("compile")

	result, err := compile()
	if err != nil {
		return err
	}

	actions, planErr := result.Realize()
	if planErr != nil {
		fmt.Fprintln(os.Stderr, planErr)
		return fmt.Errorf("%s: 1 error(s)", scriptFile)
	}
	logger.Debug("realized script", "actions", len(actions))

	scriptPath := cfg.Artifacts.Script
	if scriptOut != "" {
		scriptPath = scriptOut
	}
	artifacts := engine.Artifacts{
		Script: scriptPath,
		Tree:   cfg.Artifacts.Tree,
		Player: cfg.Tools.Player,
	}
	if err := engine.WriteArtifacts(result, actions, artifacts); err != nil {
		return err
	}

	fmt.Printf("Generated Python script: %s\n", scriptPath)
	return nil
}

func runCommand(cmd *cobra.Command, args []string) error {
	logger := log.WithComponent("run")

	result, err := compile()
	if err != nil {
		return err
	}

	actions, planErr := result.Realize()
	if planErr != nil {
		fmt.Fprintln(os.Stderr, planErr)
		return fmt.Errorf("%s: 1 error(s)", scriptFile)
	}
	logger.Debug("realized script", "actions", len(actions))

	i := interpreter.New(interpreter.Options{
		Player:     cfg.Tools.Player,
		Transcoder: cfg.Tools.Transcoder,
		ListFile:   cfg.Artifacts.ListFile,
		Runner:     interpreter.ExecRunner{Debug: debug},
	})
	return i.Execute(actions)
}

func scanCommand(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(scriptFile)
	if err != nil {
		return fmt.Errorf("error reading file %s: %w", scriptFile, err)
	}

	tokens, lexErrors := lexer.Tokenize(string(content))
	for _, tok := range tokens {
		fmt.Printf("%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Type, tok.Value)
	}
	for _, e := range lexErrors {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(lexErrors) > 0 {
		return fmt.Errorf("%s: %d error(s)", scriptFile, len(lexErrors))
	}
	return nil
}
