// Package interpreter executes realized actions directly by invoking the
// configured media player and transcoder as external processes.
package interpreter

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/vidcmd/vidcmd/pkgs/plan"
)

// Intermediate files produced while joining two clips. Concatenation with
// stream copy requires both inputs in one codec, so each source is
// re-encoded first.
const (
	convertedA = "converted_0.mp4"
	convertedB = "converted_1.mp4"
)

// Invocation is one external process call: an executable name resolved via
// PATH and its argument list.
type Invocation struct {
	Name string
	Args []string
}

func (inv Invocation) String() string {
	s := inv.Name
	for _, arg := range inv.Args {
		s += " " + arg
	}
	return s
}

// Runner executes a single invocation. The interpreter talks to processes
// only through this interface so tests can record instead of exec.
type Runner interface {
	Run(inv Invocation) error
}

// ExecRunner runs invocations as real child processes with inherited
// standard streams.
type ExecRunner struct {
	Debug bool
}

func (r ExecRunner) Run(inv Invocation) error {
	if r.Debug {
		fmt.Fprintf(os.Stderr, "Executing: %s\n", inv)
	}
	cmd := exec.Command(inv.Name, inv.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", inv.Name, err)
	}
	return nil
}

// Options configures the external tools the interpreter drives.
type Options struct {
	Player     string // media player executable, e.g. vlc
	Transcoder string // transcoder executable, e.g. ffmpeg
	ListFile   string // concat demuxer list file path
	Runner     Runner // nil means ExecRunner
}

// Interpreter renders actions to tool invocations and runs them in order.
type Interpreter struct {
	player     string
	transcoder string
	listFile   string
	runner     Runner
}

// New creates an interpreter with the given options.
func New(opts Options) *Interpreter {
	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Interpreter{
		player:     opts.Player,
		transcoder: opts.Transcoder,
		listFile:   opts.ListFile,
		runner:     runner,
	}
}

// Execute runs every action in order. The first failing invocation stops
// execution and its error is returned.
func (i *Interpreter) Execute(actions []plan.Action) error {
	for _, action := range actions {
		if err := i.execute(action); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(action plan.Action) error {
	switch a := action.(type) {
	case plan.PlayAction:
		return i.runner.Run(i.playInvocation(a))
	case plan.FrameAction:
		return i.runner.Run(i.frameInvocation(a))
	case plan.AudioAction:
		return i.runner.Run(i.audioInvocation(a))
	case plan.ConcatAction:
		return i.executeConcat(a)
	}
	return fmt.Errorf("unsupported action %T", action)
}

// playInvocation builds the player call. A bounded play passes the range
// as whole seconds, which is the granularity the time type carries.
func (i *Interpreter) playInvocation(a plan.PlayAction) Invocation {
	args := []string{a.Source}
	if a.Start != nil {
		args = append(args,
			"--start-time", strconv.Itoa(a.Start.TotalSeconds()),
			"--stop-time", strconv.Itoa(a.End.TotalSeconds()),
		)
	}
	return Invocation{Name: i.player, Args: args}
}

func (i *Interpreter) frameInvocation(a plan.FrameAction) Invocation {
	return Invocation{Name: i.transcoder, Args: []string{
		"-i", a.Source,
		"-vf", fmt.Sprintf(`select=eq(n\,%d)`, a.Index),
		"-vframes", "1",
		a.Dest,
	}}
}

func (i *Interpreter) audioInvocation(a plan.AudioAction) Invocation {
	return Invocation{Name: i.transcoder, Args: []string{
		"-i", a.Source,
		"-ss", a.Start.String(),
		"-to", a.End.String(),
		"-vn", "-acodec", "mp3",
		a.Dest,
	}}
}

// executeConcat joins two clips: re-encode both sources to a common codec,
// write the concat demuxer list, then stream-copy the joined output.
func (i *Interpreter) executeConcat(a plan.ConcatAction) error {
	if err := i.runner.Run(i.convertInvocation(a.SourceA, convertedA)); err != nil {
		return err
	}
	if err := i.runner.Run(i.convertInvocation(a.SourceB, convertedB)); err != nil {
		return err
	}
	list := fmt.Sprintf("file '%s'\nfile '%s'\n", convertedA, convertedB)
	if err := os.WriteFile(i.listFile, []byte(list), 0o644); err != nil {
		return fmt.Errorf("writing concat list %s: %w", i.listFile, err)
	}
	return i.runner.Run(Invocation{Name: i.transcoder, Args: []string{
		"-f", "concat", "-safe", "0",
		"-i", i.listFile,
		"-c", "copy",
		a.Dest,
	}})
}

func (i *Interpreter) convertInvocation(source, dest string) Invocation {
	return Invocation{Name: i.transcoder, Args: []string{
		"-i", source,
		"-c:v", "libx264",
		"-c:a", "aac",
		dest,
	}}
}
