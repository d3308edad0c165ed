// Package engine ties the front end together: one Compile call lexes,
// parses, and collects every diagnostic, and the result feeds whichever
// backend the caller wants.
package engine

import (
	"fmt"
	"os"

	"github.com/vidcmd/vidcmd/pkgs/ast"
	"github.com/vidcmd/vidcmd/pkgs/diag"
	"github.com/vidcmd/vidcmd/pkgs/generator"
	"github.com/vidcmd/vidcmd/pkgs/lexer"
	"github.com/vidcmd/vidcmd/pkgs/parser"
	"github.com/vidcmd/vidcmd/pkgs/plan"
)

// Result holds everything one compilation produced. Program is always a
// valid tree even for broken input; Errors decides whether any backend
// may run.
type Result struct {
	Program *ast.Node
	Env     parser.Env
	Tokens  []lexer.Token
	Errors  []*diag.Error
}

// HasErrors reports whether any stage recorded a diagnostic. Backends are
// gated on this: no artifact is produced and nothing executes for a
// script with errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Compile runs the full front end over one script. Lexical errors come
// first in Errors, then parse and evaluation errors in source order. The
// parse always runs, even when the lexer reported problems, so a single
// compile reports as much as possible.
func Compile(source string) *Result {
	tokens, lexErrors := lexer.Tokenize(source)

	p := parser.New(tokens)
	program := p.ParseProgram()

	errors := make([]*diag.Error, 0, len(lexErrors)+len(p.Errors()))
	errors = append(errors, lexErrors...)
	errors = append(errors, p.Errors()...)

	return &Result{
		Program: program,
		Env:     p.Env(),
		Tokens:  tokens,
		Errors:  errors,
	}
}

// Realize runs the realization walk over the compiled program. Call only
// on an error-free result.
func (r *Result) Realize() ([]plan.Action, *diag.Error) {
	return plan.Realize(r.Program, r.Env)
}

// Artifacts names the files WriteArtifacts produces and the player the
// generated script invokes.
type Artifacts struct {
	Script string // generated Python script path
	Tree   string // parse tree dump path
	Player string // media player named in the script's play calls
}

// WriteArtifacts renders both backend artifacts for a successful compile:
// the parse tree dump and the generated Python script.
func WriteArtifacts(result *Result, actions []plan.Action, a Artifacts) error {
	if err := os.WriteFile(a.Tree, []byte(generator.Tree(result.Program)), 0o644); err != nil {
		return fmt.Errorf("writing tree dump %s: %w", a.Tree, err)
	}
	py := generator.Python{Player: a.Player}
	if err := os.WriteFile(a.Script, []byte(py.Render(actions)), 0o644); err != nil {
		return fmt.Errorf("writing Python script %s: %w", a.Script, err)
	}
	return nil
}
