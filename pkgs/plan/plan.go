// Package plan realizes a parsed script into concrete actions. Both
// backends (direct execution and script generation) render from the same
// realized actions, so they always agree on the evaluated argument values.
package plan

import (
	"github.com/vidcmd/vidcmd/pkgs/ast"
	"github.com/vidcmd/vidcmd/pkgs/diag"
	"github.com/vidcmd/vidcmd/pkgs/lexer"
	"github.com/vidcmd/vidcmd/pkgs/parser"
	"github.com/vidcmd/vidcmd/pkgs/types"
)

// Action is one fully-evaluated statement effect: source and destination
// paths, numeric and time bounds resolved to values.
type Action interface {
	isAction()
}

// PlayAction plays a clip, optionally bounded to a start/end range. Start
// and End are either both set or both nil.
type PlayAction struct {
	Source string
	Start  *types.TimePosition
	End    *types.TimePosition
}

// FrameAction extracts a single frame by index.
type FrameAction struct {
	Source string
	Index  int
	Dest   string
}

// ConcatAction joins two clips in order A, B.
type ConcatAction struct {
	SourceA string
	SourceB string
	Dest    string
}

// AudioAction extracts the audio of a sub-range.
type AudioAction struct {
	Source string
	Start  types.TimePosition
	End    types.TimePosition
	Dest   string
}

func (PlayAction) isAction()   {}
func (FrameAction) isAction()  {}
func (ConcatAction) isAction() {}
func (AudioAction) isAction()  {}

// Realize walks the program and evaluates every command's stored argument
// expressions against the parse environment. Statement order is preserved.
// An if statement evaluates both guards once; only time-vs-time equality
// realizes the guarded statement, any other outcome is a silent no-op.
// Evaluation errors abort the walk.
func Realize(program *ast.Node, env parser.Env) ([]Action, *diag.Error) {
	r := &realizer{env: env}
	if err := r.walk(program); err != nil {
		return nil, err
	}
	return r.actions, nil
}

type realizer struct {
	env     parser.Env
	actions []Action
}

func (r *realizer) walk(node *ast.Node) *diag.Error {
	switch node.Kind {
	case ast.Program:
		for _, child := range node.Children {
			if err := r.walk(child); err != nil {
				return err
			}
		}
		return nil

	case ast.Let, ast.Error:
		// A let's effect already happened during parsing; an error node
		// stands in for a statement that never parsed.
		return nil

	case ast.If:
		left, err := parser.Evaluate(node.Expr1, r.env)
		if err != nil {
			return err
		}
		right, err := parser.Evaluate(node.Expr2, r.env)
		if err != nil {
			return err
		}
		if left.Kind() == types.TimeKind && right.Kind() == types.TimeKind &&
			left.Time().Equal(right.Time()) {
			return r.walk(node.Children[0])
		}
		return nil

	case ast.Frame:
		source, err := r.evalString(node.Expr1, "frame source")
		if err != nil {
			return err
		}
		index, err := r.evalNumber(node.Expr2, "frame index")
		if err != nil {
			return err
		}
		r.actions = append(r.actions, FrameAction{Source: source, Index: index, Dest: node.Destination})
		return nil

	case ast.Concat:
		sourceA, err := r.evalString(node.Expr1, "concat source")
		if err != nil {
			return err
		}
		sourceB, err := r.evalString(node.Expr2, "concat source")
		if err != nil {
			return err
		}
		r.actions = append(r.actions, ConcatAction{SourceA: sourceA, SourceB: sourceB, Dest: node.Destination})
		return nil

	case ast.Audio:
		source, err := r.evalString(node.Expr1, "audio source")
		if err != nil {
			return err
		}
		start, err := r.evalTime(node.Expr2, "audio start")
		if err != nil {
			return err
		}
		end, err := r.evalTime(node.Expr3, "audio end")
		if err != nil {
			return err
		}
		r.actions = append(r.actions, AudioAction{Source: source, Start: start, End: end, Dest: node.Destination})
		return nil

	case ast.Play:
		source, err := r.evalString(node.Expr1, "play source")
		if err != nil {
			return err
		}
		action := PlayAction{Source: source}
		if len(node.Expr2) > 0 {
			start, err := r.evalTime(node.Expr2, "play start")
			if err != nil {
				return err
			}
			end, err := r.evalTime(node.Expr3, "play end")
			if err != nil {
				return err
			}
			action.Start, action.End = &start, &end
		}
		r.actions = append(r.actions, action)
		return nil
	}
	return nil
}

func (r *realizer) evalString(expr []lexer.Token, what string) (string, *diag.Error) {
	v, err := parser.Evaluate(expr, r.env)
	if err != nil {
		return "", err
	}
	if v.Kind() != types.StringKind {
		return "", r.typeError(expr, "%s must be a string, got %s", what, v.Kind())
	}
	return v.Str(), nil
}

func (r *realizer) evalNumber(expr []lexer.Token, what string) (int, *diag.Error) {
	v, err := parser.Evaluate(expr, r.env)
	if err != nil {
		return 0, err
	}
	if v.Kind() != types.NumberKind {
		return 0, r.typeError(expr, "%s must be a number, got %s", what, v.Kind())
	}
	return v.Num(), nil
}

func (r *realizer) evalTime(expr []lexer.Token, what string) (types.TimePosition, *diag.Error) {
	v, err := parser.Evaluate(expr, r.env)
	if err != nil {
		return types.TimePosition{}, err
	}
	if v.Kind() != types.TimeKind {
		return types.TimePosition{}, r.typeError(expr, "%s must be a time, got %s", what, v.Kind())
	}
	return v.Time(), nil
}

func (r *realizer) typeError(expr []lexer.Token, format string, args ...interface{}) *diag.Error {
	line, column := 0, 0
	if len(expr) > 0 {
		line, column = expr[0].Line, expr[0].Column
	}
	return diag.New(line, column, diag.TypeError, format, args...)
}
