package parser

import (
	"strconv"

	"github.com/vidcmd/vidcmd/pkgs/diag"
	"github.com/vidcmd/vidcmd/pkgs/lexer"
	"github.com/vidcmd/vidcmd/pkgs/types"
)

// Env maps bound identifiers to their values. Keys are unique; a second
// let for the same name rebinds it.
type Env map[string]types.Value

// Evaluate reduces an already-delimited expression token run to a single
// value. The run is the flattened form the parser produces, so evaluation
// is a strict left-to-right fold with no operator precedence.
//
// Operator rules:
//
//	string + string -> concatenation
//	time   + time   -> sum
//	time   * number -> scaled time (either operand order)
//
// Any other combination is a TypeError. Errors abort this expression only;
// the caller decides what happens next.
func Evaluate(expr []lexer.Token, env Env) (types.Value, *diag.Error) {
	if len(expr) == 0 {
		return types.Value{}, nil
	}

	result, err := evalOperand(expr[0], env)
	if err != nil {
		return types.Value{}, err
	}

	for i := 1; i+1 < len(expr); i += 2 {
		op := expr[i]
		rhs, err := evalOperand(expr[i+1], env)
		if err != nil {
			return types.Value{}, err
		}

		switch op.Type {
		case lexer.PLUS:
			switch {
			case result.Kind() == types.StringKind && rhs.Kind() == types.StringKind:
				result = types.String(result.Str() + rhs.Str())
			case result.Kind() == types.TimeKind && rhs.Kind() == types.TimeKind:
				result = types.Time(result.Time().Add(rhs.Time()))
			default:
				return types.Value{}, diag.New(op.Line, op.Column, diag.TypeError,
					"Invalid + operands")
			}
		case lexer.STAR:
			switch {
			case result.Kind() == types.TimeKind && rhs.Kind() == types.NumberKind:
				scaled, serr := result.Time().Scale(rhs.Num())
				if serr != nil {
					return types.Value{}, diag.New(op.Line, op.Column, diag.TypeError, "%s", serr)
				}
				result = types.Time(scaled)
			case result.Kind() == types.NumberKind && rhs.Kind() == types.TimeKind:
				scaled, serr := rhs.Time().Scale(result.Num())
				if serr != nil {
					return types.Value{}, diag.New(op.Line, op.Column, diag.TypeError, "%s", serr)
				}
				result = types.Time(scaled)
			default:
				return types.Value{}, diag.New(op.Line, op.Column, diag.TypeError,
					"Multiplication only defined for time * number")
			}
		}
	}
	return result, nil
}

// evalOperand resolves one literal or identifier token to a value.
func evalOperand(tok lexer.Token, env Env) (types.Value, *diag.Error) {
	switch tok.Type {
	case lexer.INT:
		n, err := strconv.Atoi(tok.Value)
		if err != nil {
			return types.Value{}, diag.New(tok.Line, tok.Column, diag.InvalidExpression,
				"Invalid integer literal: %s", tok.Value)
		}
		return types.Number(n), nil
	case lexer.STRING:
		return types.String(tok.Value), nil
	case lexer.TIME:
		t, err := types.ParseTime(tok.Value)
		if err != nil {
			return types.Value{}, diag.New(tok.Line, tok.Column, diag.InvalidTime,
				"Invalid time format: %s", tok.Value)
		}
		return types.Time(t), nil
	case lexer.ID:
		if v, ok := env[tok.Value]; ok {
			return v, nil
		}
		return types.Value{}, diag.New(tok.Line, tok.Column, diag.UnknownIdentifier,
			"Unknown identifier: %s", tok.Value)
	}
	return types.Value{}, diag.New(tok.Line, tok.Column, diag.InvalidExpression,
		"Expected number, string, time, or identifier")
}
