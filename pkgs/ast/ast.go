package ast

import (
	"fmt"
	"strings"

	"github.com/vidcmd/vidcmd/pkgs/lexer"
)

// NodeKind discriminates statement nodes. Walkers switch exhaustively over
// this tag; adding a kind means updating the evaluating walk, both
// backends, and the structure dump.
type NodeKind int

const (
	Program NodeKind = iota
	Let
	If
	Frame
	Concat
	Audio
	Play
	Error
)

var kindNames = [...]string{
	Program: "program",
	Let:     "let",
	If:      "if",
	Frame:   "frame",
	Concat:  "concat",
	Audio:   "audio",
	Play:    "play",
	Error:   "error",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) && int(k) >= 0 {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is one statement in the tree. Ownership is strictly hierarchical:
// only Program and If carry children (Program the whole top-level
// statement sequence, If exactly one guarded statement). The three
// expression slots hold raw, not-yet-evaluated token runs whose meaning is
// kind-specific; Destination is the output filename for frame/concat/audio.
// Nodes are never mutated after the statement that created them finishes
// parsing.
type Node struct {
	Kind        NodeKind
	VarName     string // Let only
	Expr1       []lexer.Token
	Expr2       []lexer.Token
	Expr3       []lexer.Token
	Destination string
	Children    []*Node
}

// NewProgram creates an empty root node.
func NewProgram() *Node {
	return &Node{Kind: Program}
}

// NewError creates the placeholder node a recovered statement leaves
// behind.
func NewError() *Node {
	return &Node{Kind: Error}
}

// ExprString renders a raw expression token run as space-joined literals,
// for the structure dump and diagnostics.
func ExprString(expr []lexer.Token) string {
	if len(expr) == 0 {
		return ""
	}
	parts := make([]string, len(expr))
	for i, tok := range expr {
		parts[i] = tok.Value
	}
	return strings.Join(parts, " ")
}

// String gives a compact one-line description of the node, mainly for test
// failure output.
func (n *Node) String() string {
	switch n.Kind {
	case Program:
		return fmt.Sprintf("program(%d statements)", len(n.Children))
	case Let:
		return fmt.Sprintf("let %s = %s", n.VarName, ExprString(n.Expr1))
	case If:
		return fmt.Sprintf("if %s == %s", ExprString(n.Expr1), ExprString(n.Expr2))
	case Frame, Concat, Audio:
		return fmt.Sprintf("%s %s %s to %q", n.Kind, ExprString(n.Expr1), ExprString(n.Expr2), n.Destination)
	case Play:
		if len(n.Expr2) == 0 {
			return fmt.Sprintf("play %s", ExprString(n.Expr1))
		}
		return fmt.Sprintf("play %s %s %s", ExprString(n.Expr1), ExprString(n.Expr2), ExprString(n.Expr3))
	case Error:
		return "error"
	}
	return n.Kind.String()
}
