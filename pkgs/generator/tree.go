package generator

import (
	"fmt"
	"strings"

	"github.com/vidcmd/vidcmd/pkgs/ast"
)

// Tree renders the parse tree as an anytree construction script: one
// `node_N = Node("label", parent=node_M)` line per node, pre-order, with
// ids assigned from a counter that never resets within one dump. Error
// nodes appear with the label ERROR so a recovered statement is still
// visible in the dump.
func Tree(program *ast.Node) string {
	var b strings.Builder
	b.WriteString("from anytree import Node\n\n")
	d := &treeDumper{out: &b}
	d.dump(program, "")
	return b.String()
}

type treeDumper struct {
	out     *strings.Builder
	counter int
}

// next assigns the id for the node about to be written.
func (d *treeDumper) next() string {
	id := fmt.Sprintf("node_%d", d.counter)
	d.counter++
	return id
}

func (d *treeDumper) write(id, label, parent string) {
	if parent == "" {
		fmt.Fprintf(d.out, "%s = Node(\"%s\")\n", id, label)
		return
	}
	fmt.Fprintf(d.out, "%s = Node(\"%s\", parent=%s)\n", id, label, parent)
}

func (d *treeDumper) dump(node *ast.Node, parent string) {
	id := d.next()

	label := node.Kind.String()
	if node.Kind == ast.Error {
		label = "ERROR"
	}
	d.write(id, label, parent)

	switch node.Kind {
	case ast.Let:
		d.write(d.next(), "var: "+node.VarName, id)
		d.write(d.next(), "expr: "+ast.ExprString(node.Expr1), id)
	case ast.If:
		d.write(d.next(), "left: "+ast.ExprString(node.Expr1), id)
		d.write(d.next(), "right: "+ast.ExprString(node.Expr2), id)
	case ast.Frame, ast.Concat:
		d.write(d.next(), "arg1: "+ast.ExprString(node.Expr1), id)
		d.write(d.next(), "arg2: "+ast.ExprString(node.Expr2), id)
		d.write(d.next(), "dest: "+node.Destination, id)
	case ast.Audio:
		d.write(d.next(), "arg1: "+ast.ExprString(node.Expr1), id)
		d.write(d.next(), "arg2: "+ast.ExprString(node.Expr2), id)
		d.write(d.next(), "arg3: "+ast.ExprString(node.Expr3), id)
		d.write(d.next(), "dest: "+node.Destination, id)
	case ast.Play:
		d.write(d.next(), "arg1: "+ast.ExprString(node.Expr1), id)
		if len(node.Expr2) > 0 {
			d.write(d.next(), "arg2: "+ast.ExprString(node.Expr2), id)
			d.write(d.next(), "arg3: "+ast.ExprString(node.Expr3), id)
		}
	}

	for _, child := range node.Children {
		d.dump(child, id)
	}
}
