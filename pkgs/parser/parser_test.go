package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vidcmd/vidcmd/pkgs/ast"
	"github.com/vidcmd/vidcmd/pkgs/diag"
	"github.com/vidcmd/vidcmd/pkgs/lexer"
	"github.com/vidcmd/vidcmd/pkgs/types"
)

func parse(t *testing.T, input string) (*ast.Node, *Parser) {
	t.Helper()
	tokens, errs := lexer.Tokenize(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	p := New(tokens)
	return p.ParseProgram(), p
}

func statementKinds(program *ast.Node) []ast.NodeKind {
	kinds := make([]ast.NodeKind, 0, len(program.Children))
	for _, child := range program.Children {
		kinds = append(kinds, child.Kind)
	}
	return kinds
}

func TestStatementShapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []ast.NodeKind
	}{
		{
			name:     "let then command",
			input:    `let x = "a.mp4"; play x;`,
			expected: []ast.NodeKind{ast.Let, ast.Play},
		},
		{
			name:     "all four commands",
			input:    `frame "a.mp4" 5 to "f.png"; concat "a.mp4" "b.mp4" to "c.mp4"; audio "a.mp4" "00:10" "00:20" to "a.mp3"; play "a.mp4";`,
			expected: []ast.NodeKind{ast.Frame, ast.Concat, ast.Audio, ast.Play},
		},
		{
			name:     "if guard",
			input:    `if "00:10" == "00:10" then play "a.mp4";`,
			expected: []ast.NodeKind{ast.If},
		},
		{
			name:     "empty program",
			input:    "",
			expected: []ast.NodeKind{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			program, p := parse(t, test.input)
			if len(p.Errors()) != 0 {
				t.Fatalf("unexpected parse errors: %v", p.Errors())
			}
			got := statementKinds(program)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("statement kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLetBindsDuringParse(t *testing.T) {
	_, p := parse(t, `let x = "a" + "b"; play x;`)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	v, ok := p.Env()["x"]
	if !ok {
		t.Fatal("expected x to be bound")
	}
	if v.Kind() != types.StringKind || v.Str() != "ab" {
		t.Errorf("expected x = %q, got %v", "ab", v)
	}
}

func TestLetRebinds(t *testing.T) {
	_, p := parse(t, `let x = 1; let x = 2;`)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if v := p.Env()["x"]; v.Num() != 2 {
		t.Errorf("expected x = 2, got %v", v)
	}
}

func TestLetEvaluationErrorRecovers(t *testing.T) {
	program, p := parse(t, `let x = 1 + "a"; play "b.mp4";`)
	errs := p.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Kind != diag.TypeError {
		t.Errorf("expected TypeError, got %s", errs[0].Kind)
	}
	if _, ok := p.Env()["x"]; ok {
		t.Error("x must not be bound after a failed evaluation")
	}
	expected := []ast.NodeKind{ast.Error, ast.Play}
	if diff := cmp.Diff(expected, statementKinds(program)); diff != "" {
		t.Errorf("statement kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestPlayArity(t *testing.T) {
	program, p := parse(t, `play "a.mp4"; play "a.mp4" "00:10" "00:20";`)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	whole := program.Children[0]
	if len(whole.Expr2) != 0 || len(whole.Expr3) != 0 {
		t.Errorf("whole-clip play must not carry bounds: %s", whole)
	}
	bounded := program.Children[1]
	if ast.ExprString(bounded.Expr2) != "00:10" || ast.ExprString(bounded.Expr3) != "00:20" {
		t.Errorf("bounded play carries wrong bounds: %s", bounded)
	}
}

func TestParenthesesFlatten(t *testing.T) {
	program, p := parse(t, `let x = ("a" + "b") + "c";`)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	expr := program.Children[0].Expr1
	expected := []lexer.TokenType{lexer.STRING, lexer.PLUS, lexer.STRING, lexer.PLUS, lexer.STRING}
	got := make([]lexer.TokenType, 0, len(expr))
	for _, tok := range expr {
		got = append(got, tok.Type)
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("flattened expression mismatch (-want +got):\n%s", diff)
	}
}

func TestIfAttachesGuardedStatement(t *testing.T) {
	program, p := parse(t, `if "00:10" == "00:10" then play "a.mp4";`)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	node := program.Children[0]
	if len(node.Children) != 1 || node.Children[0].Kind != ast.Play {
		t.Fatalf("expected one guarded play statement, got %v", node.Children)
	}
}

func TestRecoveryAfterMissingSemicolon(t *testing.T) {
	program, p := parse(t, "frame \"a.mp4\" 5 to \"f.png\"\nif \"00:10\" == \"00:10\" then play \"b.mp4\";")
	errs := p.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Kind != diag.UnexpectedToken {
		t.Errorf("expected UnexpectedToken, got %s", errs[0].Kind)
	}
	expected := []ast.NodeKind{ast.Error, ast.If}
	if diff := cmp.Diff(expected, statementKinds(program)); diff != "" {
		t.Errorf("statement kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidStatementRecovers(t *testing.T) {
	program, p := parse(t, `5; play "a.mp4";`)
	errs := p.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Kind != diag.InvalidStatement {
		t.Errorf("expected InvalidStatement, got %s", errs[0].Kind)
	}
	expected := []ast.NodeKind{ast.Error, ast.Play}
	if diff := cmp.Diff(expected, statementKinds(program)); diff != "" {
		t.Errorf("statement kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorAtEndOfInputSaysEOF(t *testing.T) {
	_, p := parse(t, `frame "a.mp4" 5 to "f.png"`)
	errs := p.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	want := "Expected SEMICOLON, got EOF"
	if errs[0].Message != want {
		t.Errorf("expected message %q, got %q", want, errs[0].Message)
	}
}
