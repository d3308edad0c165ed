package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vidcmd/vidcmd/pkgs/diag"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	return types
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{
			input:    `let x = "clip.mp4";`,
			expected: []TokenType{LET, ID, ASSIGN, STRING, SEMICOLON, EOP},
		},
		{
			input:    `play x;`,
			expected: []TokenType{KEYWORD, ID, SEMICOLON, EOP},
		},
		{
			input:    `frame x 5 to "shot.png";`,
			expected: []TokenType{KEYWORD, ID, INT, TO, STRING, SEMICOLON, EOP},
		},
		{
			input:    `if a == b then play a;`,
			expected: []TokenType{IF, ID, EQUALS, ID, THEN, KEYWORD, ID, SEMICOLON, EOP},
		},
		{
			input:    `audio x "00:10" "01:30" to "out.mp3";`,
			expected: []TokenType{KEYWORD, ID, TIME, TIME, TO, STRING, SEMICOLON, EOP},
		},
		{
			input:    `("a" + "b") * 2`,
			expected: []TokenType{LPAREN, STRING, PLUS, STRING, RPAREN, STAR, INT, EOP},
		},
		{
			input:    `print x;`,
			expected: []TokenType{PRINT, ID, SEMICOLON, EOP},
		},
		{
			input:    "",
			expected: []TokenType{EOP},
		},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			tokens, errs := Tokenize(test.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if diff := cmp.Diff(test.expected, tokenTypes(tokens)); diff != "" {
				t.Errorf("token types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuotedLiterals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Token
	}{
		{
			name:     "string literal",
			input:    `"video.mp4"`,
			expected: Token{Type: STRING, Value: "video.mp4", Line: 1, Column: 1},
		},
		{
			name:     "time literal",
			input:    `"10:30"`,
			expected: Token{Type: TIME, Value: "10:30", Line: 1, Column: 1},
		},
		{
			name:     "time with overflow seconds",
			input:    `"0:90"`,
			expected: Token{Type: TIME, Value: "0:90", Line: 1, Column: 1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, errs := Tokenize(test.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if diff := cmp.Diff(test.expected, tokens[0]); diff != "" {
				t.Errorf("token mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	tokens, errs := Tokenize("Frame frame FRAME")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := []TokenType{ID, KEYWORD, ID, EOP}
	if diff := cmp.Diff(expected, tokenTypes(tokens)); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestComments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "line comment",
			input:    "# just words\nplay x;",
			expected: []TokenType{KEYWORD, ID, SEMICOLON, EOP},
		},
		{
			name:     "block comment",
			input:    "## spans\nlines ## play x;",
			expected: []TokenType{KEYWORD, ID, SEMICOLON, EOP},
		},
		{
			name:     "comment only",
			input:    "# nothing else",
			expected: []TokenType{EOP},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, errs := Tokenize(test.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if diff := cmp.Diff(test.expected, tokenTypes(tokens)); diff != "" {
				t.Errorf("token types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEndOfProgramMarker(t *testing.T) {
	tokens, errs := Tokenize("play x; $ play y;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// The $ marker lexes as an EOP token in place; the final EOP is still
	// appended after the rest of the input.
	expected := []TokenType{KEYWORD, ID, SEMICOLON, EOP, KEYWORD, ID, SEMICOLON, EOP}
	if diff := cmp.Diff(expected, tokenTypes(tokens)); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestLexicalErrorKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  diag.Kind
	}{
		{name: "unclosed string", input: `play "clip`, kind: diag.UnclosedString},
		{name: "empty string", input: `play "";`, kind: diag.EmptyString},
		{name: "invalid time", input: `play "1:xx";`, kind: diag.InvalidTime},
		{name: "unterminated block comment", input: "## never ends", kind: diag.UnterminatedComment},
		{name: "invalid character", input: "play x @ 5;", kind: diag.InvalidCharacter},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, errs := Tokenize(test.input)
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
			}
			if errs[0].Kind != test.kind {
				t.Errorf("expected kind %s, got %s", test.kind, errs[0].Kind)
			}
		})
	}
}

func TestErrorsDoNotAbortScan(t *testing.T) {
	tokens, errs := Tokenize("play @ x;\nplay y;")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	expected := []TokenType{KEYWORD, ID, SEMICOLON, KEYWORD, ID, SEMICOLON, EOP}
	if diff := cmp.Diff(expected, tokenTypes(tokens)); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestPositions(t *testing.T) {
	tokens, errs := Tokenize("let x = 5;\nplay y;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := []Token{
		{Type: LET, Value: "let", Line: 1, Column: 1},
		{Type: ID, Value: "x", Line: 1, Column: 5},
		{Type: ASSIGN, Value: "=", Line: 1, Column: 7},
		{Type: INT, Value: "5", Line: 1, Column: 9},
		{Type: SEMICOLON, Value: ";", Line: 1, Column: 10},
		{Type: KEYWORD, Value: "play", Line: 2, Column: 1},
		{Type: ID, Value: "y", Line: 2, Column: 6},
		{Type: SEMICOLON, Value: ";", Line: 2, Column: 7},
	}
	if diff := cmp.Diff(expected, tokens[:len(tokens)-1]); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	if last := tokens[len(tokens)-1]; last.Type != EOP {
		t.Errorf("expected trailing EOP, got %s", last.Type)
	}
}
