package lexer

import "fmt"

// TokenType represents the type of token in a vidcmd script.
type TokenType int

const (
	// Special tokens
	EOP TokenType = iota // end-of-program marker, always appended

	// Keywords
	LET     // let - variable binding
	IF      // if - conditional statement
	THEN    // then - guarded statement separator
	TO      // to - destination separator in commands
	KEYWORD // frame | concat | audio | play
	PRINT   // print - legacy keyword, not used by the grammar

	// Literals
	ID     // identifiers bound by let
	INT    // integer literals: 5, 42
	STRING // quoted strings: "video.mp4"
	TIME   // quoted time positions: "10:30"

	// Operators and punctuation
	ASSIGN    // =
	EQUALS    // ==
	PLUS      // +
	STAR      // *
	LPAREN    // (
	RPAREN    // )
	SEMICOLON // ;
)

var tokenNames = [...]string{
	EOP:       "EOP",
	LET:       "LET",
	IF:        "IF",
	THEN:      "THEN",
	TO:        "TO",
	KEYWORD:   "KEYWORD",
	PRINT:     "PRINT",
	ID:        "ID",
	INT:       "INT",
	STRING:    "STRING",
	TIME:      "TIME",
	ASSIGN:    "ASSIGN",
	EQUALS:    "EQUALS",
	PLUS:      "PLUS",
	STAR:      "STAR",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	SEMICOLON: "SEMICOLON",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) && int(t) >= 0 {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords maps alphabetic words to their token types. Words not listed
// here lex as identifiers.
var keywords = map[string]TokenType{
	"let":    LET,
	"if":     IF,
	"then":   THEN,
	"to":     TO,
	"print":  PRINT,
	"frame":  KEYWORD,
	"concat": KEYWORD,
	"audio":  KEYWORD,
	"play":   KEYWORD,
}

// Token represents a single lexical unit with position information.
// Columns are 1-based within a line.
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
}

// Position returns a formatted position string for error reporting.
func (t Token) Position() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}
