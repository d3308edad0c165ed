package lexer

import (
	"strings"

	"github.com/vidcmd/vidcmd/pkgs/diag"
	"github.com/vidcmd/vidcmd/pkgs/types"
)

// Character classification lookup tables.
var (
	isLetter [256]bool
	isDigit  [256]bool
	isAlnum  [256]bool
)

func init() {
	for i := 0; i < 256; i++ {
		ch := byte(i)
		isLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isDigit[i] = '0' <= ch && ch <= '9'
		isAlnum[i] = isLetter[i] || isDigit[i]
	}
}

// Lexer tokenizes vidcmd source in a single left-to-right scan with one
// character of lookahead. Errors never abort the scan; the full token list
// and the accumulated errors are both returned so a script's lexical
// problems can all be reported at once.
type Lexer struct {
	input    []byte
	position int
	readPos  int
	ch       byte
	line     int
	column   int
	errors   []*diag.Error
}

// New creates a lexer over the given source text.
func New(input string) *Lexer {
	l := &Lexer{
		input:  []byte(input),
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input. The returned token slice always ends
// with one EOP token carrying an empty literal at the final cursor
// position.
func Tokenize(input string) ([]Token, []*diag.Error) {
	return New(input).Tokenize()
}

// Tokenize runs the scan to end of input.
func (l *Lexer) Tokenize() ([]Token, []*diag.Error) {
	estimated := len(l.input) / 4
	if estimated < 16 {
		estimated = 16
	}
	tokens := make([]Token, 0, estimated)

	for l.ch != 0 {
		switch {
		case l.ch == '\n' || l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\f':
			l.readChar()
		case l.ch == '#':
			l.skipComment()
		case isLetter[l.ch]:
			tokens = append(tokens, l.lexWord())
		case l.ch == '"':
			if tok, ok := l.lexQuoted(); ok {
				tokens = append(tokens, tok)
			}
		case isDigit[l.ch]:
			tokens = append(tokens, l.lexNumber())
		default:
			if tok, ok := l.lexOperator(); ok {
				tokens = append(tokens, tok)
			}
		}
	}

	tokens = append(tokens, Token{Type: EOP, Value: "", Line: l.line, Column: l.column})
	return tokens, l.errors
}

// skipComment consumes a '#' line comment or a '##'-delimited block
// comment. An unterminated block comment is reported but scanning
// continues to end of input.
func (l *Lexer) skipComment() {
	l.readChar() // leading '#'
	if l.ch == '#' {
		l.readChar()
		for l.ch != 0 {
			if l.ch == '#' && l.peekChar() == '#' {
				l.readChar()
				l.readChar()
				return
			}
			l.readChar()
		}
		l.errors = append(l.errors, diag.New(l.line, l.column, diag.UnterminatedComment,
			"Unterminated multi-line comment"))
		return
	}
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
}

// lexWord scans an alphabetic-initial run of alphanumeric characters and
// classifies it as a keyword or identifier.
func (l *Lexer) lexWord() Token {
	startLine, startColumn := l.line, l.column
	start := l.position
	for l.ch != 0 && isAlnum[l.ch] {
		l.readChar()
	}
	word := string(l.input[start:l.position])
	if typ, ok := keywords[word]; ok {
		return Token{Type: typ, Value: word, Line: startLine, Column: startColumn}
	}
	return Token{Type: ID, Value: word, Line: startLine, Column: startColumn}
}

// lexQuoted scans a '"'-delimited literal and classifies it as a TIME
// token when its content contains a colon, otherwise as a STRING token.
// Malformed content produces an error and no token.
func (l *Lexer) lexQuoted() (Token, bool) {
	startLine, startColumn := l.line, l.column
	l.readChar() // opening quote
	start := l.position
	for l.ch != 0 && l.ch != '"' {
		l.readChar()
	}
	if l.ch == 0 {
		l.errors = append(l.errors, diag.New(startLine, startColumn, diag.UnclosedString,
			"Unclosed string literal"))
		return Token{}, false
	}
	value := string(l.input[start:l.position])
	l.readChar() // closing quote

	if strings.IndexByte(value, ':') >= 0 {
		if _, err := types.ParseTime(value); err != nil {
			l.errors = append(l.errors, diag.New(startLine, startColumn, diag.InvalidTime,
				"Invalid time format: %s", value))
			return Token{}, false
		}
		return Token{Type: TIME, Value: value, Line: startLine, Column: startColumn}, true
	}
	if value == "" {
		l.errors = append(l.errors, diag.New(startLine, startColumn, diag.EmptyString,
			"Empty string literal"))
		return Token{}, false
	}
	return Token{Type: STRING, Value: value, Line: startLine, Column: startColumn}, true
}

// lexNumber scans a digit run as an integer literal.
func (l *Lexer) lexNumber() Token {
	startLine, startColumn := l.line, l.column
	start := l.position
	for l.ch != 0 && isDigit[l.ch] {
		l.readChar()
	}
	return Token{Type: INT, Value: string(l.input[start:l.position]), Line: startLine, Column: startColumn}
}

// lexOperator scans single-character operators and punctuation, plus the
// two-character '==' operator. Unrecognized characters are reported and
// skipped.
func (l *Lexer) lexOperator() (Token, bool) {
	startLine, startColumn := l.line, l.column
	switch l.ch {
	case '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return Token{Type: EQUALS, Value: "==", Line: startLine, Column: startColumn}, true
		}
		return Token{Type: ASSIGN, Value: "=", Line: startLine, Column: startColumn}, true
	case '+':
		l.readChar()
		return Token{Type: PLUS, Value: "+", Line: startLine, Column: startColumn}, true
	case '*':
		l.readChar()
		return Token{Type: STAR, Value: "*", Line: startLine, Column: startColumn}, true
	case '(':
		l.readChar()
		return Token{Type: LPAREN, Value: "(", Line: startLine, Column: startColumn}, true
	case ')':
		l.readChar()
		return Token{Type: RPAREN, Value: ")", Line: startLine, Column: startColumn}, true
	case ';':
		l.readChar()
		return Token{Type: SEMICOLON, Value: ";", Line: startLine, Column: startColumn}, true
	case '$':
		// Explicit end-of-program marker.
		l.readChar()
		return Token{Type: EOP, Value: "$", Line: startLine, Column: startColumn}, true
	default:
		l.errors = append(l.errors, diag.New(startLine, startColumn, diag.InvalidCharacter,
			"Unexpected character: %c", l.ch))
		l.readChar()
		return Token{}, false
	}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.position = l.readPos
		l.column++
		return
	}
	l.ch = l.input[l.readPos]
	l.position = l.readPos
	l.readPos++
	if l.position > 0 && l.input[l.position-1] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}
