package diag

import "fmt"

// Kind classifies a language error by the phase and rule that produced it.
type Kind string

const (
	// Lexical errors
	UnterminatedComment Kind = "UnterminatedComment"
	UnclosedString      Kind = "UnclosedString"
	EmptyString         Kind = "EmptyString"
	InvalidTime         Kind = "InvalidTime"
	InvalidCharacter    Kind = "InvalidCharacter"

	// Parse errors
	UnexpectedToken   Kind = "UnexpectedToken"
	InvalidExpression Kind = "InvalidExpression"
	InvalidStatement  Kind = "InvalidStatement"
	UnknownCommand    Kind = "UnknownCommand"

	// Evaluation errors
	UnknownIdentifier Kind = "UnknownIdentifier"
	TypeError         Kind = "TypeError"
)

// Error is a located language error. Lexical, syntactic, and evaluation
// errors all share this shape so diagnostics can be reported in one pass.
type Error struct {
	Line    int
	Column  int
	Kind    Kind
	Message string
}

// Error formats the diagnostic in the form shown to users.
func (e *Error) Error() string {
	return fmt.Sprintf("Error at line %d, col %d: %s - %s", e.Line, e.Column, e.Kind, e.Message)
}

// New creates a located error.
func New(line, column int, kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Line:    line,
		Column:  column,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
