package lexer

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a lexer failure.
type ErrorKind int

const (
	UnknownCharacter ErrorKind = iota
	MultipleDecimalPoints
	InvalidFloat
	InvalidInteger
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownCharacter:
		return "UnknownCharacter"
	case MultipleDecimalPoints:
		return "InvalidNumberMultipleDecimalPoints"
	case InvalidFloat:
		return "InvalidFloat"
	case InvalidInteger:
		return "InvalidInteger"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the single failure that ends a scan. Line and Column are 1-based.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Line, e.Column)
}

// ErrConsumed is returned when a Lexer is asked to scan a second time without
// a Reset.
var ErrConsumed = errors.New("lexer: input already consumed")
