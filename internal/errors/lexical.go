package errors

import (
	"strings"

	"redline/internal/lexer"
	"redline/token"
)

// CodeFor returns the diagnostic code for a lexer error kind.
func CodeFor(kind lexer.ErrorKind) string {
	switch kind {
	case lexer.UnknownCharacter:
		return ErrorUnknownCharacter
	case lexer.MultipleDecimalPoints:
		return ErrorMultipleDecimalPoints
	case lexer.InvalidFloat:
		return ErrorInvalidFloat
	case lexer.InvalidInteger:
		return ErrorInvalidInteger
	default:
		return ""
	}
}

// characterHints covers characters users commonly carry over from other
// languages.
var characterHints = map[string]Suggestion{
	"_": {Message: "identifiers must begin with a letter"},
	"'": {Message: "string literals use double quotes", Replacement: `"`},
	";": {Message: "statements are separated by newlines"},
	"{": {Message: "blocks are not delimited by braces"},
	"}": {Message: "blocks are not delimited by braces"},
	"%": {Message: "there is no modulo operator"},
	"&": {Message: "there are no bitwise or logical '&' operators"},
	"|": {Message: "there are no bitwise or logical '|' operators"},
}

// FromLexError converts a lexer failure into a renderable diagnostic.
func FromLexError(err *lexer.Error) CompilerError {
	ce := CompilerError{
		Level:    Error,
		Code:     CodeFor(err.Kind),
		Message:  err.Message,
		Position: token.Position{Line: err.Line, Column: err.Column},
		Length:   1,
	}

	switch err.Kind {
	case lexer.UnknownCharacter:
		ch := strings.TrimPrefix(err.Message, "Unknown character: ")
		if hint, ok := characterHints[ch]; ok {
			ce.Suggestions = append(ce.Suggestions, hint)
		}
		ce.HelpText = "remove the character or place it inside a string literal"
	case lexer.MultipleDecimalPoints:
		ce.HelpText = "a number may contain at most one '.'"
	case lexer.InvalidFloat:
		ce.HelpText = "float literals must fit in a 64-bit float"
	case lexer.InvalidInteger:
		ce.Notes = append(ce.Notes, "integers range from -9223372036854775808 to 9223372036854775807")
		ce.HelpText = "add a decimal point to write a float literal"
	}

	return ce
}
