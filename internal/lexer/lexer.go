// Package lexer turns Redline source text into tokens.
package lexer

import (
	"fmt"
	"strconv"
	"sync"
	"unicode"

	"redline/token"
)

// Lexer scans one input. It is not safe for concurrent use and scans its
// input at most once; call Reset to reuse it.
type Lexer struct {
	input       []rune
	items       []token.Item
	start       int
	startLine   int
	startColumn int
	pos         int
	line        int
	column      int
	done        bool
}

// New returns a lexer ready to scan input.
func New(input string) *Lexer {
	l := &Lexer{}
	l.Reset(input)
	return l
}

// Reset discards all scan state and points the lexer at input.
func (l *Lexer) Reset(input string) {
	l.input = []rune(input)
	l.items = nil
	l.start = 0
	l.startLine = 1
	l.startColumn = 1
	l.pos = 0
	l.line = 1
	l.column = 1
	l.done = false
}

// Tokenize scans the whole input and returns its tokens in source order. On
// failure it returns a *Error and no tokens.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	items, err := l.Scan()
	if err != nil {
		return nil, err
	}

	tokens := make([]token.Token, len(items))
	for i, item := range items {
		tokens[i] = item.Token
	}
	return tokens, nil
}

// Scan is Tokenize keeping each token's lexeme and span.
func (l *Lexer) Scan() ([]token.Item, error) {
	if l.done {
		return nil, ErrConsumed
	}
	l.done = true

	for !l.isAtEnd() {
		l.start = l.pos
		l.startLine = l.line
		l.startColumn = l.column
		if err := l.scanToken(); err != nil {
			l.items = nil
			return nil, err
		}
	}

	items := l.items
	l.items = nil
	return items, nil
}

func (l *Lexer) scanToken() error {
	c := l.advance()
	switch c {
	// Whitespace (ignored)
	case ' ', '\r', '\t':
	case '\n':
		l.emit(token.Simple(token.NEWLINE))

	// Single-character punctuation
	case ':':
		l.emit(token.Simple(token.COLON))
	case '(':
		l.emit(token.Simple(token.LPAREN))
	case ')':
		l.emit(token.Simple(token.RPAREN))
	case ',':
		l.emit(token.Simple(token.COMMA))

	// Operators with potential multi-character variants
	case '=':
		if l.matchNext('=') {
			l.emit(token.Op("=="))
		} else {
			l.emit(token.Simple(token.ASSIGN))
		}
	case '>', '<', '!':
		if l.matchNext('=') {
			l.emit(token.Op(string(c) + "="))
		} else {
			l.emit(token.Op(string(c)))
		}
	case '+', '*', '/':
		l.emit(token.Op(string(c)))
	case '-':
		if l.matchNext('>') {
			l.emit(token.Simple(token.ARROW))
		} else {
			l.emit(token.Op("-"))
		}

	case '#':
		l.skipComment()
	case '"':
		l.scanString()

	default:
		return l.scanDefault(c)
	}
	return nil
}

func (l *Lexer) scanDefault(c rune) error {
	switch {
	case isAlpha(c):
		l.scanIdentifier()
		return nil
	case isNumeric(c):
		return l.scanNumber()
	default:
		return &Error{
			Kind:    UnknownCharacter,
			Message: fmt.Sprintf("Unknown character: %c", c),
			Line:    l.startLine,
			Column:  l.startColumn,
		}
	}
}

// skipComment drops everything up to, not including, the next newline.
func (l *Lexer) skipComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// scanString reads verbatim up to the next '"'. Backslashes are not escapes.
// Reaching the end of input still yields a Str with what was read.
func (l *Lexer) scanString() {
	for !l.isAtEnd() && l.peek() != '"' {
		l.advance()
	}
	contents := string(l.input[l.start+1 : l.pos])
	l.advance()
	l.emit(token.Str(contents))
}

func (l *Lexer) scanIdentifier() {
	for !l.isAtEnd() && isIdentPart(l.peek()) {
		l.advance()
	}
	l.emit(token.LookupIdent(string(l.input[l.start:l.pos])))
}

func (l *Lexer) scanNumber() error {
	isFloat := false
	for !l.isAtEnd() && (isNumeric(l.peek()) || l.peek() == '.') {
		if l.peek() == '.' {
			if isFloat {
				return l.errorHere(MultipleDecimalPoints, "Invalid number: multiple decimal points")
			}
			isFloat = true
		}
		l.advance()
	}

	text := string(l.input[l.start:l.pos])
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.errorHere(InvalidFloat, "Invalid float: "+text)
		}
		l.emit(token.FloatLit(v))
		return nil
	}

	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return l.errorHere(InvalidInteger, "Invalid integer: "+text)
	}
	l.emit(token.IntLit(v))
	return nil
}

// advance consumes one rune. It is the only place pos, line and column move.
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	c := l.input[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) matchNext(expected rune) bool {
	if l.isAtEnd() || l.input[l.pos] != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) emit(t token.Token) {
	l.items = append(l.items, token.Item{
		Token:  t,
		Lexeme: string(l.input[l.start:l.pos]),
		Pos:    token.Position{Line: l.startLine, Column: l.startColumn, Offset: l.start},
		End:    token.Position{Line: l.line, Column: l.column, Offset: l.pos},
	})
}

// errorHere reports at the cursor, not at the start of the token.
func (l *Lexer) errorHere(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message, Line: l.line, Column: l.column}
}

// Helper functions.

func isAlpha(c rune) bool {
	return unicode.In(c, unicode.L, unicode.Nl, unicode.Other_Alphabetic)
}

func isNumeric(c rune) bool {
	return unicode.IsNumber(c)
}

func isIdentPart(c rune) bool {
	return isAlpha(c) || isNumeric(c) || c == '_'
}

var pool = sync.Pool{
	New: func() any { return &Lexer{} },
}

// Tokenize scans input with a pooled Lexer.
func Tokenize(input string) ([]token.Token, error) {
	l := pool.Get().(*Lexer)
	defer func() {
		l.Reset("")
		pool.Put(l)
	}()

	l.Reset(input)
	return l.Tokenize()
}
