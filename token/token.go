// Package token SPDX-License-Identifier: Apache-2.0
package token

import (
	"fmt"
	"strconv"
)

// Kind is the variant tag of a Token.
type Kind int

const (
	ILLEGAL Kind = iota

	// Keywords
	VAR
	VAL
	DEF
	PUB
	PRINT
	RETURN
	IF
	ELSE

	// Identifiers + literals
	IDENT // add, foobar, x, y ...
	INT   // 1234567890
	FLOAT // 3.14
	STR   // "hello"
	TYPE  // int, float, string
	OP    // + - * / == != < <= > >= !

	// Delimiters
	ARROW
	COLON
	ASSIGN
	LPAREN
	RPAREN
	COMMA
	NEWLINE
)

var kindNames = [...]string{
	ILLEGAL: "Illegal",
	VAR:     "Var",
	VAL:     "Val",
	DEF:     "Def",
	PUB:     "Pub",
	PRINT:   "Print",
	RETURN:  "Return",
	IF:      "If",
	ELSE:    "Else",
	IDENT:   "Ident",
	INT:     "Int",
	FLOAT:   "Float",
	STR:     "Str",
	TYPE:    "Type",
	OP:      "Op",
	ARROW:   "Arrow",
	COLON:   "Colon",
	ASSIGN:  "Assign",
	LPAREN:  "LParen",
	RPAREN:  "RParen",
	COMMA:   "Comma",
	NEWLINE: "Newline",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Kinds lists every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames)-1)
	for k := VAR; k <= NEWLINE; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k >= VAR && k <= ELSE
}

// Token is a single lexical unit. Only the payload field matching Kind is set:
// Text for IDENT, STR, TYPE and OP, Int for INT and Float for FLOAT. Tokens are
// comparable with ==.
type Token struct {
	Kind  Kind
	Text  string
	Int   int64
	Float float64
}

// Ident returns an identifier token.
func Ident(name string) Token { return Token{Kind: IDENT, Text: name} }

// IntLit returns an integer literal token.
func IntLit(v int64) Token { return Token{Kind: INT, Int: v} }

// FloatLit returns a float literal token.
func FloatLit(v float64) Token { return Token{Kind: FLOAT, Float: v} }

// Str returns a string literal token holding the unquoted contents.
func Str(contents string) Token { return Token{Kind: STR, Text: contents} }

// Type returns a type-name token.
func Type(name string) Token { return Token{Kind: TYPE, Text: name} }

// Op returns an operator token.
func Op(symbol string) Token { return Token{Kind: OP, Text: symbol} }

// Simple returns a token of a kind that carries no payload.
func Simple(kind Kind) Token { return Token{Kind: kind} }

// String renders the token the way it reads in test failures, e.g. Ident("x").
func (t Token) String() string {
	switch t.Kind {
	case IDENT, STR, TYPE, OP:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case INT:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Int)
	case FLOAT:
		return fmt.Sprintf("%s(%s)", t.Kind, strconv.FormatFloat(t.Float, 'g', -1, 64))
	default:
		return t.Kind.String()
	}
}

var keywords = map[string]Kind{
	"var":    VAR,
	"val":    VAL,
	"def":    DEF,
	"if":     IF,
	"else":   ELSE,
	"pub":    PUB,
	"return": RETURN,
	"print":  PRINT,
}

var typeNames = map[string]bool{
	"int":    true,
	"float":  true,
	"string": true,
}

// LookupIdent classifies a scanned word as a keyword, a type name or a plain
// identifier.
func LookupIdent(ident string) Token {
	if kind, ok := keywords[ident]; ok {
		return Simple(kind)
	}
	if typeNames[ident] {
		return Type(ident)
	}
	return Ident(ident)
}

// Keywords returns the reserved words followed by the type names.
func Keywords() []string {
	return []string{"var", "val", "def", "pub", "print", "return", "if", "else", "int", "float", "string"}
}
