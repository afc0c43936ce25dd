package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redline/token"
)

var (
	tVar     = token.Simple(token.VAR)
	tVal     = token.Simple(token.VAL)
	tDef     = token.Simple(token.DEF)
	tPub     = token.Simple(token.PUB)
	tPrint   = token.Simple(token.PRINT)
	tReturn  = token.Simple(token.RETURN)
	tIf      = token.Simple(token.IF)
	tElse    = token.Simple(token.ELSE)
	tArrow   = token.Simple(token.ARROW)
	tColon   = token.Simple(token.COLON)
	tAssign  = token.Simple(token.ASSIGN)
	tLParen  = token.Simple(token.LPAREN)
	tRParen  = token.Simple(token.RPAREN)
	tComma   = token.Simple(token.COMMA)
	tNewline = token.Simple(token.NEWLINE)
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, err := New(input).Tokenize()
	require.NoError(t, err, "input %q", input)
	return tokens
}

func lexError(t *testing.T, input string) *Error {
	t.Helper()
	tokens, err := New(input).Tokenize()
	require.Error(t, err, "input %q", input)
	assert.Nil(t, tokens, "no tokens are returned alongside an error")

	var lexErr *Error
	require.True(t, errors.As(err, &lexErr), "expected *Error, got %T", err)
	return lexErr
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Token
	}{
		{"declaration", "var x = 5", []token.Token{tVar, token.Ident("x"), tAssign, token.IntLit(5)}},
		{"equality with float", "x == 3.14", []token.Token{token.Ident("x"), token.Op("=="), token.FloatLit(3.14)}},
		{"arrow", "a -> b", []token.Token{token.Ident("a"), tArrow, token.Ident("b")}},
		{"comment then newline", "# comment\nval y", []token.Token{tNewline, tVal, token.Ident("y")}},
		{"comment at end of input", "x # trailing", []token.Token{token.Ident("x")}},
		{"minus then greater", "- >", []token.Token{token.Op("-"), token.Op(">")}},
		{"subtraction", "5-3", []token.Token{token.IntLit(5), token.Op("-"), token.IntLit(3)}},
		{"not equal without spaces", "a!=b", []token.Token{token.Ident("a"), token.Op("!="), token.Ident("b")}},
		{"unary not", "!x", []token.Token{token.Op("!"), token.Ident("x")}},
		{"crlf", "a\r\nb", []token.Token{token.Ident("a"), tNewline, token.Ident("b")}},
		{"trailing dot float", "1.", []token.Token{token.FloatLit(1)}},
		{"max int", "9223372036854775807", []token.Token{token.IntLit(9223372036854775807)}},
		{"identifier with digits and underscore", "foo_bar9", []token.Token{token.Ident("foo_bar9")}},
		{"unicode identifier", "é = 1", []token.Token{token.Ident("é"), tAssign, token.IntLit(1)}},
		{"superscript continues identifier", "x²", []token.Token{token.Ident("x²")}},
		{"string", `print "hello world"`, []token.Token{tPrint, token.Str("hello world")}},
		{"backslash is verbatim", `"a\n"`, []token.Token{token.Str(`a\n`)}},
		{"empty string", `""`, []token.Token{token.Str("")}},
		{
			"function header",
			"pub def add(a: int, b: float) -> string",
			[]token.Token{
				tPub, tDef, token.Ident("add"), tLParen,
				token.Ident("a"), tColon, token.Type("int"), tComma,
				token.Ident("b"), tColon, token.Type("float"), tRParen,
				tArrow, token.Type("string"),
			},
		},
		{
			"control flow",
			"if x >= 10\n  return x\nelse\n  return 0",
			[]token.Token{
				tIf, token.Ident("x"), token.Op(">="), token.IntLit(10), tNewline,
				tReturn, token.Ident("x"), tNewline,
				tElse, tNewline,
				tReturn, token.IntLit(0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(t, tt.input))
		})
	}
}

func TestOperatorsAndPunctuation(t *testing.T) {
	input := `+ - * / == != < <= > >= ! = -> : ( ) ,`
	want := []token.Token{
		token.Op("+"), token.Op("-"), token.Op("*"), token.Op("/"),
		token.Op("=="), token.Op("!="), token.Op("<"), token.Op("<="),
		token.Op(">"), token.Op(">="), token.Op("!"),
		tAssign, tArrow, tColon, tLParen, tRParen, tComma,
	}

	assert.Equal(t, want, tokenize(t, input))
}

func TestKeywordsAndTypes(t *testing.T) {
	input := "var val def pub print return if else int float string customIdent"
	want := []token.Token{
		tVar, tVal, tDef, tPub, tPrint, tReturn, tIf, tElse,
		token.Type("int"), token.Type("float"), token.Type("string"),
		token.Ident("customIdent"),
	}

	assert.Equal(t, want, tokenize(t, input))
}

func TestKeywordPrefixIsIdentifier(t *testing.T) {
	assert.Equal(t, []token.Token{token.Ident("variable"), token.Ident("integer"), token.Ident("Var")},
		tokenize(t, "variable integer Var"))
}

func TestWhitespaceOnlyYieldsOneNewlinePerLineBreak(t *testing.T) {
	inputs := []string{"", " ", "\t\r ", "\n", "\n\n", " \n\t\n\r\n  ", strings.Repeat(" \n", 50)}

	for _, input := range inputs {
		tokens := tokenize(t, input)
		require.Len(t, tokens, strings.Count(input, "\n"), "input %q", input)
		for _, tok := range tokens {
			assert.Equal(t, tNewline, tok)
		}
	}
}

func TestUnknownCharacter(t *testing.T) {
	err := lexError(t, "@")
	assert.Equal(t, UnknownCharacter, err.Kind)
	assert.Equal(t, "Unknown character: @", err.Message)
	assert.Equal(t, 1, err.Line)
	assert.Equal(t, 1, err.Column)
	assert.Equal(t, "Unknown character: @ at line 1, column 1", err.Error())

	err = lexError(t, "var x = 1\n  y $ 2")
	assert.Equal(t, "Unknown character: $", err.Message)
	assert.Equal(t, 2, err.Line)
	assert.Equal(t, 5, err.Column)
}

func TestUnderscoreCannotStartIdentifier(t *testing.T) {
	err := lexError(t, "_x")
	assert.Equal(t, UnknownCharacter, err.Kind)
	assert.Equal(t, "Unknown character: _", err.Message)
}

func TestMultipleDecimalPoints(t *testing.T) {
	err := lexError(t, "1.2.3")
	assert.Equal(t, MultipleDecimalPoints, err.Kind)
	assert.Equal(t, "Invalid number: multiple decimal points", err.Message)
	// Reported where the cursor stands when the second '.' is seen.
	assert.Equal(t, 1, err.Line)
	assert.Equal(t, 4, err.Column)

	err = lexError(t, "x = 3.14.15")
	assert.Equal(t, 9, err.Column)
}

func TestInvalidInteger(t *testing.T) {
	err := lexError(t, "9223372036854775808")
	assert.Equal(t, InvalidInteger, err.Kind)
	assert.Equal(t, "Invalid integer: 9223372036854775808", err.Message)
	assert.Equal(t, 1, err.Line)
	assert.Equal(t, 20, err.Column, "reported after the literal")
}

func TestNonASCIIDigitsAreInvalidInteger(t *testing.T) {
	err := lexError(t, "²")
	assert.Equal(t, InvalidInteger, err.Kind)
	assert.Equal(t, "Invalid integer: ²", err.Message)
	assert.Equal(t, 2, err.Column)
}

func TestInvalidFloat(t *testing.T) {
	huge := strings.Repeat("9", 400) + ".0"
	err := lexError(t, huge)
	assert.Equal(t, InvalidFloat, err.Kind)
	assert.Equal(t, "Invalid float: "+huge, err.Message)
}

// An unterminated string is not an error: the text read so far is kept.
func TestUnterminatedStringIsBestEffort(t *testing.T) {
	assert.Equal(t, []token.Token{tPrint, token.Str("abc")}, tokenize(t, `print "abc`))
	assert.Equal(t, []token.Token{token.Str("line one\nline two")}, tokenize(t, "\"line one\nline two"))
}

func TestQuoteAfterBackslashClosesString(t *testing.T) {
	want := []token.Token{token.Str(`a\`), token.Ident("b"), token.Str("")}
	assert.Equal(t, want, tokenize(t, `"a\"b"`))
}

func TestMultilineStringAdvancesLine(t *testing.T) {
	items, err := New("\"a\nb\" c").Scan()
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, token.Str("a\nb"), items[0].Token)
	assert.Equal(t, token.Ident("c"), items[1].Token)
	assert.Equal(t, token.Position{Line: 2, Column: 4, Offset: 6}, items[1].Pos)
}

func TestScanSpans(t *testing.T) {
	items, err := New("def f(a: int) -> int").Scan()
	require.NoError(t, err)
	require.Len(t, items, 9)

	tests := []struct {
		lexeme   string
		pos, end token.Position
	}{
		{"def", token.Position{Line: 1, Column: 1, Offset: 0}, token.Position{Line: 1, Column: 4, Offset: 3}},
		{"f", token.Position{Line: 1, Column: 5, Offset: 4}, token.Position{Line: 1, Column: 6, Offset: 5}},
		{"(", token.Position{Line: 1, Column: 6, Offset: 5}, token.Position{Line: 1, Column: 7, Offset: 6}},
		{"a", token.Position{Line: 1, Column: 7, Offset: 6}, token.Position{Line: 1, Column: 8, Offset: 7}},
		{":", token.Position{Line: 1, Column: 8, Offset: 7}, token.Position{Line: 1, Column: 9, Offset: 8}},
		{"int", token.Position{Line: 1, Column: 10, Offset: 9}, token.Position{Line: 1, Column: 13, Offset: 12}},
		{")", token.Position{Line: 1, Column: 13, Offset: 12}, token.Position{Line: 1, Column: 14, Offset: 13}},
		{"->", token.Position{Line: 1, Column: 15, Offset: 14}, token.Position{Line: 1, Column: 17, Offset: 16}},
		{"int", token.Position{Line: 1, Column: 18, Offset: 17}, token.Position{Line: 1, Column: 21, Offset: 20}},
	}

	for i, tt := range tests {
		assert.Equal(t, tt.lexeme, items[i].Lexeme, "item %d", i)
		assert.Equal(t, tt.pos, items[i].Pos, "item %d start", i)
		assert.Equal(t, tt.end, items[i].End, "item %d end", i)
	}
}

func TestLineAccounting(t *testing.T) {
	items, err := New("a\nb").Scan()
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, tNewline, items[1].Token)
	assert.Equal(t, token.Position{Line: 1, Column: 2, Offset: 1}, items[1].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 1, Offset: 2}, items[1].End)

	assert.Equal(t, token.Ident("b"), items[2].Token)
	assert.Equal(t, 2, items[2].Pos.Line)
	assert.Equal(t, 1, items[2].Pos.Column)
}

func TestStringLexemeKeepsQuotes(t *testing.T) {
	items, err := New(`x = "hi"`).Scan()
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, token.Str("hi"), items[2].Token)
	assert.Equal(t, `"hi"`, items[2].Lexeme)
	assert.Equal(t, 9, items[2].End.Column)
}

func TestSecondScanWithoutResetFails(t *testing.T) {
	l := New("var x")
	_, err := l.Tokenize()
	require.NoError(t, err)

	_, err = l.Tokenize()
	assert.ErrorIs(t, err, ErrConsumed)

	_, err = l.Scan()
	assert.ErrorIs(t, err, ErrConsumed)

	l.Reset("val y")
	tokens, err := l.Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []token.Token{tVal, token.Ident("y")}, tokens)
}

func TestResetAfterError(t *testing.T) {
	l := New("@")
	_, err := l.Tokenize()
	require.Error(t, err)

	l.Reset("1 2")
	tokens, err := l.Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []token.Token{token.IntLit(1), token.IntLit(2)}, tokens)
}

func TestPooledTokenizeMatchesInstance(t *testing.T) {
	sources := []string{
		"var x = 5",
		"def main() -> int\n  print \"hi\"\n  return 0\n",
		"",
		"a -> b # c",
	}

	for _, src := range sources {
		fromPool, err := Tokenize(src)
		require.NoError(t, err)
		assert.Equal(t, tokenize(t, src), fromPool, "source %q", src)

		again, err := Tokenize(src)
		require.NoError(t, err)
		assert.Equal(t, fromPool, again, "tokenizing is a pure function of the input")
	}

	_, err := Tokenize("1.2.3")
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, MultipleDecimalPoints, lexErr.Kind)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "UnknownCharacter", UnknownCharacter.String())
	assert.Equal(t, "InvalidNumberMultipleDecimalPoints", MultipleDecimalPoints.String())
	assert.Equal(t, "InvalidFloat", InvalidFloat.String())
	assert.Equal(t, "InvalidInteger", InvalidInteger.String())
}
