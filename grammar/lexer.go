package grammar

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"redline/internal/lexer"
	"redline/token"
)

// RedlineLexer lets participle grammars consume Redline tokens. Token types
// are named after token kinds, so grammars match on Ident, Int, Newline and so
// on, or on literal values such as "var" and "->". Every token's value is its
// source lexeme, so a Str value keeps its quotes and never equals a keyword or
// operator literal. Capture Str into a StrValue to get the contents.
var RedlineLexer = &Definition{symbols: buildSymbols()}

// Definition implements participle's lexer.Definition and
// lexer.StringDefinition on top of the Redline lexer.
type Definition struct {
	symbols map[string]plexer.TokenType
}

var (
	_ plexer.Definition       = (*Definition)(nil)
	_ plexer.StringDefinition = (*Definition)(nil)
)

func buildSymbols() map[string]plexer.TokenType {
	symbols := map[string]plexer.TokenType{"EOF": plexer.EOF}
	for _, kind := range token.Kinds() {
		symbols[kind.String()] = plexer.TokenType(kind)
	}
	return symbols
}

func (d *Definition) Symbols() map[string]plexer.TokenType {
	return d.symbols
}

func (d *Definition) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexString(filename, string(source))
}

// LexString scans the whole input up front. A scan failure is returned as a
// *participle/lexer.Error positioned where the Redline lexer stopped.
func (d *Definition) LexString(filename string, input string) (plexer.Lexer, error) {
	offsets := byteOffsets(input)

	items, err := lexer.New(input).Scan()
	if err != nil {
		var lexErr *lexer.Error
		if !errors.As(err, &lexErr) {
			return nil, err
		}
		return nil, &plexer.Error{
			Msg: lexErr.Message,
			Pos: positionAt(filename, input, offsets, lexErr.Line, lexErr.Column),
		}
	}

	stream := &tokenStream{tokens: make([]plexer.Token, 0, len(items))}
	for _, item := range items {
		stream.tokens = append(stream.tokens, plexer.Token{
			Type:  plexer.TokenType(item.Token.Kind),
			Value: item.Lexeme,
			Pos:   convertPosition(filename, offsets, item.Pos),
		})
	}

	end := token.Position{Line: 1, Column: 1, Offset: len(offsets) - 1}
	if n := len(items); n > 0 {
		end = items[n-1].End
	}
	stream.eof = convertPosition(filename, offsets, end)

	return stream, nil
}

// StrValue captures a Str lexeme as the string's contents.
type StrValue string

func (s *StrValue) Capture(values []string) error {
	*s = StrValue(StrContents(strings.Join(values, "")))
	return nil
}

// StrContents strips the quotes from a Str lexeme. An unterminated string has
// no closing quote, so only the opening one is removed.
func StrContents(lexeme string) string {
	contents := strings.TrimPrefix(lexeme, `"`)
	return strings.TrimSuffix(contents, `"`)
}

type tokenStream struct {
	tokens []plexer.Token
	eof    plexer.Position
	next   int
}

func (s *tokenStream) Next() (plexer.Token, error) {
	if s.next >= len(s.tokens) {
		return plexer.EOFToken(s.eof), nil
	}
	tok := s.tokens[s.next]
	s.next++
	return tok, nil
}

// byteOffsets maps each rune index, plus one past the end, to its byte offset.
func byteOffsets(input string) []int {
	offsets := make([]int, 0, utf8.RuneCountInString(input)+1)
	for i := range input {
		offsets = append(offsets, i)
	}
	return append(offsets, len(input))
}

func convertPosition(filename string, offsets []int, pos token.Position) plexer.Position {
	return plexer.Position{
		Filename: filename,
		Offset:   offsets[pos.Offset],
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

// positionAt resolves a line and column back to a byte offset.
func positionAt(filename, input string, offsets []int, line, column int) plexer.Position {
	runeIndex, curLine := 0, 1
	for _, c := range input {
		if curLine == line {
			break
		}
		if c == '\n' {
			curLine++
		}
		runeIndex++
	}
	runeIndex = min(runeIndex+column-1, len(offsets)-1)

	return plexer.Position{
		Filename: filename,
		Offset:   offsets[runeIndex],
		Line:     line,
		Column:   column,
	}
}
