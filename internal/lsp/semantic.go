package lsp

import (
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"redline/token"
)

// SemanticTokenTypes is the legend advertised to clients; indexes into it are
// sent on the wire.
var SemanticTokenTypes = []string{
	"keyword",
	"type",
	"variable",
	"number",
	"string",
	"operator",
}

var SemanticTokenModifiers = []string{}

// SemanticToken is one token in absolute 0-based coordinates.
type SemanticToken struct {
	Line      uint32
	StartChar uint32
	Length    uint32
	TokenType int // index into SemanticTokenTypes
}

func collectSemanticTokens(items []token.Item) []SemanticToken {
	var tokens []SemanticToken

	for _, item := range items {
		tokenType, ok := classify(item.Token.Kind)
		if !ok {
			continue
		}

		tokens = append(tokens, SemanticToken{
			Line:      uint32(item.Pos.Line - 1),
			StartChar: uint32(item.Pos.Column - 1),
			Length:    uint32(firstLineLength(item)),
			TokenType: indexOf(tokenType, SemanticTokenTypes),
		})
	}

	return tokens
}

func classify(kind token.Kind) (string, bool) {
	if kind.IsKeyword() {
		return "keyword", true
	}

	switch kind {
	case token.TYPE:
		return "type", true
	case token.IDENT:
		return "variable", true
	case token.INT, token.FLOAT:
		return "number", true
	case token.STR:
		return "string", true
	case token.OP, token.ARROW, token.ASSIGN:
		return "operator", true
	default:
		return "", false
	}
}

// firstLineLength clips tokens spanning lines, such as multi-line strings, to
// their first line.
func firstLineLength(item token.Item) int {
	if item.Pos.Line == item.End.Line {
		return item.End.Column - item.Pos.Column
	}
	first, _, _ := strings.Cut(item.Lexeme, "\n")
	return utf8.RuneCountInString(first)
}

// encodeSemanticTokens applies LSP delta-line, delta-start compression.
func encodeSemanticTokens(tokens []SemanticToken) []protocol.UInteger {
	data := []protocol.UInteger{}
	var prevLine, prevStart uint32

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), 0)

		prevLine = tok.Line
		prevStart = tok.StartChar
	}

	return data
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
