package token

import "fmt"

// Position is a 1-based line and column plus a 0-based offset, all counted in
// runes.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Item is a token together with the source text it was read from and its span.
// End is the position just past the last rune of the lexeme.
type Item struct {
	Token  Token
	Lexeme string
	Pos    Position
	End    Position
}
