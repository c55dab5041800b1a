package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nand2tetris/jackc/internal/token"
)

func tokens(types ...token.Type) []token.Token {
	out := make([]token.Token, len(types))
	for i, tp := range types {
		out[i] = token.Token{Type: tp}
	}
	return out
}

func TestCursor_AdvanceWalksForward(t *testing.T) {
	c := New(tokens(token.Identifier, token.LParen, token.RParen))
	assert.Equal(t, token.Identifier, c.Advance().Type)
	assert.Equal(t, token.LParen, c.Advance().Type)
	assert.Equal(t, token.RParen, c.Advance().Type)
	assert.False(t, c.More())
}

func TestCursor_PeekDoesNotConsume(t *testing.T) {
	c := New(tokens(token.Identifier, token.Dot))
	assert.Equal(t, token.Identifier, c.Peek().Type)
	assert.Equal(t, token.Identifier, c.Peek().Type)
	assert.Equal(t, token.Identifier, c.Advance().Type)
	assert.Equal(t, token.Dot, c.PeekType())
}

func TestCursor_PeekAtLooksAheadWithoutConsuming(t *testing.T) {
	c := New(tokens(token.Identifier, token.LBracket, token.IntConst))
	assert.Equal(t, token.LBracket, c.PeekAt(1).Type)
	assert.Equal(t, token.Identifier, c.PeekType())
}

func TestCursor_MarkAndRewind(t *testing.T) {
	c := New(tokens(token.Identifier, token.Semicolon))
	c.Advance()
	c.Mark()
	c.Advance() // speculatively consume the semicolon
	c.Rewind()
	assert.Equal(t, token.Semicolon, c.PeekType())
}

func TestCursor_MoreFalseAtEnd(t *testing.T) {
	c := New(tokens(token.Identifier))
	assert.True(t, c.More())
	c.Advance()
	assert.False(t, c.More())
	assert.Equal(t, token.EOF, c.Peek().Type)
}
