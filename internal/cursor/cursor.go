// Package cursor provides a single-token-lookbehind view over a token
// slice, used by the parser at its one genuine disambiguation point: after
// reading an identifier, deciding whether it starts a subroutine call, an
// array access, or a plain variable read.
package cursor

import "github.com/nand2tetris/jackc/internal/token"

// Cursor walks a fixed token slice. Rewind supports exactly one level of
// backtracking, matching the single speculative-match point the parser
// needs; it is not a general backtracking stack.
type Cursor struct {
	tokens []token.Token
	pos    int
	marked int
}

func New(tokens []token.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// More reports whether there is another token to read.
func (c *Cursor) More() bool {
	return c.pos < len(c.tokens)
}

// Peek returns the current token without consuming it. At end of input it
// returns a synthetic EOF token carrying the position of the last real
// token, so error messages still point somewhere sensible.
func (c *Cursor) Peek() token.Token {
	if c.More() {
		return c.tokens[c.pos]
	}
	return c.eofToken()
}

// PeekType is a convenience for the common case of checking only the type.
func (c *Cursor) PeekType() token.Type {
	return c.Peek().Type
}

// PeekAt looks ahead n tokens past the current position (n==0 behaves like
// Peek) without consuming anything.
func (c *Cursor) PeekAt(n int) token.Token {
	idx := c.pos + n
	if idx < 0 || idx >= len(c.tokens) {
		return c.eofToken()
	}
	return c.tokens[idx]
}

// Advance consumes and returns the current token.
func (c *Cursor) Advance() token.Token {
	tok := c.Peek()
	if c.More() {
		c.pos++
	}
	return tok
}

// Mark records the current position so a later Rewind can return here.
func (c *Cursor) Mark() {
	c.marked = c.pos
}

// Rewind restores the position saved by the most recent Mark.
func (c *Cursor) Rewind() {
	c.pos = c.marked
}

func (c *Cursor) eofToken() token.Token {
	line := 0
	if len(c.tokens) > 0 {
		line = c.tokens[len(c.tokens)-1].Line
	}
	return token.Token{Type: token.EOF, Text: "", Line: line}
}
