// Package lexer scans Jack source text into a token stream, following the
// same byte-by-byte, per-line dispatch the reference tokenizers in this
// corpus use: trim leading space, look at the current byte, and branch into
// a symbol, a comment, a string, a number or an identifier/keyword.
package lexer

import (
	"bufio"
	"bytes"
	"io"

	"github.com/nand2tetris/jackc/internal/jerr"
	"github.com/nand2tetris/jackc/internal/token"
	"github.com/nand2tetris/jackc/util"
)

const maxIntConst = 32767

// Lexer scans one source file into a complete token slice. Jack programs
// are small enough that eager, whole-file tokenization (rather than a
// streaming scanner) keeps the parser's lookahead trivial.
type Lexer struct {
	line   []byte
	lineNo int
	col    int

	reader *bufio.Reader

	// inComment is true while scanning inside an open /* ... */ region.
	// Block comments do not nest: the first */ encountered closes the
	// comment, even if a /* appeared inside it in the meantime.
	inComment bool
}

// New creates a Lexer reading from r.
func New(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// Tokenize consumes the entire input and returns its token stream, not
// including a trailing EOF marker in the slice (callers get EOF from the
// cursor once the slice is exhausted).
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		if len(l.line) == 0 {
			if !l.nextLine() {
				if l.inComment {
					return nil, jerr.Lexf(l.lineNo, l.col, "unterminated block comment")
				}
				return tokens, nil
			}
			continue
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok != nil {
			tokens = append(tokens, *tok)
		}
	}
}

func (l *Lexer) nextLine() bool {
	line, err := l.reader.ReadBytes('\n')
	if len(line) == 0 && err != nil {
		return false
	}
	l.line = bytes.TrimRight(line, "\r\n")
	l.lineNo++
	l.col = 0
	return true
}

func (l *Lexer) trimSpace() {
	for len(l.line) > 0 && util.IsWhitespace(l.line[0]) {
		l.line = l.line[1:]
		l.col++
	}
}

// next consumes one token (or comment, returning nil, nil) from the current
// line, refilling from the underlying reader when a block comment spans
// multiple lines.
func (l *Lexer) next() (*token.Token, error) {
	if l.inComment {
		return nil, l.consumeBlockCommentTail()
	}

	l.trimSpace()
	if len(l.line) == 0 {
		return nil, nil
	}

	startCol := l.col
	b := l.line[0]

	switch {
	case b == '"':
		return l.tokenString(startCol)
	case b == '/':
		return l.tokenCommentOrSlash(startCol)
	case util.IsDigit(b):
		return l.tokenNumber(startCol)
	case util.IsIdentifierStart(b):
		return l.tokenIdentifierOrKeyword(startCol)
	default:
		if tp, ok := token.LookupSymbol(b); ok {
			l.advance(1)
			return &token.Token{Type: tp, Text: string(b), Line: l.lineNo, Column: startCol}, nil
		}
		return nil, jerr.Lexf(l.lineNo, startCol, "unexpected character %q", b)
	}
}

func (l *Lexer) advance(n int) {
	l.line = l.line[n:]
	l.col += n
}

func (l *Lexer) tokenString(startCol int) (*token.Token, error) {
	l.advance(1) // opening quote
	end := bytes.IndexByte(l.line, '"')
	if end < 0 {
		return nil, jerr.Lexf(l.lineNo, startCol, "unterminated string constant")
	}
	value := string(l.line[:end])
	l.advance(end + 1)
	return &token.Token{Type: token.StringConst, Text: value, Line: l.lineNo, Column: startCol}, nil
}

func (l *Lexer) tokenCommentOrSlash(startCol int) (*token.Token, error) {
	if len(l.line) >= 2 && l.line[1] == '/' {
		l.line = nil // line comment: discard rest of line
		return nil, nil
	}
	if len(l.line) >= 2 && l.line[1] == '*' {
		l.advance(2)
		l.inComment = true
		return nil, l.consumeBlockCommentTail()
	}
	l.advance(1)
	return &token.Token{Type: token.Slash, Text: "/", Line: l.lineNo, Column: startCol}, nil
}

// consumeBlockCommentTail eats line content up to the comment's close.
// Block comments do not nest, so a "/*" encountered while already inside
// a comment is just more comment text — only the next "*/" ends it, and
// scanning resumes right after that close on the same line.
func (l *Lexer) consumeBlockCommentTail() error {
	for l.inComment {
		if len(l.line) == 0 {
			return nil // ask caller for another line
		}
		if len(l.line) >= 2 && l.line[0] == '*' && l.line[1] == '/' {
			l.advance(2)
			l.inComment = false
			return nil
		}
		l.advance(1)
	}
	return nil
}

func (l *Lexer) tokenNumber(startCol int) (*token.Token, error) {
	end := 0
	for end < len(l.line) && util.IsDigit(l.line[end]) {
		end++
	}
	if end < len(l.line) && util.IsIdentifierPart(l.line[end]) {
		// A digit run immediately followed by a letter/underscore — e.g.
		// "1abc" — is not a valid integer constant and not a valid
		// identifier either, since identifiers may not begin with a digit.
		bad := end + 1
		for bad < len(l.line) && util.IsIdentifierPart(l.line[bad]) {
			bad++
		}
		return nil, jerr.Lexf(l.lineNo, startCol, "invalid integer constant %q", string(l.line[:bad]))
	}
	digits := string(l.line[:end])
	l.advance(end)
	val := 0
	for _, c := range digits {
		val = val*10 + int(c-'0')
		if val > maxIntConst {
			return nil, jerr.Lexf(l.lineNo, startCol, "integer constant %s exceeds %d", digits, maxIntConst)
		}
	}
	return &token.Token{Type: token.IntConst, Text: digits, IntVal: val, Line: l.lineNo, Column: startCol}, nil
}

func (l *Lexer) tokenIdentifierOrKeyword(startCol int) (*token.Token, error) {
	end := 0
	for end < len(l.line) && util.IsIdentifierPart(l.line[end]) {
		end++
	}
	text := string(l.line[:end])
	l.advance(end)
	if tp, ok := token.LookupKeyword(text); ok {
		return &token.Token{Type: tp, Text: text, Line: l.lineNo, Column: startCol}, nil
	}
	return &token.Token{Type: token.Identifier, Text: text, Line: l.lineNo, Column: startCol}, nil
}
