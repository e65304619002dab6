package nbt

import (
	"fmt"

	"github.com/nbtkit/nbt/nbterr"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokColon
	tokComma
	tokSemicolon
	tokString   // quoted string; text already unescaped
	tokBareword // unquoted run: identifier, number, typed-number, keyword
)

type token struct {
	kind tokenKind
	text string
}

// lexer tokenizes SNBT source. It has no notion of grammar; that lives
// in the parser, mirroring the teacher's general split between
// low-level cursors (compactindexsized/seekable-buffer.go) and the
// higher-level code that interprets what they read.
type lexer struct {
	data []byte
	pos  int
}

func newLexer(data []byte) *lexer {
	return &lexer{data: data}
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '{', '}', '[', ']', ':', ',', ';', '"', '\'':
		return true
	}
	return false
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{kind: tokEOF}, nil
	}
	c := l.data[l.pos]
	switch c {
	case '{':
		l.pos++
		return token{kind: tokLBrace}, nil
	case '}':
		l.pos++
		return token{kind: tokRBrace}, nil
	case '[':
		l.pos++
		return token{kind: tokLBracket}, nil
	case ']':
		l.pos++
		return token{kind: tokRBracket}, nil
	case ':':
		l.pos++
		return token{kind: tokColon}, nil
	case ',':
		l.pos++
		return token{kind: tokComma}, nil
	case ';':
		l.pos++
		return token{kind: tokSemicolon}, nil
	case '"', '\'':
		return l.lexQuoted(c)
	default:
		return l.lexBareword()
	}
}

func (l *lexer) lexQuoted(quote byte) (token, error) {
	l.pos++
	var out []byte
	for {
		if l.pos >= len(l.data) {
			return token{}, fmt.Errorf("%w: unterminated quoted string", nbterr.ErrMalformedText)
		}
		c := l.data[l.pos]
		if c == quote {
			l.pos++
			return token{kind: tokString, text: string(out)}, nil
		}
		if c == '\\' && l.pos+1 < len(l.data) {
			l.pos++
			out = append(out, l.data[l.pos])
			l.pos++
			continue
		}
		out = append(out, c)
		l.pos++
	}
}

func (l *lexer) lexBareword() (token, error) {
	start := l.pos
	for l.pos < len(l.data) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		return token{}, fmt.Errorf("%w: unexpected character %q", nbterr.ErrMalformedText, l.data[l.pos])
	}
	return token{kind: tokBareword, text: string(l.data[start:l.pos])}, nil
}
