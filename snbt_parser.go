package nbt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/nbtkit/nbt/nbterr"
)

var (
	integerLiteral = regexp.MustCompile(`^-?\d+$`)
	numericLiteral = regexp.MustCompile(`^-?(\d+\.\d*|\.\d+|\d+)([eE][+-]?\d+)?$`)
)

// parser is a recursive-descent SNBT reader that writes directly through
// a Builder as it goes, the same "parse and emit in one pass" shape as
// the binary decoder, rather than building an intermediate AST.
type parser struct {
	lex *lexer
	b   *Builder
	buf []token
}

func newParser(data []byte, b *Builder) *parser {
	return &parser{lex: newLexer(data), b: b}
}

func (p *parser) fill(n int) error {
	for len(p.buf) <= n {
		if l := len(p.buf); l > 0 && p.buf[l-1].kind == tokEOF {
			break
		}
		t, err := p.lex.next()
		if err != nil {
			return err
		}
		p.buf = append(p.buf, t)
	}
	return nil
}

func (p *parser) peekAt(n int) (token, error) {
	if err := p.fill(n); err != nil {
		return token{}, err
	}
	if n >= len(p.buf) {
		return token{kind: tokEOF}, nil
	}
	return p.buf[n], nil
}

func (p *parser) peek() (token, error) { return p.peekAt(0) }

func (p *parser) advance() (token, error) {
	t, err := p.peek()
	if err != nil {
		return token{}, err
	}
	if len(p.buf) > 0 {
		p.buf = p.buf[1:]
	}
	return t, nil
}

func (p *parser) expect(k tokenKind, what string) (token, error) {
	t, err := p.advance()
	if err != nil {
		return token{}, err
	}
	if t.kind != k {
		return token{}, fmt.Errorf("%w: expected %s", nbterr.ErrMalformedText, what)
	}
	return t, nil
}

// decodeText parses a complete SNBT document into b. SNBT has no
// separate root-name field (unlike the binary encoding's header); the
// root compound is always written unnamed.
func decodeText(data []byte, b *Builder) error {
	p := newParser(data, b)
	if _, err := p.expect(tokLBrace, "'{' to open the root compound"); err != nil {
		return err
	}
	if err := b.Begin(""); err != nil {
		return err
	}
	if err := p.parseCompoundBody(); err != nil {
		return err
	}
	if err := b.Finalize(); err != nil {
		return err
	}
	trailing, err := p.peek()
	if err != nil {
		return err
	}
	if trailing.kind != tokEOF {
		return fmt.Errorf("%w: trailing data after document", nbterr.ErrMalformedText)
	}
	return nil
}

func (p *parser) parseCompoundBody() error {
	t, err := p.peek()
	if err != nil {
		return err
	}
	if t.kind == tokRBrace {
		p.advance()
		return nil
	}
	for {
		name, err := p.parseName()
		if err != nil {
			return err
		}
		if _, err := p.expect(tokColon, "':' after a tag name"); err != nil {
			return err
		}
		if err := p.parseValue(name); err != nil {
			return err
		}
		t, err := p.advance()
		if err != nil {
			return err
		}
		switch t.kind {
		case tokComma:
			continue
		case tokRBrace:
			return nil
		default:
			return fmt.Errorf("%w: expected ',' or '}' in compound", nbterr.ErrMalformedText)
		}
	}
}

func (p *parser) parseName() (string, error) {
	t, err := p.advance()
	if err != nil {
		return "", err
	}
	if t.kind == tokString || t.kind == tokBareword {
		return t.text, nil
	}
	return "", fmt.Errorf("%w: expected a tag name", nbterr.ErrMalformedText)
}

func (p *parser) parseValue(name string) error {
	t, err := p.peek()
	if err != nil {
		return err
	}
	switch t.kind {
	case tokLBrace:
		p.advance()
		if err := p.b.BeginCompound(name); err != nil {
			return err
		}
		if err := p.parseCompoundBody(); err != nil {
			return err
		}
		return p.b.EndCompound()
	case tokLBracket:
		return p.parseBracketed(name)
	case tokString:
		p.advance()
		return p.b.WriteString(name, t.text)
	case tokBareword:
		p.advance()
		return p.writeScalarLiteral(name, t.text)
	default:
		return fmt.Errorf("%w: unexpected token in value position", nbterr.ErrMalformedText)
	}
}

func (p *parser) parseBracketed(name string) error {
	p.advance() // consume '['
	first, err := p.peek()
	if err != nil {
		return err
	}
	second, err := p.peekAt(1)
	if err != nil {
		return err
	}
	if first.kind == tokBareword && second.kind == tokSemicolon && len(first.text) == 1 {
		switch first.text {
		case "B":
			return p.parsePackedArray(name, KindByteArray)
		case "I":
			return p.parsePackedArray(name, KindIntArray)
		case "L":
			return p.parsePackedArray(name, KindLongArray)
		}
	}
	return p.parseList(name)
}

func (p *parser) parseList(name string) error {
	if err := p.b.BeginList(name); err != nil {
		return err
	}
	t, err := p.peek()
	if err != nil {
		return err
	}
	if t.kind == tokRBracket {
		p.advance()
		return p.b.EndList()
	}
	for {
		if err := p.parseValue(""); err != nil {
			return err
		}
		t, err := p.advance()
		if err != nil {
			return err
		}
		switch t.kind {
		case tokComma:
			continue
		case tokRBracket:
			return p.b.EndList()
		default:
			return fmt.Errorf("%w: expected ',' or ']' in list", nbterr.ErrMalformedText)
		}
	}
}

func (p *parser) parsePackedArray(name string, kind Kind) error {
	p.advance() // marker letter
	p.advance() // ';'

	t, err := p.peek()
	if err != nil {
		return err
	}
	if t.kind == tokRBracket {
		p.advance()
		return p.writeEmptyArray(name, kind)
	}

	var bytes []int8
	var ints []int32
	var longs []int64
	for {
		tok, err := p.advance()
		if err != nil {
			return err
		}
		if tok.kind != tokBareword {
			return fmt.Errorf("%w: expected a number in packed array", nbterr.ErrMalformedText)
		}
		bitSize := 32
		switch kind {
		case KindByteArray:
			bitSize = 8
		case KindLongArray:
			bitSize = 64
		}
		v, err := parseIntegerLiteral(tok.text, bitSize)
		if err != nil {
			return err
		}
		switch kind {
		case KindByteArray:
			bytes = append(bytes, int8(v))
		case KindIntArray:
			ints = append(ints, int32(v))
		case KindLongArray:
			longs = append(longs, v)
		}
		sep, err := p.advance()
		if err != nil {
			return err
		}
		if sep.kind == tokRBracket {
			break
		}
		if sep.kind != tokComma {
			return fmt.Errorf("%w: expected ',' or ']' in packed array", nbterr.ErrMalformedText)
		}
	}
	switch kind {
	case KindByteArray:
		return p.b.WriteByteArray(name, bytes)
	case KindIntArray:
		return p.b.WriteIntArray(name, ints)
	case KindLongArray:
		return p.b.WriteLongArray(name, longs)
	}
	return nil
}

func (p *parser) writeEmptyArray(name string, kind Kind) error {
	switch kind {
	case KindByteArray:
		return p.b.WriteByteArray(name, nil)
	case KindIntArray:
		return p.b.WriteIntArray(name, nil)
	case KindLongArray:
		return p.b.WriteLongArray(name, nil)
	}
	return nil
}

// parseIntegerLiteral tolerates a redundant trailing type suffix (the
// reference parser accepts "1b" inside a [B; ...] array as well as the
// bare "1").
func parseIntegerLiteral(text string, bitSize int) (int64, error) {
	core := text
	if n := len(text); n > 0 {
		switch text[n-1] {
		case 'b', 'B', 's', 'S', 'l', 'L':
			core = text[:n-1]
		}
	}
	if !integerLiteral.MatchString(core) {
		return 0, fmt.Errorf("%w: invalid integer literal %q", nbterr.ErrMalformedText, text)
	}
	v, err := strconv.ParseInt(core, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: integer literal %q out of range", nbterr.ErrMalformedText, text)
	}
	return v, nil
}

// writeScalarLiteral classifies a bareword: true/false map to Byte(1)/
// Byte(0) per the bare_word grammar, NaN/Infinity/-Infinity (and their
// 'f'-suffixed float variants, SPEC_FULL.md §4.7's resolution of the
// NaN/Infinity open question) map to non-finite Double/Float, and
// everything else falls through to trailing-suffix classification,
// Int/Double-by-shape, and finally an unquoted string.
func (p *parser) writeScalarLiteral(name, text string) error {
	switch text {
	case "true":
		return p.b.WriteByte(name, 1)
	case "false":
		return p.b.WriteByte(name, 0)
	case "NaN":
		return p.b.WriteDouble(name, math.NaN())
	case "Infinity":
		return p.b.WriteDouble(name, math.Inf(1))
	case "-Infinity":
		return p.b.WriteDouble(name, math.Inf(-1))
	case "NaNf":
		return p.b.WriteFloat(name, float32(math.NaN()))
	case "Infinityf":
		return p.b.WriteFloat(name, float32(math.Inf(1)))
	case "-Infinityf":
		return p.b.WriteFloat(name, float32(math.Inf(-1)))
	}

	if len(text) >= 2 {
		core := text[:len(text)-1]
		switch text[len(text)-1] {
		case 'b', 'B':
			if integerLiteral.MatchString(core) {
				if v, err := strconv.ParseInt(core, 10, 8); err == nil {
					return p.b.WriteByte(name, int8(v))
				}
			}
		case 's', 'S':
			if integerLiteral.MatchString(core) {
				if v, err := strconv.ParseInt(core, 10, 16); err == nil {
					return p.b.WriteShort(name, int16(v))
				}
			}
		case 'l', 'L':
			if integerLiteral.MatchString(core) {
				if v, err := strconv.ParseInt(core, 10, 64); err == nil {
					return p.b.WriteLong(name, v)
				}
			}
		case 'f', 'F':
			if numericLiteral.MatchString(core) {
				if v, err := strconv.ParseFloat(core, 32); err == nil {
					return p.b.WriteFloat(name, float32(v))
				}
			}
		case 'd', 'D':
			if numericLiteral.MatchString(core) {
				if v, err := strconv.ParseFloat(core, 64); err == nil {
					return p.b.WriteDouble(name, v)
				}
			}
		}
	}

	if integerLiteral.MatchString(text) {
		if v, err := strconv.ParseInt(text, 10, 32); err == nil {
			return p.b.WriteInt(name, int32(v))
		}
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return p.b.WriteLong(name, v)
		}
	}
	if numericLiteral.MatchString(text) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return p.b.WriteDouble(name, v)
		}
	}
	return p.b.WriteString(name, text)
}
