package nbt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/nbtkit/nbt/nbterr"
)

// PrintMode selects the pretty-printer's layout, mirroring
// jsonbuilder.OrderedJSONObject's single-line vs indented rendering.
type PrintMode int

const (
	// PrintCompact renders the whole document on one line.
	PrintCompact PrintMode = iota
	// PrintPretty renders with a 2-space indent per nesting level.
	PrintPretty
)

var bareNamePattern = regexp.MustCompile(`^[A-Za-z0-9._+-]+$`)

// textPrinter walks a store directly, the same way encodeBinaryDocument
// does, and renders SNBT text. Quoting reuses json-iterator's string
// escaper (jsonbuilder/builder.go's own approach to quoting keys and
// string values) rather than hand-rolling escape rules.
type textPrinter struct {
	s    *store
	mode PrintMode
	sb   strings.Builder
}

func encodeTextDocument(s *store, mode PrintMode) (string, error) {
	if !s.hasRoot {
		return "", fmt.Errorf("%w: no root compound to encode", nbterr.ErrStructureViolation)
	}
	p := &textPrinter{s: s, mode: mode}
	root := s.tag(s.root)
	p.printCompoundBody(root.compound.storageIndex, 0)
	return p.sb.String(), nil
}

func (p *textPrinter) newline(depth int) {
	if p.mode != PrintPretty {
		return
	}
	p.sb.WriteByte('\n')
	p.sb.WriteString(strings.Repeat("  ", depth))
}

func (p *textPrinter) printCompoundBody(storageIndex int32, depth int) {
	p.sb.WriteByte('{')
	children := p.s.compoundStorage[storageIndex]
	for i, c := range children {
		p.newline(depth + 1)
		nt := p.s.tag(c)
		p.printName(nt.name)
		p.sb.WriteByte(':')
		if p.mode == PrintPretty {
			p.sb.WriteByte(' ')
		}
		p.printNamedValue(nt, depth+1)
		if i != len(children)-1 {
			p.sb.WriteByte(',')
		}
	}
	if len(children) > 0 {
		p.newline(depth)
	}
	p.sb.WriteByte('}')
}

func (p *textPrinter) printNamedValue(nt *namedTag, depth int) {
	switch nt.kind {
	case KindByte:
		p.sb.WriteString(strconv.FormatInt(int64(int8(nt.scalarBits)), 10))
		p.sb.WriteByte('b')
	case KindShort:
		p.sb.WriteString(strconv.FormatInt(int64(int16(nt.scalarBits)), 10))
		p.sb.WriteByte('s')
	case KindInt:
		p.sb.WriteString(strconv.FormatInt(int64(int32(nt.scalarBits)), 10))
	case KindLong:
		p.sb.WriteString(strconv.FormatInt(int64(nt.scalarBits), 10))
		p.sb.WriteByte('L')
	case KindFloat:
		p.printFloat(float64(math.Float32frombits(uint32(nt.scalarBits))), true)
	case KindDouble:
		p.printFloat(math.Float64frombits(nt.scalarBits), false)
	case KindString:
		p.printQuoted(nt.str)
	case KindByteArray:
		p.printByteArray(nt.arr)
	case KindIntArray:
		p.printIntArray(nt.arr)
	case KindLongArray:
		p.printLongArray(nt.arr)
	case KindList:
		p.printListBody(nt.list, depth)
	case KindCompound:
		p.printCompoundBody(nt.compound.storageIndex, depth)
	}
}

func (p *textPrinter) printListElement(kind Kind, pos int32, depth int) {
	switch kind {
	case KindByte:
		p.sb.WriteString(strconv.FormatInt(int64(p.s.bytePool[pos]), 10))
		p.sb.WriteByte('b')
	case KindShort:
		p.sb.WriteString(strconv.FormatInt(int64(p.s.shortPool[pos]), 10))
		p.sb.WriteByte('s')
	case KindInt:
		p.sb.WriteString(strconv.FormatInt(int64(p.s.intPool[pos]), 10))
	case KindLong:
		p.sb.WriteString(strconv.FormatInt(p.s.longPool[pos], 10))
		p.sb.WriteByte('L')
	case KindFloat:
		p.printFloat(float64(p.s.floatPool[pos]), true)
	case KindDouble:
		p.printFloat(p.s.doublePool[pos], false)
	case KindString:
		p.printQuoted(p.s.stringPool[pos])
	case KindByteArray:
		p.printByteArray(p.s.byteArrayPool[pos])
	case KindIntArray:
		p.printIntArray(p.s.intArrayPool[pos])
	case KindLongArray:
		p.printLongArray(p.s.longArrayPool[pos])
	case KindList:
		p.printListBody(p.s.listPool[pos], depth)
	case KindCompound:
		p.printCompoundBody(p.s.compoundPool[pos].storageIndex, depth)
	}
}

func (p *textPrinter) printListBody(lp listPayload, depth int) {
	p.sb.WriteByte('[')
	if lp.count > 0 {
		positions := p.s.listElements[lp.storage]
		for i := int32(0); i < lp.count; i++ {
			p.newline(depth + 1)
			p.printListElement(lp.elemKind, positions[i], depth+1)
			if i != lp.count-1 {
				p.sb.WriteByte(',')
			}
		}
		p.newline(depth)
	}
	p.sb.WriteByte(']')
}

func (p *textPrinter) printByteArray(a arraySlice) {
	p.sb.WriteString("[B;")
	for i := int32(0); i < a.count; i++ {
		p.arraySep(i)
		p.sb.WriteString(strconv.FormatInt(int64(p.s.bytePool[a.base+i]), 10))
		p.sb.WriteByte('b')
	}
	p.sb.WriteByte(']')
}

func (p *textPrinter) printIntArray(a arraySlice) {
	p.sb.WriteString("[I;")
	for i := int32(0); i < a.count; i++ {
		p.arraySep(i)
		p.sb.WriteString(strconv.FormatInt(int64(p.s.intPool[a.base+i]), 10))
	}
	p.sb.WriteByte(']')
}

func (p *textPrinter) printLongArray(a arraySlice) {
	p.sb.WriteString("[L;")
	for i := int32(0); i < a.count; i++ {
		p.arraySep(i)
		p.sb.WriteString(strconv.FormatInt(p.s.longPool[a.base+i], 10))
		p.sb.WriteByte('L')
	}
	p.sb.WriteByte(']')
}

func (p *textPrinter) arraySep(i int32) {
	if i == 0 {
		p.sb.WriteByte(' ')
		return
	}
	p.sb.WriteString(", ")
}

func (p *textPrinter) printFloat(v float64, isFloat32 bool) {
	switch {
	case math.IsNaN(v):
		p.sb.WriteString("NaN")
	case math.IsInf(v, 1):
		p.sb.WriteString("Infinity")
	case math.IsInf(v, -1):
		p.sb.WriteString("-Infinity")
	default:
		bits := 64
		suffix := byte('d')
		if isFloat32 {
			bits = 32
			suffix = 'f'
		}
		p.sb.WriteString(strconv.FormatFloat(v, 'g', -1, bits))
		p.sb.WriteByte(suffix)
		return
	}
	if isFloat32 {
		p.sb.WriteByte('f')
	}
}

func (p *textPrinter) printQuoted(s string) {
	out, err := jsoniter.MarshalToString(s)
	if err != nil {
		// MarshalToString(string) cannot fail; this is unreachable in
		// practice but keeps the printer panic-free.
		out = strconv.Quote(s)
	}
	p.sb.WriteString(out)
}

func (p *textPrinter) printName(name string) {
	if name != "" && bareNamePattern.MatchString(name) {
		p.sb.WriteString(name)
		return
	}
	p.printQuoted(name)
}
