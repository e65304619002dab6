package nbt

import (
	"fmt"

	"github.com/nbtkit/nbt/nbterr"
)

// decodeBinary parses the big-endian binary encoding of SPEC_FULL.md
// §4.6 into b, mirroring compactindexsized/header.go's Unmarshal: read a
// fixed-size field, validate it, advance the cursor, repeat.
func decodeBinary(data []byte, b *Builder) error {
	r := newByteReader(data)
	kindByte, err := r.readByte()
	if err != nil {
		return err
	}
	if Kind(kindByte) != KindCompound {
		return fmt.Errorf("%w: root tag must be a Compound, got kind %d", nbterr.ErrStructureViolation, kindByte)
	}
	name, err := readBinaryName(r)
	if err != nil {
		return err
	}
	if err := b.Begin(name); err != nil {
		return err
	}
	if err := decodeCompoundChildren(r, b); err != nil {
		return err
	}
	return b.Finalize()
}

func readBinaryName(r *byteReader) (string, error) {
	n, err := r.readUint16()
	if err != nil {
		return "", err
	}
	raw, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeCompoundChildren reads named tags until the TAG_End marker,
// consuming it. The caller's own frame (root or nested) is left open —
// it is the caller's job to EndCompound or Finalize.
func decodeCompoundChildren(r *byteReader, b *Builder) error {
	for {
		kindByte, err := r.readByte()
		if err != nil {
			return err
		}
		kind := Kind(kindByte)
		if kind == KindEnd {
			return nil
		}
		if !kind.Valid() {
			return fmt.Errorf("%w: unknown tag kind %d", nbterr.ErrMalformedText, kindByte)
		}
		name, err := readBinaryName(r)
		if err != nil {
			return err
		}
		if err := decodeTagValue(r, b, kind, name); err != nil {
			return err
		}
	}
}

// decodeTagValue decodes one tag's payload and writes it through b. It
// is used uniformly for named compound children and anonymous list
// elements (name == "" in the latter case) since Builder's Write*
// methods already dispatch on the current frame.
func decodeTagValue(r *byteReader, b *Builder, kind Kind, name string) error {
	switch kind {
	case KindByte:
		v, err := r.readByte()
		if err != nil {
			return err
		}
		return b.WriteByte(name, int8(v))
	case KindShort:
		v, err := r.readInt16()
		if err != nil {
			return err
		}
		return b.WriteShort(name, v)
	case KindInt:
		v, err := r.readInt32()
		if err != nil {
			return err
		}
		return b.WriteInt(name, v)
	case KindLong:
		v, err := r.readInt64()
		if err != nil {
			return err
		}
		return b.WriteLong(name, v)
	case KindFloat:
		v, err := r.readFloat32()
		if err != nil {
			return err
		}
		return b.WriteFloat(name, v)
	case KindDouble:
		v, err := r.readFloat64()
		if err != nil {
			return err
		}
		return b.WriteDouble(name, v)
	case KindByteArray:
		data, err := decodeByteArray(r)
		if err != nil {
			return err
		}
		return b.WriteByteArray(name, data)
	case KindIntArray:
		data, err := decodeIntArray(r)
		if err != nil {
			return err
		}
		return b.WriteIntArray(name, data)
	case KindLongArray:
		data, err := decodeLongArray(r)
		if err != nil {
			return err
		}
		return b.WriteLongArray(name, data)
	case KindString:
		s, err := readBinaryName(r)
		if err != nil {
			return err
		}
		return b.WriteString(name, s)
	case KindList:
		return decodeList(r, b, name)
	case KindCompound:
		if err := b.BeginCompound(name); err != nil {
			return err
		}
		if err := decodeCompoundChildren(r, b); err != nil {
			return err
		}
		return b.EndCompound()
	default:
		return fmt.Errorf("%w: unsupported tag kind %s", nbterr.ErrMalformedText, kind)
	}
}

func decodeList(r *byteReader, b *Builder, name string) error {
	if err := b.BeginList(name); err != nil {
		return err
	}
	elemKindByte, err := r.readByte()
	if err != nil {
		return err
	}
	elemKind := Kind(elemKindByte)
	count, err := r.readInt32()
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("%w: negative list length", nbterr.ErrMalformedText)
	}
	if count > 0 && elemKind == KindEnd {
		return fmt.Errorf("%w: list declares element kind End with nonzero count", nbterr.ErrMalformedText)
	}
	for i := int32(0); i < count; i++ {
		if err := decodeTagValue(r, b, elemKind, ""); err != nil {
			return err
		}
	}
	return b.EndList()
}

func decodeByteArray(r *byteReader) ([]int8, error) {
	n, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative array length", nbterr.ErrMalformedText)
	}
	out := make([]int8, n)
	for i := range out {
		v, err := r.readByte()
		if err != nil {
			return nil, err
		}
		out[i] = int8(v)
	}
	return out, nil
}

func decodeIntArray(r *byteReader) ([]int32, error) {
	n, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative array length", nbterr.ErrMalformedText)
	}
	out := make([]int32, n)
	for i := range out {
		v, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func decodeLongArray(r *byteReader) ([]int64, error) {
	n, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative array length", nbterr.ErrMalformedText)
	}
	out := make([]int64, n)
	for i := range out {
		v, err := r.readInt64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
