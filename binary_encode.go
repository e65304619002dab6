package nbt

import (
	"fmt"
	"math"

	"github.com/nbtkit/nbt/nbterr"
)

// encodeBinaryDocument renders a finalized store to the big-endian
// binary encoding, byte-for-byte matching the reference "bigtest"
// fixture for any document the reference encoder could also produce
// (S1). It walks the store directly rather than through a Reader, since
// the Reader's cursor discipline exists for callers, not for this
// library-internal full traversal.
func encodeBinaryDocument(s *store) ([]byte, error) {
	if !s.hasRoot {
		return nil, fmt.Errorf("%w: no root compound to encode", nbterr.ErrStructureViolation)
	}
	w := newByteWriter()
	defer w.release()
	root := s.tag(s.root)
	w.writeByte(byte(KindCompound))
	writeBinaryName(w, root.name)
	if err := encodeCompoundBody(s, w, root.compound.storageIndex); err != nil {
		return nil, err
	}
	out := make([]byte, len(w.bytes()))
	copy(out, w.bytes())
	return out, nil
}

func writeBinaryName(w *byteWriter, name string) {
	w.writeUint16(uint16(len(name)))
	w.writeBytes([]byte(name))
}

func encodeCompoundBody(s *store, w *byteWriter, storageIndex int32) error {
	for _, child := range s.compoundStorage[storageIndex] {
		nt := s.tag(child)
		w.writeByte(byte(nt.kind))
		writeBinaryName(w, nt.name)
		if err := encodeTagPayload(s, w, nt.kind, nt); err != nil {
			return err
		}
	}
	w.writeByte(byte(KindEnd))
	return nil
}

// encodeTagPayload writes one named compound child's payload. List
// elements have no namedTag record of their own and go through
// encodeListElement instead, which reaches the same pools by position.
func encodeTagPayload(s *store, w *byteWriter, kind Kind, nt *namedTag) error {
	switch kind {
	case KindByte:
		w.writeByte(byte(uint8(nt.scalarBits)))
	case KindShort:
		w.writeInt16(int16(nt.scalarBits))
	case KindInt:
		w.writeInt32(int32(nt.scalarBits))
	case KindLong:
		w.writeInt64(int64(nt.scalarBits))
	case KindFloat:
		w.writeFloat32(math.Float32frombits(uint32(nt.scalarBits)))
	case KindDouble:
		w.writeFloat64(math.Float64frombits(nt.scalarBits))
	case KindByteArray:
		encodeByteArray(s, w, nt.arr)
	case KindIntArray:
		encodeIntArray(s, w, nt.arr)
	case KindLongArray:
		encodeLongArray(s, w, nt.arr)
	case KindString:
		writeBinaryName(w, nt.str)
	case KindList:
		return encodeListBody(s, w, nt.list)
	case KindCompound:
		return encodeCompoundBody(s, w, nt.compound.storageIndex)
	}
	return nil
}

func encodeListBody(s *store, w *byteWriter, lp listPayload) error {
	w.writeByte(byte(lp.elemKind))
	w.writeInt32(lp.count)
	if lp.count == 0 {
		// An empty list never had its storage index allocated (see
		// builder.go's appendTag): nothing to index into.
		return nil
	}
	positions := s.listElements[lp.storage]
	for i := int32(0); i < lp.count; i++ {
		if err := encodeListElement(s, w, lp.elemKind, positions[i]); err != nil {
			return err
		}
	}
	return nil
}

func encodeListElement(s *store, w *byteWriter, kind Kind, pos int32) error {
	switch kind {
	case KindByte:
		w.writeByte(byte(uint8(s.bytePool[pos])))
	case KindShort:
		w.writeInt16(s.shortPool[pos])
	case KindInt:
		w.writeInt32(s.intPool[pos])
	case KindLong:
		w.writeInt64(s.longPool[pos])
	case KindFloat:
		w.writeFloat32(s.floatPool[pos])
	case KindDouble:
		w.writeFloat64(s.doublePool[pos])
	case KindByteArray:
		encodeByteArray(s, w, s.byteArrayPool[pos])
	case KindIntArray:
		encodeIntArray(s, w, s.intArrayPool[pos])
	case KindLongArray:
		encodeLongArray(s, w, s.longArrayPool[pos])
	case KindString:
		writeBinaryName(w, s.stringPool[pos])
	case KindList:
		return encodeListBody(s, w, s.listPool[pos])
	case KindCompound:
		return encodeCompoundBody(s, w, s.compoundPool[pos].storageIndex)
	}
	return nil
}

func encodeByteArray(s *store, w *byteWriter, a arraySlice) {
	w.writeInt32(a.count)
	for i := a.base; i < a.base+a.count; i++ {
		w.writeByte(byte(uint8(s.bytePool[i])))
	}
}

func encodeIntArray(s *store, w *byteWriter, a arraySlice) {
	w.writeInt32(a.count)
	for i := a.base; i < a.base+a.count; i++ {
		w.writeInt32(s.intPool[i])
	}
}

func encodeLongArray(s *store, w *byteWriter, a arraySlice) {
	w.writeInt32(a.count)
	for i := a.base; i < a.base+a.count; i++ {
		w.writeInt64(s.longPool[i])
	}
}
