package nbt

import (
	"fmt"
	"iter"
	"math"

	"github.com/nbtkit/nbt/nbterr"
)

// cell is a payload snapshot returned by Reader.resolve, uniform across
// both the "named compound child" and "anonymous list element" read
// paths so every typed Read*/MaybeRead* method can share one accessor.
type cell struct {
	scalarBits uint64
	str        string
	arr        arraySlice
	list       listPayload
	compound   compoundPayload
}

// Reader navigates a parsed NBT document. It owns its store exclusively
// and is positioned by one of the Import* methods before any navigation
// or read call is valid (SPEC_FULL.md §4.3, "Reader").
type Reader struct {
	s     *store
	stack cursorStack
}

func NewReader() *Reader {
	return &Reader{s: newStore()}
}

// resolve looks up expect-kind data either by name (current container is
// a compound) or by position (current container is a list), advancing
// the list cursor on success. It is the Reader's mirror of Builder's
// appendTag.
func (r *Reader) resolve(name string, expect Kind) (cell, error) {
	if r.stack.empty() {
		return cell{}, fmt.Errorf("%w: reader is not positioned in any container", nbterr.ErrStructureViolation)
	}
	top := r.stack.top()
	switch top.kind {
	case KindCompound:
		if name == "" {
			return cell{}, fmt.Errorf("%w: a name is required to read from a compound", nbterr.ErrStructureViolation)
		}
		idx, ok := r.s.lookupByName(top.storageIndex(r.s), name)
		if !ok {
			return cell{}, fmt.Errorf("%w: %q", nbterr.ErrNameNotFound, name)
		}
		nt := r.s.tag(idx)
		if nt.kind != expect {
			return cell{}, fmt.Errorf("%w: %q is %s, requested %s", nbterr.ErrTypeMismatch, name, nt.kind, expect)
		}
		return cell{scalarBits: nt.scalarBits, str: nt.str, arr: nt.arr, list: nt.list, compound: nt.compound}, nil
	case KindList:
		if name != "" {
			return cell{}, fmt.Errorf("%w: list elements are anonymous", nbterr.ErrStructureViolation)
		}
		elemKind := top.elementKind(r.s)
		n := top.count(r.s)
		if top.currentIndex >= n {
			return cell{}, fmt.Errorf("%w: read past list size %d", nbterr.ErrListOverread, n)
		}
		if elemKind != expect {
			return cell{}, fmt.Errorf("%w: list element is %s, requested %s", nbterr.ErrTypeMismatch, elemKind, expect)
		}
		pos := top.elementPos(r.s, top.currentIndex)
		var c cell
		switch expect {
		case KindByte:
			c.scalarBits = uint64(uint8(r.s.bytePool[pos]))
		case KindShort:
			c.scalarBits = uint64(uint16(r.s.shortPool[pos]))
		case KindInt:
			c.scalarBits = uint64(uint32(r.s.intPool[pos]))
		case KindLong:
			c.scalarBits = uint64(r.s.longPool[pos])
		case KindFloat:
			c.scalarBits = uint64(math.Float32bits(r.s.floatPool[pos]))
		case KindDouble:
			c.scalarBits = math.Float64bits(r.s.doublePool[pos])
		case KindByteArray:
			c.arr = r.s.byteArrayPool[pos]
		case KindIntArray:
			c.arr = r.s.intArrayPool[pos]
		case KindLongArray:
			c.arr = r.s.longArrayPool[pos]
		case KindString:
			c.str = r.s.stringPool[pos]
		case KindList:
			c.list = r.s.listPool[pos]
		case KindCompound:
			c.compound = r.s.compoundPool[pos]
		}
		top.currentIndex++
		return c, nil
	default:
		return cell{}, fmt.Errorf("%w", nbterr.ErrStructureViolation)
	}
}

func (r *Reader) ReadByte(name string) (int8, error) {
	c, err := r.resolve(name, KindByte)
	return int8(c.scalarBits), err
}

func (r *Reader) ReadShort(name string) (int16, error) {
	c, err := r.resolve(name, KindShort)
	return int16(c.scalarBits), err
}

func (r *Reader) ReadInt(name string) (int32, error) {
	c, err := r.resolve(name, KindInt)
	return int32(c.scalarBits), err
}

func (r *Reader) ReadLong(name string) (int64, error) {
	c, err := r.resolve(name, KindLong)
	return int64(c.scalarBits), err
}

func (r *Reader) ReadFloat(name string) (float32, error) {
	c, err := r.resolve(name, KindFloat)
	return math.Float32frombits(uint32(c.scalarBits)), err
}

func (r *Reader) ReadDouble(name string) (float64, error) {
	c, err := r.resolve(name, KindDouble)
	return math.Float64frombits(c.scalarBits), err
}

func (r *Reader) ReadString(name string) (string, error) {
	c, err := r.resolve(name, KindString)
	return c.str, err
}

func (r *Reader) ReadByteArray(name string) ([]int8, error) {
	c, err := r.resolve(name, KindByteArray)
	if err != nil {
		return nil, err
	}
	out := make([]int8, c.arr.count)
	copy(out, r.s.bytePool[c.arr.base:c.arr.base+c.arr.count])
	return out, nil
}

func (r *Reader) ReadIntArray(name string) ([]int32, error) {
	c, err := r.resolve(name, KindIntArray)
	if err != nil {
		return nil, err
	}
	out := make([]int32, c.arr.count)
	copy(out, r.s.intPool[c.arr.base:c.arr.base+c.arr.count])
	return out, nil
}

func (r *Reader) ReadLongArray(name string) ([]int64, error) {
	c, err := r.resolve(name, KindLongArray)
	if err != nil {
		return nil, err
	}
	out := make([]int64, c.arr.count)
	copy(out, r.s.longPool[c.arr.base:c.arr.base+c.arr.count])
	return out, nil
}

// maybeRead pattern: every error from resolve collapses to "absent",
// since there is no second error channel in the comma-ok return shape
// (SPEC_FULL.md §7: "convert NameNotFound and nesting-precondition
// failures into absent and surface nothing else").
func (r *Reader) MaybeReadByte(name string) (int8, bool) {
	v, err := r.ReadByte(name)
	return v, err == nil
}

func (r *Reader) MaybeReadShort(name string) (int16, bool) {
	v, err := r.ReadShort(name)
	return v, err == nil
}

func (r *Reader) MaybeReadInt(name string) (int32, bool) {
	v, err := r.ReadInt(name)
	return v, err == nil
}

func (r *Reader) MaybeReadLong(name string) (int64, bool) {
	v, err := r.ReadLong(name)
	return v, err == nil
}

func (r *Reader) MaybeReadFloat(name string) (float32, bool) {
	v, err := r.ReadFloat(name)
	return v, err == nil
}

func (r *Reader) MaybeReadDouble(name string) (float64, bool) {
	v, err := r.ReadDouble(name)
	return v, err == nil
}

func (r *Reader) MaybeReadString(name string) (string, bool) {
	v, err := r.ReadString(name)
	return v, err == nil
}

// openContainer backs both OpenCompound and OpenList: descend by name
// from a compound, by position from a list, or — when the cursor is
// still at the virtual parent of the document — into the root tag
// itself.
func (r *Reader) openContainer(name string, kind Kind) bool {
	if r.stack.empty() {
		if !r.s.hasRoot {
			return false
		}
		root := r.s.tag(r.s.root)
		if root.kind != kind || root.name != name {
			return false
		}
		r.stack.push(frame{named: true, kind: kind, tagIndex: r.s.root})
		return true
	}
	top := r.stack.top()
	switch top.kind {
	case KindCompound:
		if name == "" {
			return false
		}
		idx, ok := r.s.lookupByName(top.storageIndex(r.s), name)
		if !ok {
			return false
		}
		nt := r.s.tag(idx)
		if nt.kind != kind {
			return false
		}
		r.stack.push(frame{named: true, kind: kind, tagIndex: idx})
		return true
	case KindList:
		if name != "" {
			return false
		}
		elemKind := top.elementKind(r.s)
		n := top.count(r.s)
		if top.currentIndex >= n || elemKind != kind {
			return false
		}
		pos := top.elementPos(r.s, top.currentIndex)
		top.currentIndex++
		r.stack.push(frame{named: false, kind: kind, poolIndex: pos})
		return true
	default:
		return false
	}
}

func (r *Reader) OpenCompound(name string) bool { return r.openContainer(name, KindCompound) }
func (r *Reader) OpenList(name string) bool     { return r.openContainer(name, KindList) }

func (r *Reader) CloseCompound() error { return r.closeContainer(KindCompound) }
func (r *Reader) CloseList() error     { return r.closeContainer(KindList) }

func (r *Reader) closeContainer(kind Kind) error {
	if r.stack.empty() {
		return fmt.Errorf("%w", nbterr.ErrNoOpenContainer)
	}
	top := r.stack.top()
	if top.kind != kind {
		return fmt.Errorf("%w: close %s does not match open %s", nbterr.ErrStructureViolation, kind, top.kind)
	}
	r.stack.pop()
	return nil
}

// ListSize returns the element count of the currently open list.
func (r *Reader) ListSize() (int32, error) {
	if r.stack.empty() || r.stack.top().kind != KindList {
		return 0, fmt.Errorf("%w: not positioned in a list", nbterr.ErrStructureViolation)
	}
	return r.stack.top().count(r.s), nil
}

// Count returns the children of the current compound, or the elements
// of the current list; zero if the reader is not positioned anywhere.
func (r *Reader) Count() int32 {
	if r.stack.empty() {
		return 0
	}
	return r.stack.top().count(r.s)
}

// Names iterates the child tag names of the current compound, in
// insertion order. It yields nothing when the current container is not
// a compound.
func (r *Reader) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		if r.stack.empty() || r.stack.top().kind != KindCompound {
			return
		}
		for _, c := range r.s.compoundStorage[r.stack.top().storageIndex(r.s)] {
			if !yield(r.s.tag(c).name) {
				return
			}
		}
	}
}

// KindOf reports the tag kind of a named child of the current compound,
// without disturbing the cursor. It exists for generic tree walkers
// (the dump and convert CLI commands) that cannot know a child's kind
// ahead of time the way a fixed schema-driven caller does.
func (r *Reader) KindOf(name string) (Kind, bool) {
	if r.stack.empty() || r.stack.top().kind != KindCompound {
		return KindEnd, false
	}
	idx, ok := r.s.lookupByName(r.stack.top().storageIndex(r.s), name)
	if !ok {
		return KindEnd, false
	}
	return r.s.tag(idx).kind, true
}

// ListElementKind reports the established element kind of the currently
// open list, or KindEnd/false if the list is still empty or the reader
// is not positioned in a list.
func (r *Reader) ListElementKind() (Kind, bool) {
	if r.stack.empty() || r.stack.top().kind != KindList {
		return KindEnd, false
	}
	top := r.stack.top()
	if top.count(r.s) == 0 {
		return KindEnd, false
	}
	return top.elementKind(r.s), true
}
