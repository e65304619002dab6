package nbt

import (
	"fmt"
	"math"

	"k8s.io/klog/v2"

	"github.com/nbtkit/nbt/nbterr"
)

// appendPool is a small generic helper shared by every typed pool
// (bytePool, shortPool, ... listPool, compoundPool): append v and return
// its index. Generalizes the teacher's repeated "append and take
// len-1" idiom (see iplddecoders pools) across pool element types.
func appendPool[T any](pool *[]T, v T) int32 {
	idx := int32(len(*pool))
	*pool = append(*pool, v)
	return idx
}

// Builder constructs an NBT document by appending tags in document order.
// It never looks back: there is no random-access mutation, matching
// SPEC_FULL.md §4.3's "Builder" component.
type Builder struct {
	s     *store
	stack cursorStack
}

func newBuilder(s *store) *Builder {
	return &Builder{s: s}
}

// Begin creates the root named compound and pushes its frame. Call it
// exactly once before any other Builder operation.
func (b *Builder) Begin(rootName string) error {
	if b.s.hasRoot {
		return fmt.Errorf("nbt: Begin called more than once on this builder")
	}
	idx := b.s.addNamedTag(KindCompound, rootName)
	nt := b.s.tag(idx)
	nt.compound = compoundPayload{storageIndex: b.s.newCompoundStorage()}
	b.s.root = idx
	b.s.hasRoot = true
	b.stack.push(frame{named: true, kind: KindCompound, tagIndex: idx})
	return nil
}

// appendTag is the generic write-path template shared by every typed
// Write* method and by BeginCompound/BeginList: it validates the current
// frame (I1, I2), places the new tag either as a named compound child or
// as the next anonymous list element, and reports which storage the
// caller ended up in so container-opening callers can push a new frame.
func (b *Builder) appendTag(kind Kind, name string, setNamed func(*namedTag), pushPool func() int32) (idx TagIndex, poolIdx int32, named bool, err error) {
	if b.s.finalized {
		return 0, 0, false, fmt.Errorf("%w", nbterr.ErrFinalized)
	}
	if b.stack.empty() {
		return 0, 0, false, fmt.Errorf("%w", nbterr.ErrNoOpenContainer)
	}
	parent := b.stack.top()
	switch parent.kind {
	case KindCompound:
		if name == "" {
			return 0, 0, false, fmt.Errorf("%w: tag in a compound must have a non-empty name", nbterr.ErrStructureViolation)
		}
		idx = b.s.addNamedTag(kind, name)
		nt := b.s.tag(idx)
		setNamed(nt)
		b.s.appendChild(parent.storageIndex(b.s), idx)
		return idx, 0, true, nil
	case KindList:
		if name != "" {
			return 0, 0, false, fmt.Errorf("%w: tag in a list must be anonymous", nbterr.ErrStructureViolation)
		}
		existing := parent.elementKind(b.s)
		cnt := parent.count(b.s)
		if cnt == 0 {
			// First element establishes the list's kind (I2) and its
			// per-element position vector.
			parent.setElementKind(b.s, kind)
			parent.setElementStorageIndex(b.s, b.s.newListElementStorage())
		} else if existing != kind {
			return 0, 0, false, fmt.Errorf("%w: list element kind %s conflicts with established kind %s", nbterr.ErrTypeMismatch, kind, existing)
		}
		poolIdx = pushPool()
		b.s.appendListElement(parent.elementStorageIndex(b.s), poolIdx)
		parent.incrementListCount(b.s)
		return 0, poolIdx, false, nil
	default:
		return 0, 0, false, fmt.Errorf("%w: open container has unexpected kind %s", nbterr.ErrStructureViolation, parent.kind)
	}
}

func (b *Builder) writeScalar(kind Kind, name string, setNamed func(*namedTag), pushPool func() int32) error {
	_, _, _, err := b.appendTag(kind, name, setNamed, pushPool)
	return err
}

// WriteByte appends a Byte tag (named, if the current container is a
// compound; anonymous, if it is a list).
func (b *Builder) WriteByte(name string, v int8) error {
	return b.writeScalar(KindByte, name,
		func(nt *namedTag) { nt.scalarBits = uint64(uint8(v)) },
		func() int32 { return appendPool(&b.s.bytePool, v) })
}

func (b *Builder) WriteShort(name string, v int16) error {
	return b.writeScalar(KindShort, name,
		func(nt *namedTag) { nt.scalarBits = uint64(uint16(v)) },
		func() int32 { return appendPool(&b.s.shortPool, v) })
}

func (b *Builder) WriteInt(name string, v int32) error {
	return b.writeScalar(KindInt, name,
		func(nt *namedTag) { nt.scalarBits = uint64(uint32(v)) },
		func() int32 { return appendPool(&b.s.intPool, v) })
}

func (b *Builder) WriteLong(name string, v int64) error {
	return b.writeScalar(KindLong, name,
		func(nt *namedTag) { nt.scalarBits = uint64(v) },
		func() int32 { return appendPool(&b.s.longPool, v) })
}

func (b *Builder) WriteFloat(name string, v float32) error {
	return b.writeScalar(KindFloat, name,
		func(nt *namedTag) { nt.scalarBits = uint64(math.Float32bits(v)) },
		func() int32 { return appendPool(&b.s.floatPool, v) })
}

func (b *Builder) WriteDouble(name string, v float64) error {
	return b.writeScalar(KindDouble, name,
		func(nt *namedTag) { nt.scalarBits = math.Float64bits(v) },
		func() int32 { return appendPool(&b.s.doublePool, v) })
}

func (b *Builder) WriteByteArray(name string, data []int8) error {
	return b.writeScalar(KindByteArray, name,
		func(nt *namedTag) { nt.arr = b.pushByteArray(data) },
		func() int32 { return appendPool(&b.s.byteArrayPool, b.pushByteArray(data)) })
}

func (b *Builder) pushByteArray(data []int8) arraySlice {
	base := int32(len(b.s.bytePool))
	b.s.bytePool = append(b.s.bytePool, data...)
	return arraySlice{base: base, count: int32(len(data))}
}

func (b *Builder) WriteIntArray(name string, data []int32) error {
	return b.writeScalar(KindIntArray, name,
		func(nt *namedTag) { nt.arr = b.pushIntArray(data) },
		func() int32 { return appendPool(&b.s.intArrayPool, b.pushIntArray(data)) })
}

func (b *Builder) pushIntArray(data []int32) arraySlice {
	base := int32(len(b.s.intPool))
	b.s.intPool = append(b.s.intPool, data...)
	return arraySlice{base: base, count: int32(len(data))}
}

func (b *Builder) WriteLongArray(name string, data []int64) error {
	return b.writeScalar(KindLongArray, name,
		func(nt *namedTag) { nt.arr = b.pushLongArray(data) },
		func() int32 { return appendPool(&b.s.longArrayPool, b.pushLongArray(data)) })
}

func (b *Builder) pushLongArray(data []int64) arraySlice {
	base := int32(len(b.s.longPool))
	b.s.longPool = append(b.s.longPool, data...)
	return arraySlice{base: base, count: int32(len(data))}
}

func (b *Builder) WriteString(name string, v string) error {
	if len(v) > math.MaxUint16 {
		return fmt.Errorf("%w: string %q is %d bytes, exceeds the uint16-prefixed length limit", nbterr.ErrStructureViolation, name, len(v))
	}
	return b.writeScalar(KindString, name,
		func(nt *namedTag) { nt.str = v },
		func() int32 { return appendPool(&b.s.stringPool, v) })
}

// BeginCompound opens a new nested compound and pushes its frame.
func (b *Builder) BeginCompound(name string) error {
	if b.stack.depth() >= maxDepth {
		return fmt.Errorf("%w: max nesting depth %d", nbterr.ErrDepthExceeded, maxDepth)
	}
	idx, poolIdx, named, err := b.appendTag(KindCompound, name,
		func(nt *namedTag) { nt.compound = compoundPayload{storageIndex: b.s.newCompoundStorage()} },
		func() int32 {
			return appendPool(&b.s.compoundPool, compoundPayload{storageIndex: b.s.newCompoundStorage()})
		})
	if err != nil {
		return err
	}
	b.pushContainerFrame(idx, poolIdx, named, KindCompound)
	return nil
}

// BeginList opens a new nested list and pushes its frame. The list's
// element kind is established lazily, by the first Write*/Begin* call
// made while it is the current container (I2).
func (b *Builder) BeginList(name string) error {
	if b.stack.depth() >= maxDepth {
		return fmt.Errorf("%w: max nesting depth %d", nbterr.ErrDepthExceeded, maxDepth)
	}
	idx, poolIdx, named, err := b.appendTag(KindList, name,
		func(nt *namedTag) { nt.list = listPayload{elemKind: KindEnd} },
		func() int32 { return appendPool(&b.s.listPool, listPayload{elemKind: KindEnd}) })
	if err != nil {
		return err
	}
	b.pushContainerFrame(idx, poolIdx, named, KindList)
	return nil
}

func (b *Builder) pushContainerFrame(idx TagIndex, poolIdx int32, named bool, kind Kind) {
	if named {
		b.stack.push(frame{named: true, kind: kind, tagIndex: idx})
	} else {
		b.stack.push(frame{named: false, kind: kind, poolIndex: poolIdx})
	}
}

func (b *Builder) EndCompound() error { return b.endContainer(KindCompound) }
func (b *Builder) EndList() error     { return b.endContainer(KindList) }

func (b *Builder) endContainer(kind Kind) error {
	if b.stack.empty() {
		return fmt.Errorf("%w", nbterr.ErrNoOpenContainer)
	}
	if b.stack.depth() == 1 {
		return fmt.Errorf("%w: cannot close the root compound directly, call Finalize", nbterr.ErrStructureViolation)
	}
	top := b.stack.top()
	if top.kind != kind {
		return fmt.Errorf("%w: close %s does not match open %s", nbterr.ErrStructureViolation, kind, top.kind)
	}
	if kind == KindCompound && top.count(b.s) == 0 {
		klog.V(1).Info("nbt: closing an empty compound")
	}
	b.stack.pop()
	return nil
}

// Finalize closes the root compound (and any containers the caller
// forgot to close) and marks the builder read-only. It is idempotent.
func (b *Builder) Finalize() error {
	if b.s.finalized {
		return nil
	}
	if !b.s.hasRoot {
		return fmt.Errorf("%w: Begin was never called", nbterr.ErrNoOpenContainer)
	}
	for b.stack.depth() > 0 {
		b.stack.pop()
	}
	b.s.finalized = true
	return nil
}

func (b *Builder) Finalized() bool {
	return b.s.finalized
}
