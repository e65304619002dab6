package nbt

import "github.com/cespare/xxhash/v2"

// TagIndex is a small integer handle into a store's named-tag vector.
// It is a borrow: valid only until the owning store's next Clear, and
// never exposed across the Builder/Reader boundary (SPEC_FULL.md §3,
// "Ownership & lifecycle").
type TagIndex int32

const invalidIndex int32 = -1

// arraySlice is a (base, count) handle into one of the scalar data pools.
// It backs ByteArray/IntArray/LongArray payloads. List elements are not
// addressed this way (see listPayload).
type arraySlice struct {
	base  int32
	count int32
}

// listPayload describes a List tag: its established element kind, how
// many elements it holds, and where to find them.
//
// Elements are *not* addressed as a contiguous [base, base+count) run:
// when elemKind is a container kind (List or Compound), writing element
// i can itself push an unbounded number of further entries into
// listPool/compoundPool before element i+1 gets its own entry (every
// descendant of a nested list or compound shares those same pools), so a
// list's own elements are not contiguous within them. Instead storage
// indexes into store.listElements, which holds one explicit per-element
// pool-index vector per list — the same "ordered index vector alongside
// the pool" shape as compoundStorage uses for a compound's children.
type listPayload struct {
	elemKind Kind
	count    int32
	storage  int32
}

// compoundPayload points at this compound's ordered child list.
type compoundPayload struct {
	storageIndex int32
}

// namedTag is the (name, kind, payload) record of SPEC_FULL.md §3. Payload
// is modeled as a flat set of kind-tagged fields rather than a Go
// interface{} union: this keeps named-tag storage contiguous and
// allocation-free per tag, matching the pooled philosophy of the original
// design (interface{} payloads, as in landru27-nbt's NBT.Data field, would
// force a heap allocation per scalar tag).
type namedTag struct {
	kind Kind
	name string

	scalarBits uint64 // Byte/Short/Int/Long/Float/Double, raw bit pattern
	str        string // String: Go strings are immutable/GC-owned, so this
	// implementation does not pool string bytes the way the C++ original
	// pools "chars".
	arr      arraySlice      // ByteArray/IntArray/LongArray
	list     listPayload     // List
	compound compoundPayload // Compound
}

// store is the pooled, index-based tree of SPEC_FULL.md §3/§4.2. It is
// exclusively owned by one Builder or Reader at a time.
type store struct {
	namedTags []namedTag

	bytePool   []int8
	shortPool  []int16
	intPool    []int32
	longPool   []int64
	floatPool  []float32
	doublePool []float64

	byteArrayPool []arraySlice
	intArrayPool  []arraySlice
	longArrayPool []arraySlice
	stringPool    []string
	listPool      []listPayload
	compoundPool  []compoundPayload

	// compoundStorage[i] is the ordered list of child TagIndex values of
	// the compound whose compoundPayload.storageIndex == i.
	compoundStorage [][]TagIndex

	// listElements[i] is the ordered list of pool-index positions of the
	// list whose listPayload.storage == i. The pool each position indexes
	// into is determined by the list's elemKind (bytePool for KindByte,
	// listPool for KindList, and so on) — the same pool
	// encodeListElement/printListElement/Reader.resolve already dispatch
	// to by kind for a single position.
	listElements [][]int32

	// nameIndex lazily accelerates named lookup within a compound: storage
	// index -> xxhash(name) -> candidate TagIndex values, generalized from
	// compactindexsized's xxhash-bucketed key lookup (SPEC_FULL.md §3).
	nameIndex map[int32]map[uint64][]TagIndex

	root      TagIndex
	hasRoot   bool
	finalized bool
}

func newStore() *store {
	s := &store{}
	s.clear()
	return s
}

// clear truncates every pool and vector, per §4.2's clear() operation.
func (s *store) clear() {
	s.namedTags = s.namedTags[:0]
	s.bytePool = s.bytePool[:0]
	s.shortPool = s.shortPool[:0]
	s.intPool = s.intPool[:0]
	s.longPool = s.longPool[:0]
	s.floatPool = s.floatPool[:0]
	s.doublePool = s.doublePool[:0]
	s.byteArrayPool = s.byteArrayPool[:0]
	s.intArrayPool = s.intArrayPool[:0]
	s.longArrayPool = s.longArrayPool[:0]
	s.stringPool = s.stringPool[:0]
	s.listPool = s.listPool[:0]
	s.compoundPool = s.compoundPool[:0]
	s.compoundStorage = s.compoundStorage[:0]
	s.listElements = s.listElements[:0]
	s.nameIndex = make(map[int32]map[uint64][]TagIndex)
	s.root = TagIndex(invalidIndex)
	s.hasRoot = false
	s.finalized = false
}

// addNamedTag appends an uninitialized-payload record and returns its index.
func (s *store) addNamedTag(kind Kind, name string) TagIndex {
	idx := TagIndex(len(s.namedTags))
	s.namedTags = append(s.namedTags, namedTag{kind: kind, name: name})
	return idx
}

func (s *store) tag(idx TagIndex) *namedTag {
	return &s.namedTags[idx]
}

// newCompoundStorage allocates a fresh, empty child-list vector and
// returns its storage index (I5: unique per compound).
func (s *store) newCompoundStorage() int32 {
	idx := int32(len(s.compoundStorage))
	s.compoundStorage = append(s.compoundStorage, nil)
	return idx
}

func (s *store) appendChild(storageIndex int32, child TagIndex) {
	s.compoundStorage[storageIndex] = append(s.compoundStorage[storageIndex], child)
	delete(s.nameIndex, storageIndex) // invalidate acceleration cache
}

// newListElementStorage allocates a fresh, empty per-element position
// vector for a list and returns its storage index. Allocated exactly
// once per list, when the list's first element establishes its kind.
func (s *store) newListElementStorage() int32 {
	idx := int32(len(s.listElements))
	s.listElements = append(s.listElements, nil)
	return idx
}

func (s *store) appendListElement(storageIndex int32, pos int32) {
	s.listElements[storageIndex] = append(s.listElements[storageIndex], pos)
}

// lookupByName resolves a name within a compound's child list, building
// (and caching) an xxhash-bucketed index on first use — see SPEC_FULL.md
// §3 and compactindexsized's hash-accelerated key lookup.
func (s *store) lookupByName(storageIndex int32, name string) (TagIndex, bool) {
	children := s.compoundStorage[storageIndex]
	if len(children) < 8 {
		// Linear scan is faster than hashing for small compounds and
		// avoids building a cache that will rarely be reused.
		for _, c := range children {
			if s.tag(c).name == name {
				return c, true
			}
		}
		return TagIndex(invalidIndex), false
	}

	idx, ok := s.nameIndex[storageIndex]
	if !ok {
		idx = make(map[uint64][]TagIndex, len(children))
		for _, c := range children {
			h := xxhash.Sum64String(s.tag(c).name)
			idx[h] = append(idx[h], c)
		}
		s.nameIndex[storageIndex] = idx
	}

	h := xxhash.Sum64String(name)
	for _, c := range idx[h] {
		if s.tag(c).name == name {
			return c, true
		}
	}
	return TagIndex(invalidIndex), false
}

func (s *store) childNames(storageIndex int32) []string {
	children := s.compoundStorage[storageIndex]
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = s.tag(c).name
	}
	return out
}
