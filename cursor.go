package nbt

// maxDepth is the nesting-depth bound of SPEC_FULL.md invariant I3.
const maxDepth = 512

// frame is one entry of the open-container stack shared by Builder and
// Reader (SPEC_FULL.md §4.3). A frame is either "named" — reached through
// a compound, in which case its payload lives directly on a namedTag — or
// anonymous — reached as a list element, in which case its payload lives
// in the matching container-descriptor pool (listPool/compoundPool).
type frame struct {
	named     bool
	kind      Kind
	tagIndex  TagIndex // valid when named
	poolIndex int32    // valid when !named: index into listPool/compoundPool

	// currentIndex is the reader's cursor into a List's elements. Unused
	// during building.
	currentIndex int32
}

func (f *frame) listPayload(s *store) *listPayload {
	if f.named {
		return &s.tag(f.tagIndex).list
	}
	return &s.listPool[f.poolIndex]
}

func (f *frame) compoundPayload(s *store) *compoundPayload {
	if f.named {
		return &s.tag(f.tagIndex).compound
	}
	return &s.compoundPool[f.poolIndex]
}

func (f *frame) elementKind(s *store) Kind {
	return f.listPayload(s).elemKind
}

func (f *frame) setElementKind(s *store, k Kind) {
	f.listPayload(s).elemKind = k
}

func (f *frame) elementStorageIndex(s *store) int32 {
	return f.listPayload(s).storage
}

func (f *frame) setElementStorageIndex(s *store, storageIndex int32) {
	f.listPayload(s).storage = storageIndex
}

// elementPos resolves a list's i-th element to its position within the
// pool matching the list's element kind, via the list's explicit
// per-element position vector (see listPayload).
func (f *frame) elementPos(s *store, i int32) int32 {
	return s.listElements[f.elementStorageIndex(s)][i]
}

func (f *frame) incrementListCount(s *store) {
	f.listPayload(s).count++
}

func (f *frame) storageIndex(s *store) int32 {
	return f.compoundPayload(s).storageIndex
}

// count returns the number of elements written/available so far: list
// length for a List frame, child count for a Compound frame.
func (f *frame) count(s *store) int32 {
	if f.kind == KindList {
		return f.listPayload(s).count
	}
	return int32(len(s.compoundStorage[f.storageIndex(s)]))
}

// cursorStack is the chain of open containers during build or traversal.
type cursorStack struct {
	frames []frame
}

func (c *cursorStack) depth() int {
	return len(c.frames)
}

func (c *cursorStack) empty() bool {
	return len(c.frames) == 0
}

func (c *cursorStack) top() *frame {
	return &c.frames[len(c.frames)-1]
}

func (c *cursorStack) push(f frame) {
	c.frames = append(c.frames, f)
}

func (c *cursorStack) pop() frame {
	f := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	return f
}
