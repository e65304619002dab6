package nbt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreLookupByNameLinearAndAccelerated(t *testing.T) {
	s := newStore()

	// Fewer than 8 children: linear scan, no cached hash index.
	small := s.newCompoundStorage()
	for i := 0; i < 3; i++ {
		idx := s.addNamedTag(KindInt, fmt.Sprintf("s%d", i))
		s.tag(idx).scalarBits = uint64(100 + i)
		s.appendChild(small, idx)
	}
	idx, ok := s.lookupByName(small, "s2")
	require.True(t, ok)
	require.EqualValues(t, 102, s.tag(idx).scalarBits)
	_, cached := s.nameIndex[small]
	require.False(t, cached)

	// 8 or more children: hash-accelerated lookup.
	storageIndex := s.newCompoundStorage()
	for i := 0; i < 20; i++ {
		idx := s.addNamedTag(KindInt, fmt.Sprintf("k%02d", i))
		s.tag(idx).scalarBits = uint64(i)
		s.appendChild(storageIndex, idx)
	}

	idx, ok = s.lookupByName(storageIndex, "k00")
	require.True(t, ok)
	require.EqualValues(t, 0, s.tag(idx).scalarBits)

	idx, ok = s.lookupByName(storageIndex, "k19")
	require.True(t, ok)
	require.EqualValues(t, 19, s.tag(idx).scalarBits)

	_, ok = s.lookupByName(storageIndex, "missing")
	require.False(t, ok)
}

func TestStoreClearResetsEverything(t *testing.T) {
	s := newStore()
	storageIndex := s.newCompoundStorage()
	idx := s.addNamedTag(KindByte, "a")
	s.appendChild(storageIndex, idx)
	s.root = idx
	s.hasRoot = true
	s.finalized = true

	s.clear()

	require.Len(t, s.namedTags, 0)
	require.Len(t, s.compoundStorage, 0)
	require.False(t, s.hasRoot)
	require.False(t, s.finalized)
}

func TestStoreAppendChildInvalidatesNameCache(t *testing.T) {
	s := newStore()
	storageIndex := s.newCompoundStorage()
	for i := 0; i < 10; i++ {
		idx := s.addNamedTag(KindInt, fmt.Sprintf("k%d", i))
		s.appendChild(storageIndex, idx)
	}
	_, ok := s.lookupByName(storageIndex, "k9")
	require.True(t, ok)
	require.NotNil(t, s.nameIndex[storageIndex])

	next := s.addNamedTag(KindInt, "k10")
	s.appendChild(storageIndex, next)
	_, cached := s.nameIndex[storageIndex]
	require.False(t, cached, "appendChild must invalidate the cached lookup index")

	idx, ok := s.lookupByName(storageIndex, "k10")
	require.True(t, ok)
	require.Equal(t, next, idx)
}
