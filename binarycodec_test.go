package nbt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinaryRoundTripAllScalarKinds(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin("root"))
	require.NoError(t, w.WriteByte("byte", -3))
	require.NoError(t, w.WriteShort("short", -1234))
	require.NoError(t, w.WriteInt("int", 123456))
	require.NoError(t, w.WriteLong("long", 9_000_000_000))
	require.NoError(t, w.WriteFloat("float", 3.5))
	require.NoError(t, w.WriteDouble("double", -7.25))
	require.NoError(t, w.WriteByteArray("ba", []int8{1, -2, 3}))
	require.NoError(t, w.WriteIntArray("ia", []int32{1, -2, 3}))
	require.NoError(t, w.WriteLongArray("la", []int64{1, -2, 3}))
	require.NoError(t, w.WriteString("str", "héllo"))
	require.NoError(t, w.Finalize())

	data, err := w.ExportBinaryBuffer()
	require.NoError(t, err)

	r := NewReader()
	require.NoError(t, r.ImportBinaryBuffer(data))
	require.True(t, r.OpenCompound("root"))

	byteV, err := r.ReadByte("byte")
	require.NoError(t, err)
	require.Equal(t, int8(-3), byteV)

	shortV, err := r.ReadShort("short")
	require.NoError(t, err)
	require.Equal(t, int16(-1234), shortV)

	intV, err := r.ReadInt("int")
	require.NoError(t, err)
	require.Equal(t, int32(123456), intV)

	longV, err := r.ReadLong("long")
	require.NoError(t, err)
	require.EqualValues(t, 9_000_000_000, longV)

	floatV, err := r.ReadFloat("float")
	require.NoError(t, err)
	require.Equal(t, float32(3.5), floatV)

	doubleV, err := r.ReadDouble("double")
	require.NoError(t, err)
	require.Equal(t, -7.25, doubleV)

	ba, err := r.ReadByteArray("ba")
	require.NoError(t, err)
	require.Equal(t, []int8{1, -2, 3}, ba)

	ia, err := r.ReadIntArray("ia")
	require.NoError(t, err)
	require.Equal(t, []int32{1, -2, 3}, ia)

	la, err := r.ReadLongArray("la")
	require.NoError(t, err)
	require.Equal(t, []int64{1, -2, 3}, la)

	str, err := r.ReadString("str")
	require.NoError(t, err)
	require.Equal(t, "héllo", str)
}

// TestNestedListOfLists covers the two-level list<List<Int>> shape. See
// TestThreeLevelNestedLists for the three-level S2 scenario, which is
// the one a contiguous per-list element range cannot represent.
func TestNestedListOfLists(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(""))
	require.NoError(t, w.BeginList("outer"))
	for i := 0; i < 3; i++ {
		require.NoError(t, w.BeginList(""))
		require.NoError(t, w.WriteInt("", int32(i)))
		require.NoError(t, w.WriteInt("", int32(i+1)))
		require.NoError(t, w.EndList())
	}
	require.NoError(t, w.EndList())
	require.NoError(t, w.Finalize())

	data, err := w.ExportBinaryBuffer()
	require.NoError(t, err)

	r := NewReader()
	require.NoError(t, r.ImportBinaryBuffer(data))
	require.True(t, r.OpenCompound(""))
	require.True(t, r.OpenList("outer"))
	n, err := r.ListSize()
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	for i := 0; i < 3; i++ {
		require.True(t, r.OpenList(""))
		a, err := r.ReadInt("")
		require.NoError(t, err)
		require.Equal(t, int32(i), a)
		b, err := r.ReadInt("")
		require.NoError(t, err)
		require.Equal(t, int32(i+1), b)
		require.NoError(t, r.CloseList())
	}
}

// TestThreeLevelNestedLists covers S2: list<List<List<Int>>>. Building
// outer[0] (itself a list<List<Int>>) pushes several of its own entries
// into listPool before outer[1] gets its entry; a per-list element range
// assumed contiguous from outer[0]'s position would make outer[1] and
// outer[2] resolve to the wrong listPool slots entirely.
func TestThreeLevelNestedLists(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(""))
	require.NoError(t, w.BeginList("outer"))

	// outer[0]: two inner lists of different lengths, so this element
	// alone pushes three entries into listPool (itself plus two children).
	require.NoError(t, w.BeginList(""))
	require.NoError(t, w.BeginList(""))
	require.NoError(t, w.WriteInt("", 1))
	require.NoError(t, w.WriteInt("", 2))
	require.NoError(t, w.WriteInt("", 3))
	require.NoError(t, w.EndList())
	require.NoError(t, w.BeginList(""))
	require.NoError(t, w.WriteInt("", 4))
	require.NoError(t, w.EndList())
	require.NoError(t, w.EndList())

	// outer[1]: a single inner list with one element.
	require.NoError(t, w.BeginList(""))
	require.NoError(t, w.BeginList(""))
	require.NoError(t, w.WriteInt("", 100))
	require.NoError(t, w.EndList())
	require.NoError(t, w.EndList())

	// outer[2]: a middle list with zero inner lists.
	require.NoError(t, w.BeginList(""))
	require.NoError(t, w.EndList())

	require.NoError(t, w.EndList())
	require.NoError(t, w.Finalize())

	data, err := w.ExportBinaryBuffer()
	require.NoError(t, err)

	r := NewReader()
	require.NoError(t, r.ImportBinaryBuffer(data))
	require.True(t, r.OpenCompound(""))
	require.True(t, r.OpenList("outer"))
	n, err := r.ListSize()
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	require.True(t, r.OpenList(""))
	n0, err := r.ListSize()
	require.NoError(t, err)
	require.EqualValues(t, 2, n0)
	require.True(t, r.OpenList(""))
	for _, want := range []int32{1, 2, 3} {
		v, err := r.ReadInt("")
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
	require.NoError(t, r.CloseList())
	require.True(t, r.OpenList(""))
	v, err := r.ReadInt("")
	require.NoError(t, err)
	require.Equal(t, int32(4), v)
	require.NoError(t, r.CloseList())
	require.NoError(t, r.CloseList())

	require.True(t, r.OpenList(""))
	n1, err := r.ListSize()
	require.NoError(t, err)
	require.EqualValues(t, 1, n1)
	require.True(t, r.OpenList(""))
	v, err = r.ReadInt("")
	require.NoError(t, err)
	require.Equal(t, int32(100), v)
	require.NoError(t, r.CloseList())
	require.NoError(t, r.CloseList())

	require.True(t, r.OpenList(""))
	n2, err := r.ListSize()
	require.NoError(t, err)
	require.EqualValues(t, 0, n2)
	require.NoError(t, r.CloseList())
}

// TestListOfCompoundsWithNestedContainers covers a list<Compound> whose
// elements contain their own nested compound and list, exercising the
// same shared-pool interleaving as TestThreeLevelNestedLists but through
// compoundPool instead of listPool.
func TestListOfCompoundsWithNestedContainers(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(""))
	require.NoError(t, w.BeginList("items"))

	require.NoError(t, w.BeginCompound(""))
	require.NoError(t, w.WriteInt("id", 0))
	require.NoError(t, w.BeginCompound("inner"))
	require.NoError(t, w.WriteString("name", "first"))
	require.NoError(t, w.EndCompound())
	require.NoError(t, w.BeginList("tags"))
	require.NoError(t, w.WriteString("", "a"))
	require.NoError(t, w.WriteString("", "b"))
	require.NoError(t, w.EndList())
	require.NoError(t, w.EndCompound())

	require.NoError(t, w.BeginCompound(""))
	require.NoError(t, w.WriteInt("id", 1))
	require.NoError(t, w.EndCompound())

	require.NoError(t, w.EndList())
	require.NoError(t, w.Finalize())

	data, err := w.ExportBinaryBuffer()
	require.NoError(t, err)

	r := NewReader()
	require.NoError(t, r.ImportBinaryBuffer(data))
	require.True(t, r.OpenCompound(""))
	require.True(t, r.OpenList("items"))
	n, err := r.ListSize()
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	require.True(t, r.OpenCompound(""))
	id, err := r.ReadInt("id")
	require.NoError(t, err)
	require.Equal(t, int32(0), id)
	require.True(t, r.OpenCompound("inner"))
	name, err := r.ReadString("name")
	require.NoError(t, err)
	require.Equal(t, "first", name)
	require.NoError(t, r.CloseCompound())
	require.True(t, r.OpenList("tags"))
	tag0, err := r.ReadString("")
	require.NoError(t, err)
	require.Equal(t, "a", tag0)
	tag1, err := r.ReadString("")
	require.NoError(t, err)
	require.Equal(t, "b", tag1)
	require.NoError(t, r.CloseList())
	require.NoError(t, r.CloseCompound())

	require.True(t, r.OpenCompound(""))
	id1, err := r.ReadInt("id")
	require.NoError(t, err)
	require.Equal(t, int32(1), id1)
	require.NoError(t, r.CloseCompound())
}

// TestEmptyCompoundInList covers S3: a list of empty compounds.
func TestEmptyCompoundInList(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(""))
	require.NoError(t, w.BeginList("items"))
	for i := 0; i < 2; i++ {
		require.NoError(t, w.BeginCompound(""))
		require.NoError(t, w.EndCompound())
	}
	require.NoError(t, w.EndList())
	require.NoError(t, w.Finalize())

	data, err := w.ExportBinaryBuffer()
	require.NoError(t, err)

	r := NewReader()
	require.NoError(t, r.ImportBinaryBuffer(data))
	require.True(t, r.OpenCompound(""))
	require.True(t, r.OpenList("items"))
	n, err := r.ListSize()
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
	for i := 0; i < 2; i++ {
		require.True(t, r.OpenCompound(""))
		require.EqualValues(t, 0, r.Count())
		require.NoError(t, r.CloseCompound())
	}
}

func TestListTypeConflictError(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(""))
	require.NoError(t, w.BeginList("mixed"))
	require.NoError(t, w.WriteInt("", 1))
	err := w.WriteString("", "x")
	require.Error(t, err)
}

func TestGzipTransportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.nbt.gz")

	w := NewWriter()
	require.NoError(t, w.Begin("root"))
	require.NoError(t, w.WriteInt("x", 99))
	require.NoError(t, w.Finalize())
	require.NoError(t, w.ExportBinary(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, looksGzip(raw))

	r := NewReader()
	require.NoError(t, r.Import(path))
	require.True(t, r.OpenCompound("root"))
	v, err := r.ReadInt("x")
	require.NoError(t, err)
	require.Equal(t, int32(99), v)
}
