package nbt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextRoundTripScalarsAndTypeSuffixes(t *testing.T) {
	const doc = `{byte: 5b, short: 12s, int: 42, long: 99L, float: 1.5f, double: 2.25d, str: "hi there", name: unquoted_ok}`

	r := NewReader()
	require.NoError(t, r.ImportTextString(doc))
	require.True(t, r.OpenCompound(""))

	b, err := r.ReadByte("byte")
	require.NoError(t, err)
	require.Equal(t, int8(5), b)

	sh, err := r.ReadShort("short")
	require.NoError(t, err)
	require.Equal(t, int16(12), sh)

	i, err := r.ReadInt("int")
	require.NoError(t, err)
	require.Equal(t, int32(42), i)

	l, err := r.ReadLong("long")
	require.NoError(t, err)
	require.Equal(t, int64(99), l)

	f, err := r.ReadFloat("float")
	require.NoError(t, err)
	require.InDelta(t, 1.5, f, 1e-6)

	d, err := r.ReadDouble("double")
	require.NoError(t, err)
	require.InDelta(t, 2.25, d, 1e-9)

	str, err := r.ReadString("str")
	require.NoError(t, err)
	require.Equal(t, "hi there", str)

	name, err := r.ReadString("name")
	require.NoError(t, err)
	require.Equal(t, "unquoted_ok", name)
}

func TestTextPackedArrays(t *testing.T) {
	const doc = `{bytes: [B; 1b, 2b, 3b], ints: [I; 10, 20, 30], longs: [L; 1L, 2L]}`

	r := NewReader()
	require.NoError(t, r.ImportTextString(doc))
	require.True(t, r.OpenCompound(""))

	ba, err := r.ReadByteArray("bytes")
	require.NoError(t, err)
	require.Equal(t, []int8{1, 2, 3}, ba)

	ia, err := r.ReadIntArray("ints")
	require.NoError(t, err)
	require.Equal(t, []int32{10, 20, 30}, ia)

	la, err := r.ReadLongArray("longs")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, la)
}

func TestTextWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(""))
	require.NoError(t, w.WriteInt("x", 7))
	require.NoError(t, w.BeginList("list"))
	require.NoError(t, w.WriteInt("", 1))
	require.NoError(t, w.WriteInt("", 2))
	require.NoError(t, w.EndList())
	require.NoError(t, w.Finalize())

	text, err := w.ExportTextString(PrintCompact)
	require.NoError(t, err)

	r := NewReader()
	require.NoError(t, r.ImportTextString(text))
	require.True(t, r.OpenCompound(""))
	x, err := r.ReadInt("x")
	require.NoError(t, err)
	require.Equal(t, int32(7), x)

	require.True(t, r.OpenList("list"))
	n, err := r.ListSize()
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestTextNaNAndInfinityRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(""))
	require.NoError(t, w.WriteDouble("nan", math.NaN()))
	require.NoError(t, w.WriteDouble("pinf", math.Inf(1)))
	require.NoError(t, w.WriteDouble("ninf", math.Inf(-1)))
	require.NoError(t, w.Finalize())

	text, err := w.ExportTextString(PrintCompact)
	require.NoError(t, err)
	require.Contains(t, text, "NaN")
	require.Contains(t, text, "Infinity")
	require.Contains(t, text, "-Infinity")

	r := NewReader()
	require.NoError(t, r.ImportTextString(text))
	require.True(t, r.OpenCompound(""))
	nan, err := r.ReadDouble("nan")
	require.NoError(t, err)
	require.True(t, math.IsNaN(nan))
}

// TestTextThreeLevelNestedLists covers the printer's path through
// store.listElements for a list<List<List<Int>>> (see
// binarycodec_test.go's TestThreeLevelNestedLists for the same shape on
// the binary codec).
func TestTextThreeLevelNestedLists(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(""))
	require.NoError(t, w.BeginList("outer"))
	require.NoError(t, w.BeginList(""))
	require.NoError(t, w.BeginList(""))
	require.NoError(t, w.WriteInt("", 1))
	require.NoError(t, w.WriteInt("", 2))
	require.NoError(t, w.EndList())
	require.NoError(t, w.BeginList(""))
	require.NoError(t, w.WriteInt("", 3))
	require.NoError(t, w.EndList())
	require.NoError(t, w.EndList())
	require.NoError(t, w.BeginList(""))
	require.NoError(t, w.BeginList(""))
	require.NoError(t, w.WriteInt("", 4))
	require.NoError(t, w.EndList())
	require.NoError(t, w.EndList())
	require.NoError(t, w.EndList())
	require.NoError(t, w.Finalize())

	text, err := w.ExportTextString(PrintCompact)
	require.NoError(t, err)
	require.Equal(t, `{outer:[[[1,2],[3]],[[4]]]}`, text)

	r := NewReader()
	require.NoError(t, r.ImportTextString(text))
	require.True(t, r.OpenCompound(""))
	require.True(t, r.OpenList("outer"))
	require.True(t, r.OpenList(""))
	require.True(t, r.OpenList(""))
	a, err := r.ReadInt("")
	require.NoError(t, err)
	require.Equal(t, int32(1), a)
	b, err := r.ReadInt("")
	require.NoError(t, err)
	require.Equal(t, int32(2), b)
	require.NoError(t, r.CloseList())
	require.True(t, r.OpenList(""))
	c, err := r.ReadInt("")
	require.NoError(t, err)
	require.Equal(t, int32(3), c)
	require.NoError(t, r.CloseList())
}

func TestMalformedTextFails(t *testing.T) {
	r := NewReader()
	err := r.ImportTextString(`{unterminated: "oops}`)
	require.Error(t, err)
}
