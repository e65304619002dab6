package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCopyDocumentBinaryToTextToBinary covers P3: a document converted
// binary -> text -> binary compares equal to the original binary bytes.
func TestCopyDocumentBinaryToTextToBinary(t *testing.T) {
	original := NewWriter()
	require.NoError(t, original.Begin(""))
	require.NoError(t, original.WriteInt("x", 42))
	require.NoError(t, original.BeginCompound("nested"))
	require.NoError(t, original.WriteString("name", "pick"))
	require.NoError(t, original.EndCompound())
	require.NoError(t, original.BeginList("values"))
	require.NoError(t, original.WriteDouble("", 1.5))
	require.NoError(t, original.WriteDouble("", 2.5))
	require.NoError(t, original.EndList())
	require.NoError(t, original.Finalize())

	binaryA, err := original.ExportBinaryBuffer()
	require.NoError(t, err)

	r1 := NewReader()
	require.NoError(t, r1.ImportBinaryBuffer(binaryA))
	w1 := NewWriter()
	require.NoError(t, CopyDocument(r1, w1))
	text, err := w1.ExportTextString(PrintPretty)
	require.NoError(t, err)

	r2 := NewReader()
	require.NoError(t, r2.ImportTextString(text))
	w2 := NewWriter()
	require.NoError(t, CopyDocument(r2, w2))
	binaryB, err := w2.ExportBinaryBuffer()
	require.NoError(t, err)

	require.Equal(t, binaryA, binaryB)
}

// TestCopyDocumentThreeLevelNestedLists exercises CopyDocument's walk
// (copy.go) over a list<List<List<Int>>>, the nesting depth at which a
// contiguous per-list element range would have read copy.go's source
// elements from the wrong listPool slots.
func TestCopyDocumentThreeLevelNestedLists(t *testing.T) {
	original := NewWriter()
	require.NoError(t, original.Begin(""))
	require.NoError(t, original.BeginList("outer"))
	require.NoError(t, original.BeginList(""))
	require.NoError(t, original.BeginList(""))
	require.NoError(t, original.WriteInt("", 1))
	require.NoError(t, original.WriteInt("", 2))
	require.NoError(t, original.EndList())
	require.NoError(t, original.BeginList(""))
	require.NoError(t, original.WriteInt("", 3))
	require.NoError(t, original.EndList())
	require.NoError(t, original.EndList())
	require.NoError(t, original.BeginList(""))
	require.NoError(t, original.BeginList(""))
	require.NoError(t, original.WriteInt("", 4))
	require.NoError(t, original.EndList())
	require.NoError(t, original.EndList())
	require.NoError(t, original.EndList())
	require.NoError(t, original.Finalize())

	binaryA, err := original.ExportBinaryBuffer()
	require.NoError(t, err)

	r := NewReader()
	require.NoError(t, r.ImportBinaryBuffer(binaryA))
	w := NewWriter()
	require.NoError(t, CopyDocument(r, w))
	binaryB, err := w.ExportBinaryBuffer()
	require.NoError(t, err)

	require.Equal(t, binaryA, binaryB)
}
