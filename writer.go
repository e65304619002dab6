package nbt

import (
	"fmt"

	"github.com/nbtkit/nbt/nbterr"
)

// Writer extends a Builder with the export operations of
// SPEC_FULL.md §4.3/§4.8. The Builder itself is an implementation
// detail callers reach only through Writer's embedded methods
// (Begin, BeginCompound, WriteByte, ... Finalize).
type Writer struct {
	*Builder
}

func NewWriter() *Writer {
	return &Writer{Builder: newBuilder(newStore())}
}

func (w *Writer) requireFinalized() error {
	if !w.s.finalized {
		return fmt.Errorf("%w: call Finalize before exporting", nbterr.ErrStructureViolation)
	}
	return nil
}

// ExportBinaryBuffer renders the document to the big-endian binary
// encoding in memory, with no gzip framing.
func (w *Writer) ExportBinaryBuffer() ([]byte, error) {
	if err := w.requireFinalized(); err != nil {
		return nil, err
	}
	return encodeBinaryDocument(w.s)
}

// ExportBinaryUncompressed writes the binary encoding straight to path.
func (w *Writer) ExportBinaryUncompressed(path string) error {
	data, err := w.ExportBinaryBuffer()
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// ExportBinary writes the binary encoding to path wrapped in an
// RFC-1952 gzip member, the on-disk form most Minecraft data files use.
func (w *Writer) ExportBinary(path string) error {
	data, err := w.ExportBinaryBuffer()
	if err != nil {
		return err
	}
	compressed, err := gzipBytes(data)
	if err != nil {
		return err
	}
	return writeFile(path, compressed)
}

// ExportTextString renders the document as SNBT, in the given print
// mode, entirely in memory.
func (w *Writer) ExportTextString(mode PrintMode) (string, error) {
	if err := w.requireFinalized(); err != nil {
		return "", err
	}
	return encodeTextDocument(w.s, mode)
}

// ExportText writes the SNBT rendering of the document to path.
func (w *Writer) ExportText(path string, mode PrintMode) error {
	text, err := w.ExportTextString(mode)
	if err != nil {
		return err
	}
	return writeFile(path, []byte(text))
}
