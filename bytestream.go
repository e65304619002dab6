package nbt

import (
	"fmt"

	"github.com/valyala/bytebufferpool"

	"github.com/nbtkit/nbt/nbterr"
)

// byteReader is a bounds-checked read cursor over an owned byte slice,
// used by the binary decoder (the SNBT lexer keeps its own cursor).
// Grounded on
// compactindexsized/seekable-buffer.go's small cursor-over-a-slice style.
type byteReader struct {
	data []byte
	pos  int
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

func (r *byteReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *byteReader) take(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", nbterr.ErrUnexpectedEnd, n, r.remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *byteReader) readByte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *byteReader) readInt16() (int16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return getInt16(b), nil
}

func (r *byteReader) readUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return getUint16(b), nil
}

func (r *byteReader) readInt32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return getInt32(b), nil
}

func (r *byteReader) readInt64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return getInt64(b), nil
}

func (r *byteReader) readFloat32() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return getFloat32(b), nil
}

func (r *byteReader) readFloat64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return getFloat64(b), nil
}

// byteWriter is a pooled growable output buffer, grounding the write
// path on bytebufferpool rather than a bare bytes.Buffer so repeated
// binary exports within one process reuse backing arrays instead of
// allocating fresh ones per document.
type byteWriter struct {
	buf *bytebufferpool.ByteBuffer
}

var writerPool bytebufferpool.Pool

func newByteWriter() *byteWriter {
	return &byteWriter{buf: writerPool.Get()}
}

func (w *byteWriter) release() {
	writerPool.Put(w.buf)
}

func (w *byteWriter) bytes() []byte {
	return w.buf.Bytes()
}

func (w *byteWriter) writeByte(b byte) {
	w.buf.WriteByte(b)
}

func (w *byteWriter) writeBytes(b []byte) {
	w.buf.Write(b)
}

func (w *byteWriter) writeInt16(v int16) {
	var b [2]byte
	putInt16(b[:], v)
	w.buf.Write(b[:])
}

func (w *byteWriter) writeUint16(v uint16) {
	var b [2]byte
	putUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *byteWriter) writeInt32(v int32) {
	var b [4]byte
	putInt32(b[:], v)
	w.buf.Write(b[:])
}

func (w *byteWriter) writeInt64(v int64) {
	var b [8]byte
	putInt64(b[:], v)
	w.buf.Write(b[:])
}

func (w *byteWriter) writeFloat32(v float32) {
	var b [4]byte
	putFloat32(b[:], v)
	w.buf.Write(b[:])
}

func (w *byteWriter) writeFloat64(v float64) {
	var b [8]byte
	putFloat64(b[:], v)
	w.buf.Write(b[:])
}
