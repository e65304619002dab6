package nbt

// importFromBytes resets the reader's store, runs the given decode
// function through a fresh internal Builder, finalizes it, and
// positions the cursor at the document's virtual root (SPEC_FULL.md
// §4.3: "leaves the Reader cursor positioned at the (virtual) parent of
// the root compound, ready for OpenCompound("")").
func (r *Reader) importFromBytes(data []byte, decode func([]byte, *Builder) error) error {
	r.s.clear()
	r.stack = cursorStack{}
	b := newBuilder(r.s)
	if err := decode(data, b); err != nil {
		return err
	}
	return nil
}

// ImportBinaryUncompressed loads path as raw big-endian binary NBT,
// with no gzip framing expected.
func (r *Reader) ImportBinaryUncompressed(path string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	return r.importFromBytes(data, decodeBinary)
}

// ImportBinary loads path as binary NBT, auto-inflating an RFC-1952
// gzip member if the file is gzip-framed.
func (r *Reader) ImportBinary(path string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if looksGzip(data) {
		data, err = gunzipBytes(data)
		if err != nil {
			return err
		}
	}
	return r.importFromBytes(data, decodeBinary)
}

// ImportText loads path as SNBT text.
func (r *Reader) ImportText(path string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	return r.importFromBytes(data, decodeText)
}

// Import auto-detects framing per P6: gzip magic first, then the
// binary tag-kind heuristic, falling back to SNBT text.
func (r *Reader) Import(path string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if looksGzip(data) {
		data, err = gunzipBytes(data)
		if err != nil {
			return err
		}
		return r.importFromBytes(data, decodeBinary)
	}
	if looksBinary(data) {
		return r.importFromBytes(data, decodeBinary)
	}
	return r.importFromBytes(data, decodeText)
}

// ImportBinaryBuffer parses in-memory binary NBT (no gzip), symmetric
// with Writer.ExportBinaryBuffer — useful for round-tripping in tests
// and for the CLI's diff command without touching disk twice.
func (r *Reader) ImportBinaryBuffer(data []byte) error {
	return r.importFromBytes(data, decodeBinary)
}

// ImportTextString parses in-memory SNBT text, symmetric with
// Writer.ExportTextString.
func (r *Reader) ImportTextString(text string) error {
	return r.importFromBytes([]byte(text), decodeText)
}
