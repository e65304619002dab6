package nbt

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/nbtkit/nbt/nbterr"
)

// gzipMagic is the two-byte RFC-1952 gzip member header, used to
// auto-detect a gzip-framed binary file the same way compactindexsized's
// query.go sniffs its own magic bytes before deciding how to parse a
// file (SPEC_FULL.md §4.8).
var gzipMagic = [2]byte{0x1f, 0x8b}

func looksGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == gzipMagic[0] && data[1] == gzipMagic[1]
}

// looksBinary reports whether data opens with a valid NBT tag kind byte,
// the same heuristic P6 asks the auto-detecting Import to use to decide
// between binary and text framing.
func looksBinary(data []byte) bool {
	return len(data) >= 1 && Kind(data[0]).Valid() && Kind(data[0]) != KindEnd
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nbterr.ErrIO, err)
	}
	return data, nil
}

func gunzipBytes(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nbterr.ErrIO, err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nbterr.ErrIO, err)
	}
	return out, nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", nbterr.ErrIO, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", nbterr.ErrIO, err)
	}
	return buf.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", nbterr.ErrIO, err)
	}
	return nil
}
