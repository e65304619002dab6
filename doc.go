// Package nbt reads and writes Minecraft's Named Binary Tag format: the
// big-endian binary encoding (optionally gzip-framed) and the SNBT text
// encoding, over a pooled, index-based in-memory tree. Build a document
// with Writer, then export it; read one back with Reader, then navigate
// it with Open/Close and the typed Read*/MaybeRead* methods.
package nbt
