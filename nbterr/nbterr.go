// Package nbterr defines the sentinel error values that make up the NBT
// error taxonomy. Call sites wrap a sentinel with fmt.Errorf("%w: ...", err)
// so that callers can still errors.Is against it while getting a human
// detail, mirroring the teacher's own error style (fmt.Errorf("invalid
// header: %v", err) in compactindexsized/query.go and readers.go) rather
// than pulling in a third-party errors package such as pkg/errors or
// cockroachdb/errors.
package nbterr

import "errors"

var (
	// ErrStructureViolation covers: an unnamed tag inside a compound, a
	// named tag inside a list, or a close call that doesn't match the open
	// container's kind.
	ErrStructureViolation = errors.New("nbt: structure violation")

	// ErrDepthExceeded is returned when nesting depth would exceed 512.
	ErrDepthExceeded = errors.New("nbt: nesting depth exceeded")

	// ErrUnexpectedEnd is returned when the binary byte stream is
	// exhausted mid-payload.
	ErrUnexpectedEnd = errors.New("nbt: unexpected end of stream")

	// ErrMalformedText is returned when the SNBT tokenizer or parser
	// cannot recognize the input.
	ErrMalformedText = errors.New("nbt: malformed text")

	// ErrTypeMismatch is returned when a reader's read_X(name) finds a tag
	// of a different kind than requested, and when a builder write
	// conflicts with a list's established element kind.
	ErrTypeMismatch = errors.New("nbt: type mismatch")

	// ErrNameNotFound is returned when a reader's mandatory read_X(name)
	// finds no tag with that name in the current compound.
	ErrNameNotFound = errors.New("nbt: name not found")

	// ErrListOverread is returned when a reader reads past a list's
	// declared size.
	ErrListOverread = errors.New("nbt: list overread")

	// ErrIO covers file-open/read/write and inflate/deflate failures.
	ErrIO = errors.New("nbt: io error")

	// ErrFinalized is returned when a builder operation is attempted
	// after finalize() has already run.
	ErrFinalized = errors.New("nbt: builder already finalized")

	// ErrNoOpenContainer is returned when a builder or reader operation
	// requires an open container frame and none exists.
	ErrNoOpenContainer = errors.New("nbt: no open container")
)
