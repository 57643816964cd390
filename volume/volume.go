// Package volume provides the byte-addressable storage abstraction every
// other layer of the core reads and writes through: a Volume exposing
// ReadAt/WriteAt, with no framing or headers of its own.
package volume

import "github.com/dargueta/v6fs/units"

// Volume is a byte-addressable store. Implementations must report a short
// transfer at the end of the backing store as fserrors.ErrUnexpectedEOF
// rather than silently truncating it; callers never need to inspect a
// returned byte count.
type Volume interface {
	ReadAt
	WriteAt
}

// ReadAt transfers len(buf) bytes from the volume starting at offset into
// buf.
type ReadAt interface {
	ReadAt(offset units.Byte, buf []byte) error
}

// WriteAt transfers len(buf) bytes from buf into the volume starting at
// offset.
type WriteAt interface {
	WriteAt(offset units.Byte, buf []byte) error
}
