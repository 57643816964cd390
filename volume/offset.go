package volume

import "github.com/dargueta/v6fs/units"

// OffsetVolume is a transparent translator that adds a constant byte offset
// to every call against a backing Volume, used to carve an inode region and a
// data region out of a single underlying volume.
type OffsetVolume struct {
	backend Volume
	offset  units.Byte
}

// NewOffsetVolume wraps backend so that offset 0 as seen by callers of the
// returned Volume is actually offset bytes into backend.
func NewOffsetVolume(backend Volume, offset units.Byte) *OffsetVolume {
	return &OffsetVolume{backend: backend, offset: offset}
}

func (v *OffsetVolume) ReadAt(offset units.Byte, buf []byte) error {
	return v.backend.ReadAt(offset+v.offset, buf)
}

func (v *OffsetVolume) WriteAt(offset units.Byte, buf []byte) error {
	return v.backend.WriteAt(offset+v.offset, buf)
}
