package inode

import (
	"github.com/dargueta/v6fs/units"
	"github.com/dargueta/v6fs/volume"
)

// VolumeStore is a Store backed by a fixed-slot region of a volume: inode n
// lives at byte offset n*FrameSize. It has no notion of which slots are
// "in use" — that's tracked by whatever allocates inode numbers (typically
// an inode bitmap, mirroring the block bitmap.Bitmap allocator) — so Get
// never fails with ErrNotFound, only on I/O errors from the volume itself.
type VolumeStore struct {
	v volume.Volume
}

// NewVolumeStore creates a VolumeStore over v. v must reserve one FrameSize
// slot per inode number the caller intends to use.
func NewVolumeStore(v volume.Volume) *VolumeStore {
	return &VolumeStore{v: v}
}

func (s *VolumeStore) offsetOf(ino Ino) units.Byte {
	return units.Byte(uint64(ino) * FrameSize)
}

func (s *VolumeStore) Put(node *Inode) error {
	frame := Encode(node)
	return s.v.WriteAt(s.offsetOf(node.Ino), frame[:])
}

func (s *VolumeStore) Get(ino Ino) (*Inode, error) {
	var frame [FrameSize]byte
	if err := s.v.ReadAt(s.offsetOf(ino), frame[:]); err != nil {
		return nil, err
	}
	return Decode(frame, ino), nil
}
