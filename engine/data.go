package engine

import (
	"github.com/dargueta/v6fs/fserrors"
	"github.com/dargueta/v6fs/inode"
	"github.com/dargueta/v6fs/units"
	"github.com/dargueta/v6fs/volume"
)

// DataManager is the byte-granular read/write layer over a PhysicalReader /
// PhysicalWriter pair: it splits a (offset, buffer) request into the chunks
// that fall within each logical block, allocates and maps a leaf data block
// the first time a chunk touches a hole, and grows the inode's recorded size
// on write.
//
// Each chunk is written to buf[written:written+chunkLen] — not
// buf[chunkBegin:chunkLength], which is what the format this was ported from
// used, and which silently mis-slices any write or read spanning more than
// two blocks.
type DataManager struct {
	reader *PhysicalReader
	writer *PhysicalWriter
	data   volume.Volume
	inodes inode.Store
}

// NewDataManager creates a DataManager over the given reader/writer pair,
// data region, and inode store.
func NewDataManager(reader *PhysicalReader, writer *PhysicalWriter, data volume.Volume, inodes inode.Store) *DataManager {
	return &DataManager{reader: reader, writer: writer, data: data, inodes: inodes}
}

// ReadAt fills buf with ino's contents starting at offset. A read that would
// run past the inode's recorded size fails outright with
// fserrors.ErrUnexpectedEOF rather than returning a truncated result.
func (m *DataManager) ReadAt(ino inode.Ino, offset units.Byte, buf []byte) error {
	node, err := m.inodes.Get(ino)
	if err != nil {
		return err
	}
	if offset+units.Byte(len(buf)) > node.Size {
		return fserrors.Annotate(fserrors.ErrUnexpectedEOF,
			"read of %d bytes at offset %d exceeds inode size %d", len(buf), offset, node.Size)
	}

	written := 0
	for written < len(buf) {
		logical, blockOffset := blockAndOffset(offset + units.Byte(written))
		chunkLen := minInt(len(buf)-written, int(uint64(units.BlockSize)-blockOffset))
		dest := buf[written : written+chunkLen]

		physical, err := m.reader.Resolve(ino, logical)
		if err != nil {
			return err
		}

		if physical == nil {
			for i := range dest {
				dest[i] = 0
			}
		} else {
			physOffset := units.Byte(uint64(*physical)*uint64(units.BlockSize) + blockOffset)
			if err := m.data.ReadAt(physOffset, dest); err != nil {
				return err
			}
		}

		written += chunkLen
	}
	return nil
}

// WriteAt writes buf to ino's contents starting at offset, growing the
// inode's recorded size if the write extends past it. A logical block that
// isn't mapped yet is allocated here — the data layer's responsibility per
// this core's allocation-of-data-blocks convention — and wired in with
// PhysicalWriter.SetPhysical before the bytes are written to it.
func (m *DataManager) WriteAt(ino inode.Ino, offset units.Byte, buf []byte) error {
	written := 0
	for written < len(buf) {
		logical, blockOffset := blockAndOffset(offset + units.Byte(written))
		chunkLen := minInt(len(buf)-written, int(uint64(units.BlockSize)-blockOffset))
		src := buf[written : written+chunkLen]

		physical, err := m.reader.Resolve(ino, logical)
		if err != nil {
			return err
		}
		if physical == nil {
			leaf, err := m.writer.AllocateBlock()
			if err != nil {
				return err
			}
			if err := m.writer.SetPhysical(ino, logical, &leaf); err != nil {
				return err
			}
			physical = &leaf
		}

		physOffset := units.Byte(uint64(*physical)*uint64(units.BlockSize) + blockOffset)
		if err := m.data.WriteAt(physOffset, src); err != nil {
			return err
		}

		written += chunkLen
	}

	node, err := m.inodes.Get(ino)
	if err != nil {
		return err
	}
	if newSize := offset + units.Byte(len(buf)); newSize > node.Size {
		updated := node.Clone()
		updated.Size = newSize
		if err := m.inodes.Put(updated); err != nil {
			return err
		}
	}
	return nil
}

func blockAndOffset(pos units.Byte) (units.Block, uint64) {
	return units.Block(uint64(pos) / uint64(units.BlockSize)), uint64(pos) % uint64(units.BlockSize)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
