package indirect

import (
	"encoding/binary"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/v6fs/units"
	"github.com/dargueta/v6fs/volume"
)

// blockCache is a block-oriented write-back cache over a volume's indirect-
// block region, modeled on dargueta-disko's
// file_systems/common/blockcache.BlockCache: it keeps the raw 1024-byte
// contents of every indirect block it has touched in memory, tracks which
// ones are loaded and which are dirty with a pair of boljen/go-bitmap
// bitmaps, and only goes back to the volume on a cache miss or an explicit
// Sync.
type blockCache struct {
	v           volume.Volume
	totalBlocks uint
	loaded      bitmap.Bitmap
	dirty       bitmap.Bitmap
	data        []byte
}

func newBlockCache(v volume.Volume, totalBlocks uint) *blockCache {
	return &blockCache{
		v:           v,
		totalBlocks: totalBlocks,
		loaded:      bitmap.New(int(totalBlocks)),
		dirty:       bitmap.New(int(totalBlocks)),
		data:        make([]byte, uint64(totalBlocks)*uint64(units.BlockSize)),
	}
}

// slice returns the in-memory 1024-byte frame for block, loading it from the
// volume first if it isn't cached yet.
func (c *blockCache) slice(block units.Block) ([]byte, error) {
	start := uint64(block) * uint64(units.BlockSize)
	end := start + uint64(units.BlockSize)
	frame := c.data[start:end]

	if !c.loaded.Get(int(block)) {
		if err := c.v.ReadAt(units.Byte(start), frame); err != nil {
			return nil, err
		}
		c.loaded.Set(int(block), true)
	}
	return frame, nil
}

func (c *blockCache) markDirty(block units.Block) {
	c.loaded.Set(int(block), true)
	c.dirty.Set(int(block), true)
}

// Sync writes every dirty block back to the volume and marks the cache
// clean.
func (c *blockCache) Sync() error {
	for i := uint(0); i < c.totalBlocks; i++ {
		if !c.dirty.Get(int(i)) {
			continue
		}

		start := uint64(i) * uint64(units.BlockSize)
		end := start + uint64(units.BlockSize)
		if err := c.v.WriteAt(units.Byte(start), c.data[start:end]); err != nil {
			return err
		}
		c.dirty.Set(int(i), false)
	}
	return nil
}

func slotOffset(slot int) uint64 {
	return uint64(slot) * uint64(units.BlockPointerSize)
}

func readPointer(frame []byte, slot int) *units.Block {
	off := slotOffset(slot)
	return units.DecodeBlockPointer(binary.LittleEndian.Uint64(frame[off : off+8]))
}

func writePointer(frame []byte, slot int, target *units.Block) {
	off := slotOffset(slot)
	binary.LittleEndian.PutUint64(frame[off:off+8], units.EncodeBlockPointer(target))
}
