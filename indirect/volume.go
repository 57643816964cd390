package indirect

import (
	"github.com/dargueta/v6fs/units"
	"github.com/dargueta/v6fs/volume"
)

// VolumeMap is the volume-backed Map: slot `s` of parent block `p` lives at
// byte offset p*BlockSize + s*BlockPointerSize of the underlying volume. It
// is a write-back cache (see blockCache) — call Sync to flush pending writes.
type VolumeMap struct {
	cache *blockCache
}

// NewVolumeMap creates a VolumeMap over v, which must have room for
// totalBlocks blocks of units.BlockSize bytes each.
func NewVolumeMap(v volume.Volume, totalBlocks uint) *VolumeMap {
	return &VolumeMap{cache: newBlockCache(v, totalBlocks)}
}

func (m *VolumeMap) ReadIndirect(parent units.Block, slot int) (*units.Block, error) {
	if !validSlot(slot) {
		return nil, errSlotOutOfRange(parent, slot)
	}

	frame, err := m.cache.slice(parent)
	if err != nil {
		return nil, err
	}
	return readPointer(frame, slot), nil
}

func (m *VolumeMap) WriteIndirect(parent units.Block, slot int, target *units.Block) error {
	if !validSlot(slot) {
		return errSlotOutOfRange(parent, slot)
	}

	frame, err := m.cache.slice(parent)
	if err != nil {
		return err
	}
	writePointer(frame, slot, target)
	m.cache.markDirty(parent)
	return nil
}

// Sync flushes every dirty indirect block back to the underlying volume.
func (m *VolumeMap) Sync() error {
	return m.cache.Sync()
}
