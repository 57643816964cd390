package indirect

import "github.com/dargueta/v6fs/units"

type slotKey struct {
	parent units.Block
	slot   int
}

// MemoryMap is an in-memory Map backed by a Go map, used for testing and for
// any caller that doesn't need the indirect-block region to persist.
type MemoryMap struct {
	entries map[slotKey]units.Block
}

// NewMemoryMap creates an empty MemoryMap.
func NewMemoryMap() *MemoryMap {
	return &MemoryMap{entries: make(map[slotKey]units.Block)}
}

func (m *MemoryMap) ReadIndirect(parent units.Block, slot int) (*units.Block, error) {
	if !validSlot(slot) {
		return nil, errSlotOutOfRange(parent, slot)
	}

	target, ok := m.entries[slotKey{parent, slot}]
	if !ok {
		return nil, nil
	}
	target2 := target
	return &target2, nil
}

func (m *MemoryMap) WriteIndirect(parent units.Block, slot int, target *units.Block) error {
	if !validSlot(slot) {
		return errSlotOutOfRange(parent, slot)
	}

	key := slotKey{parent, slot}
	if target == nil {
		delete(m.entries, key)
		return nil
	}
	m.entries[key] = *target
	return nil
}
