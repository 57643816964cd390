// Package indirect implements the pluggable indirect-block backend: storing
// and retrieving the (indirect_block, slot) -> optional target block mapping
// that the physical reader and writer walk to resolve a logical block index.
package indirect

import (
	"github.com/dargueta/v6fs/fserrors"
	"github.com/dargueta/v6fs/units"
)

// Map is the contract every indirect-block backend satisfies. A missing
// entry reads back as a nil *units.Block ("none"), never an error.
type Map interface {
	// ReadIndirect returns the target block stored in slot `slot` of the
	// indirect block `parent`, or nil if that slot has never been written.
	ReadIndirect(parent units.Block, slot int) (*units.Block, error)

	// WriteIndirect stores target in slot `slot` of indirect block `parent`.
	// A nil target clears the slot.
	WriteIndirect(parent units.Block, slot int, target *units.Block) error
}

// validSlot reports whether slot addresses one of the units.PointersPerBlock
// pointer-sized slots in an indirect block's frame.
//
// units.Classify's preserved off-by-one convention means the slot index for
// the very last logical block in a singly/doubly/triply indirect range
// equals units.PointersPerBlock itself, one past the last slot a
// units.BlockSize frame actually has room for. Every Map implementation
// rejects that (and any other out-of-range slot) with fserrors.ErrOutOfRange
// rather than silently wrapping or, worse, writing past the frame.
func validSlot(slot int) bool {
	return slot >= 0 && uint64(slot) < units.PointersPerBlock
}

func errSlotOutOfRange(parent units.Block, slot int) error {
	return fserrors.Annotate(fserrors.ErrOutOfRange, "slot %d of indirect block %d is out of range", slot, parent)
}
