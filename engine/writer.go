package engine

import (
	"github.com/dargueta/v6fs/bitmap"
	"github.com/dargueta/v6fs/fserrors"
	"github.com/dargueta/v6fs/indirect"
	"github.com/dargueta/v6fs/inode"
	"github.com/dargueta/v6fs/units"
)

// PhysicalWriter sets the physical block mapped to a (inode, logical block)
// pair, lazily allocating whatever indirect blocks are missing on the path to
// it. It never allocates the leaf data block itself — the caller supplies the
// target physical block explicitly, the same way write_physical takes an
// explicit physical_block parameter rather than inventing one; allocating
// that block is the data layer's job (see DataManager).
//
// Allocating an indirect block (singly, doubly, or triply) adds
// units.BlockSize to the inode's recorded size, regardless of whether that
// block happens to sit behind the inode's own pointer field or one level
// deeper. size doubles as a watermark of how much has been allocated on the
// inode's behalf, separate from whatever the byte-granular layer
// (DataManager) grows it to. Every new block is written into its parent (the
// indirect slot, or the inode's own pointer field) before that parent is
// itself persisted one level up — a block is never reachable from a
// persisted inode before its own contents are in place.
type PhysicalWriter struct {
	blocks   *bitmap.Bitmap
	indirect indirect.Map
	inodes   inode.Store
}

// NewPhysicalWriter creates a PhysicalWriter allocating from blocks.
func NewPhysicalWriter(blocks *bitmap.Bitmap, ind indirect.Map, inodes inode.Store) *PhysicalWriter {
	return &PhysicalWriter{blocks: blocks, indirect: ind, inodes: inodes}
}

// AllocateBlock claims one free block from the bitmap this writer owns. It's
// exported for the data layer, which must allocate a file's leaf data blocks
// itself before calling SetPhysical to wire one in.
func (w *PhysicalWriter) AllocateBlock() (units.Block, error) {
	return w.allocate()
}

// SetPhysical sets the physical block mapped to logical block l of ino to
// target, lazily allocating whatever indirect blocks are needed to reach it.
// A nil target clears the mapping without allocating anything.
func (w *PhysicalWriter) SetPhysical(ino inode.Ino, l units.Block, target *units.Block) error {
	node, err := w.inodes.Get(ino)
	if err != nil {
		return err
	}

	ind := units.Classify(l)

	switch ind.Kind {
	case units.Direct:
		return w.setDirect(node, ind, target)
	case units.Singly:
		return w.setSingly(node, ind, target)
	case units.Doubly:
		return w.setDoubly(node, ind, target)
	case units.Triply:
		return w.setTriply(node, ind, target)
	default:
		return fserrors.Annotate(fserrors.ErrOutOfRange, "logical block %d is out of range", l)
	}
}

func (w *PhysicalWriter) allocate() (units.Block, error) {
	k, ok := w.blocks.Allocate()
	if !ok {
		return 0, fserrors.ErrOutOfBlocks
	}
	return units.Block(k), nil
}

// setDirect unconditionally overwrites direct slot i and persists the inode,
// whether or not the slot already held a value.
func (w *PhysicalWriter) setDirect(node *inode.Inode, ind units.Indirection, target *units.Block) error {
	updated := node.Clone()
	updated.SetDirectBlock(ind.DirectIndex, target)
	return w.inodes.Put(updated)
}

// persistAllocation clones node, applies setPointer (if non-nil) to record a
// newly allocated inode-level pointer, adds k*units.BlockSize to its size,
// and puts it. k must be > 0; callers skip the persist entirely when nothing
// new was allocated.
func (w *PhysicalWriter) persistAllocation(node *inode.Inode, k int, setPointer func(*inode.Inode)) error {
	updated := node.Clone()
	if setPointer != nil {
		setPointer(updated)
	}
	updated.Size += units.Byte(k) * units.BlockSize
	return w.inodes.Put(updated)
}

func (w *PhysicalWriter) setSingly(node *inode.Inode, ind units.Indirection, target *units.Block) error {
	if node.SinglyIndirectBlock == nil {
		singlyNum, err := w.allocate()
		if err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(singlyNum, ind.SinglyIndex, target); err != nil {
			return err
		}
		return w.persistAllocation(node, 1, func(n *inode.Inode) {
			n.SinglyIndirectBlock = &singlyNum
		})
	}

	// The singly indirect block already exists; only the leaf slot changes,
	// and the inode itself is untouched.
	return w.indirect.WriteIndirect(*node.SinglyIndirectBlock, ind.SinglyIndex, target)
}

func (w *PhysicalWriter) setDoubly(node *inode.Inode, ind units.Indirection, target *units.Block) error {
	if node.DoublyIndirectBlock == nil {
		doublyNum, err := w.allocate()
		if err != nil {
			return err
		}
		singlyNum, err := w.allocate()
		if err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(singlyNum, ind.SinglyIndex, target); err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(doublyNum, ind.DoublyIndex, &singlyNum); err != nil {
			return err
		}
		return w.persistAllocation(node, 2, func(n *inode.Inode) {
			n.DoublyIndirectBlock = &doublyNum
		})
	}

	doublyNum := *node.DoublyIndirectBlock
	singlyNum, err := w.indirect.ReadIndirect(doublyNum, ind.DoublyIndex)
	if err != nil {
		return err
	}
	if singlyNum == nil {
		newSingly, err := w.allocate()
		if err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(newSingly, ind.SinglyIndex, target); err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(doublyNum, ind.DoublyIndex, &newSingly); err != nil {
			return err
		}
		return w.persistAllocation(node, 1, nil)
	}

	// Both the doubly and singly indirect blocks already exist.
	return w.indirect.WriteIndirect(*singlyNum, ind.SinglyIndex, target)
}

func (w *PhysicalWriter) setTriply(node *inode.Inode, ind units.Indirection, target *units.Block) error {
	if node.TriplyIndirectBlock == nil {
		triplyNum, err := w.allocate()
		if err != nil {
			return err
		}
		doublyNum, err := w.allocate()
		if err != nil {
			return err
		}
		singlyNum, err := w.allocate()
		if err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(singlyNum, ind.SinglyIndex, target); err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(doublyNum, ind.DoublyIndex, &singlyNum); err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(triplyNum, ind.TriplyIndex, &doublyNum); err != nil {
			return err
		}
		return w.persistAllocation(node, 3, func(n *inode.Inode) {
			n.TriplyIndirectBlock = &triplyNum
		})
	}

	triplyNum := *node.TriplyIndirectBlock
	doublyNum, err := w.indirect.ReadIndirect(triplyNum, ind.TriplyIndex)
	if err != nil {
		return err
	}
	if doublyNum == nil {
		newDoubly, err := w.allocate()
		if err != nil {
			return err
		}
		newSingly, err := w.allocate()
		if err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(newSingly, ind.SinglyIndex, target); err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(newDoubly, ind.DoublyIndex, &newSingly); err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(triplyNum, ind.TriplyIndex, &newDoubly); err != nil {
			return err
		}
		return w.persistAllocation(node, 2, nil)
	}

	singlyNum, err := w.indirect.ReadIndirect(*doublyNum, ind.DoublyIndex)
	if err != nil {
		return err
	}
	if singlyNum == nil {
		newSingly, err := w.allocate()
		if err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(newSingly, ind.SinglyIndex, target); err != nil {
			return err
		}
		if err := w.indirect.WriteIndirect(*doublyNum, ind.DoublyIndex, &newSingly); err != nil {
			return err
		}
		return w.persistAllocation(node, 1, nil)
	}

	// Triply, doubly, and singly indirect blocks all already exist.
	return w.indirect.WriteIndirect(*singlyNum, ind.SinglyIndex, target)
}
