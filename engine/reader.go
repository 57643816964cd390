// Package engine implements the physical block resolution and byte-granular
// I/O layered on top of inode, indirect, and bitmap: PhysicalReader and
// PhysicalWriter translate (inode, logical block) pairs to physical block
// numbers, and DataManager turns that into ordinary byte-range read/write.
package engine

import (
	"github.com/dargueta/v6fs/fserrors"
	"github.com/dargueta/v6fs/indirect"
	"github.com/dargueta/v6fs/inode"
	"github.com/dargueta/v6fs/units"
)

// PhysicalReader resolves the physical block backing a (inode, logical
// block) pair without allocating anything. A hole anywhere on the path —
// the inode's own pointer, or any indirect block along the way — resolves
// to a nil physical block, not an error.
type PhysicalReader struct {
	indirect indirect.Map
	inodes   inode.Store
}

// NewPhysicalReader creates a PhysicalReader over ind and inodes.
func NewPhysicalReader(ind indirect.Map, inodes inode.Store) *PhysicalReader {
	return &PhysicalReader{indirect: ind, inodes: inodes}
}

// Resolve returns the physical block backing logical block l of ino, or nil
// if that logical block is a hole.
func (r *PhysicalReader) Resolve(ino inode.Ino, l units.Block) (*units.Block, error) {
	node, err := r.inodes.Get(ino)
	if err != nil {
		return nil, err
	}

	ind := units.Classify(l)

	switch ind.Kind {
	case units.Direct:
		return node.DirectBlocks[ind.DirectIndex], nil
	case units.Singly:
		return r.step(node.SinglyIndirectBlock, ind.SinglyIndex)
	case units.Doubly:
		singly, err := r.step(node.DoublyIndirectBlock, ind.DoublyIndex)
		if err != nil || singly == nil {
			return nil, err
		}
		return r.step(singly, ind.SinglyIndex)
	case units.Triply:
		doubly, err := r.step(node.TriplyIndirectBlock, ind.TriplyIndex)
		if err != nil || doubly == nil {
			return nil, err
		}
		singly, err := r.step(doubly, ind.DoublyIndex)
		if err != nil || singly == nil {
			return nil, err
		}
		return r.step(singly, ind.SinglyIndex)
	default:
		return nil, fserrors.Annotate(fserrors.ErrOutOfRange, "logical block %d is out of range", l)
	}
}

// step reads slot of the indirect block parent points to. It returns nil
// without touching the indirect map if parent itself is nil, since a hole
// higher in the tree means every block beneath it is also a hole.
func (r *PhysicalReader) step(parent *units.Block, slot int) (*units.Block, error) {
	if parent == nil {
		return nil, nil
	}
	return r.indirect.ReadIndirect(*parent, slot)
}
