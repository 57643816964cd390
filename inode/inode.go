// Package inode implements the fixed-size on-disk inode record: its Go
// struct, its 1024-byte encoding, and the Store abstraction (plain,
// volume-backed, and write-back-cached) used to persist it.
package inode

import "github.com/dargueta/v6fs/units"

// Ino is the integer identifier of an inode.
type Ino uint64

// Inode is the in-memory, per-file metadata record: an immutable Ino plus the
// mutable size and block-pointer fields. Inodes are created with every
// pointer slot nil and Size 0.
type Inode struct {
	Ino                 Ino
	Size                units.Byte
	DirectBlocks        [units.DirectBlockCount]*units.Block
	SinglyIndirectBlock *units.Block
	DoublyIndirectBlock *units.Block
	TriplyIndirectBlock *units.Block
}

// New creates an empty inode: size 0, every pointer slot nil.
func New(ino Ino) *Inode {
	return &Inode{Ino: ino}
}

// Clone returns a deep copy. Because Block pointers are never mutated
// in-place (a slot is always replaced, not written through), copying the
// array of pointers is sufficient to make mutations to the clone invisible
// to the original and vice versa.
func (inode *Inode) Clone() *Inode {
	clone := *inode
	return &clone
}

// SetDirectBlock overwrites direct slot i with block, which may be nil.
func (inode *Inode) SetDirectBlock(i int, block *units.Block) {
	inode.DirectBlocks[i] = block
}
