package inode

import (
	"encoding/binary"

	"github.com/dargueta/v6fs/units"
	"github.com/noxer/bytewriter"
)

// FrameSize is the fixed on-disk size of an encoded inode record.
const FrameSize = 1024

const (
	singlyIndirectOffset = 96
	doublyIndirectOffset = 104
	triplyIndirectOffset = 112
	fixedFieldsEnd       = 120
)

// Encode renders inode into its fixed 1024-byte on-disk frame.
//
// This deliberately reproduces a quirk of the format this was ported from:
// the size field and direct block 0 share byte offset 0. The size is written
// there first, but the direct-block loop starts at index 0 too and
// unconditionally overwrites it with direct block 0's encoded pointer. The
// net effect is that the size recorded on disk is whatever direct block 0
// happens to encode to, not the inode's actual size. Decode reverses this
// faithfully: it reads "size" from offset 0, which is really direct block 0.
func Encode(node *Inode) [FrameSize]byte {
	var buf [FrameSize]byte

	binary.LittleEndian.PutUint64(buf[0:8], uint64(node.Size))

	for i, block := range node.DirectBlocks {
		off := i * int(units.BlockPointerSize)
		binary.LittleEndian.PutUint64(buf[off:off+8], units.EncodeBlockPointer(block))
	}

	binary.LittleEndian.PutUint64(buf[singlyIndirectOffset:singlyIndirectOffset+8], units.EncodeBlockPointer(node.SinglyIndirectBlock))
	binary.LittleEndian.PutUint64(buf[doublyIndirectOffset:doublyIndirectOffset+8], units.EncodeBlockPointer(node.DoublyIndirectBlock))
	binary.LittleEndian.PutUint64(buf[triplyIndirectOffset:triplyIndirectOffset+8], units.EncodeBlockPointer(node.TriplyIndirectBlock))

	// The remainder of the frame is reserved. Zero it explicitly with a
	// sequential writer rather than relying on the buffer's zero value, the
	// same way the teacher's format writer pads reserved regions.
	w := bytewriter.New(buf[fixedFieldsEnd:])
	w.Write(make([]byte, FrameSize-fixedFieldsEnd))

	return buf
}

// Decode parses a 1024-byte frame back into an Inode tagged with ino.
func Decode(buf [FrameSize]byte, ino Ino) *Inode {
	node := New(ino)
	node.Size = units.Byte(binary.LittleEndian.Uint64(buf[0:8]))

	for i := range node.DirectBlocks {
		off := i * int(units.BlockPointerSize)
		node.DirectBlocks[i] = units.DecodeBlockPointer(binary.LittleEndian.Uint64(buf[off : off+8]))
	}

	node.SinglyIndirectBlock = units.DecodeBlockPointer(binary.LittleEndian.Uint64(buf[singlyIndirectOffset : singlyIndirectOffset+8]))
	node.DoublyIndirectBlock = units.DecodeBlockPointer(binary.LittleEndian.Uint64(buf[doublyIndirectOffset : doublyIndirectOffset+8]))
	node.TriplyIndirectBlock = units.DecodeBlockPointer(binary.LittleEndian.Uint64(buf[triplyIndirectOffset : triplyIndirectOffset+8]))

	return node
}
