package inode_test

import (
	"testing"

	"github.com/dargueta/v6fs/inode"
	"github.com/dargueta/v6fs/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockPtr(v units.Block) *units.Block { return &v }

func TestEncodeDecode_RoundTripsPointers(t *testing.T) {
	node := inode.New(3)
	node.Size = units.Byte(4096)
	node.DirectBlocks[0] = blockPtr(10)
	node.DirectBlocks[1] = blockPtr(11)
	node.SinglyIndirectBlock = blockPtr(500)
	node.DoublyIndirectBlock = blockPtr(501)
	node.TriplyIndirectBlock = blockPtr(502)

	frame := inode.Encode(node)
	require.Len(t, frame, inode.FrameSize)

	decoded := inode.Decode(frame, node.Ino)
	assert.Equal(t, node.DirectBlocks, decoded.DirectBlocks)
	assert.Equal(t, *node.SinglyIndirectBlock, *decoded.SinglyIndirectBlock)
	assert.Equal(t, *node.DoublyIndirectBlock, *decoded.DoublyIndirectBlock)
	assert.Equal(t, *node.TriplyIndirectBlock, *decoded.TriplyIndirectBlock)
}

// TestEncodeDecode_SizeOverlapQuirk pins down the offset-0 overlap: size and
// direct block 0 share a slot, and the direct-block write always wins, so the
// size that comes back out of Decode is whatever direct block 0 encodes to,
// not the size that was set.
func TestEncodeDecode_SizeOverlapQuirk(t *testing.T) {
	node := inode.New(1)
	node.Size = units.Byte(999999)
	node.DirectBlocks[0] = blockPtr(42)

	frame := inode.Encode(node)
	decoded := inode.Decode(frame, node.Ino)

	assert.Equal(t, units.Byte(units.EncodeBlockPointer(blockPtr(42))), decoded.Size)
	assert.NotEqual(t, units.Byte(999999), decoded.Size)
}

func TestEncodeDecode_NilPointersRoundTripAsNil(t *testing.T) {
	node := inode.New(7)
	frame := inode.Encode(node)
	decoded := inode.Decode(frame, node.Ino)

	for _, b := range decoded.DirectBlocks {
		assert.Nil(t, b)
	}
	assert.Nil(t, decoded.SinglyIndirectBlock)
	assert.Nil(t, decoded.DoublyIndirectBlock)
	assert.Nil(t, decoded.TriplyIndirectBlock)
}
