package inode_test

import (
	"testing"

	"github.com/dargueta/v6fs/inode"
	"github.com/dargueta/v6fs/units"
	"github.com/dargueta/v6fs/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutThenGet(t *testing.T) {
	s := inode.NewMemoryStore()
	node := inode.New(1)
	node.Size = units.Byte(128)

	require.NoError(t, s.Put(node))

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, units.Byte(128), got.Size)
}

func TestMemoryStore_GetMissingReturnsNilNoError(t *testing.T) {
	s := inode.NewMemoryStore()
	got, err := s.Get(99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVolumeStore_PutThenGet(t *testing.T) {
	v := volume.NewMemoryVolume(units.Byte(4 * inode.FrameSize))
	s := inode.NewVolumeStore(v)

	node := inode.New(2)
	node.DirectBlocks[1] = blockPtr(55)
	require.NoError(t, s.Put(node))

	got, err := s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, units.Block(55), *got.DirectBlocks[1])
}
