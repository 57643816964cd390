package volume_test

import (
	"testing"

	"github.com/dargueta/v6fs/fserrors"
	"github.com/dargueta/v6fs/units"
	"github.com/dargueta/v6fs/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryVolume_WriteThenRead(t *testing.T) {
	v := volume.NewMemoryVolume(1024)

	err := v.WriteAt(100, []byte("hello"))
	require.NoError(t, err)

	buf := make([]byte, 5)
	err = v.ReadAt(100, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
}

func TestMemoryVolume_ShortTransferAtEOF(t *testing.T) {
	v := volume.NewMemoryVolume(10)

	buf := make([]byte, 5)
	err := v.ReadAt(8, buf)
	assert.ErrorIs(t, err, fserrors.ErrUnexpectedEOF)

	err = v.WriteAt(8, buf)
	assert.ErrorIs(t, err, fserrors.ErrUnexpectedEOF)
}

func TestOffsetVolume_TranslatesOffset(t *testing.T) {
	backend := volume.NewMemoryVolume(2048)
	off := volume.NewOffsetVolume(backend, units.Byte(1024))

	err := off.WriteAt(0, []byte("data-region"))
	require.NoError(t, err)

	buf := make([]byte, len("data-region"))
	err = backend.ReadAt(1024, buf)
	require.NoError(t, err)
	assert.Equal(t, "data-region", string(buf))
}
