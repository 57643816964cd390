package volume

import (
	"io"

	"github.com/dargueta/v6fs/fserrors"
	"github.com/dargueta/v6fs/units"
	"github.com/xaionaro-go/bytesextra"
)

// MemoryVolume is a fixed-size, slice-backed Volume, used in tests and by
// callers that want an entirely in-memory file system image.
type MemoryVolume struct {
	data   []byte
	stream io.ReadWriteSeeker
}

// NewMemoryVolume allocates a zeroed volume of the given size, in bytes.
func NewMemoryVolume(size units.Byte) *MemoryVolume {
	data := make([]byte, size)
	return &MemoryVolume{
		data:   data,
		stream: bytesextra.NewReadWriteSeeker(data),
	}
}

// NewMemoryVolumeFromSlice wraps an existing byte slice as a Volume. The
// slice is used directly, not copied.
func NewMemoryVolumeFromSlice(data []byte) *MemoryVolume {
	return &MemoryVolume{
		data:   data,
		stream: bytesextra.NewReadWriteSeeker(data),
	}
}

// Bytes returns the volume's entire backing slice.
func (v *MemoryVolume) Bytes() []byte {
	return v.data
}

func (v *MemoryVolume) ReadAt(offset units.Byte, buf []byte) error {
	if err := v.checkBounds(offset, len(buf)); err != nil {
		return err
	}
	if _, err := v.stream.Seek(int64(offset), io.SeekStart); err != nil {
		return err
	}
	_, err := io.ReadFull(v.stream, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fserrors.ErrUnexpectedEOF
	}
	return err
}

func (v *MemoryVolume) WriteAt(offset units.Byte, buf []byte) error {
	if err := v.checkBounds(offset, len(buf)); err != nil {
		return err
	}
	if _, err := v.stream.Seek(int64(offset), io.SeekStart); err != nil {
		return err
	}
	_, err := v.stream.Write(buf)
	return err
}

func (v *MemoryVolume) checkBounds(offset units.Byte, length int) error {
	if length == 0 {
		return nil
	}
	if uint64(offset)+uint64(length) > uint64(len(v.data)) {
		return fserrors.ErrUnexpectedEOF
	}
	return nil
}
