// Package v6fs implements a Unix-style inode/indirect-block storage core: a
// fixed-size volume is carved into an inode region and a data-block region,
// files are addressed by inode number and byte offset, and block allocation
// uses a first-fit bitmap shared by direct, indirect, and leaf blocks alike.
//
// This is the single entry point a higher layer (a POSIX directory/name
// layer, a FUSE driver, ...) would sit on top of; none of that is built
// here.
package v6fs

import (
	"github.com/hashicorp/go-multierror"

	"github.com/dargueta/v6fs/bitmap"
	"github.com/dargueta/v6fs/engine"
	"github.com/dargueta/v6fs/fserrors"
	"github.com/dargueta/v6fs/indirect"
	"github.com/dargueta/v6fs/inode"
	"github.com/dargueta/v6fs/units"
	"github.com/dargueta/v6fs/volume"
)

// Config controls the geometry of a FileSystem carved out of a single
// volume: how many inode slots and how many blocks it has room for, and how
// many inodes the write-back cache in front of the inode store keeps hot.
type Config struct {
	InodeCount    uint
	BlockCount    uint
	CacheCapacity int
}

// FileSystem is a complete storage core over one backing volume.
type FileSystem struct {
	inodeBitmap *bitmap.Bitmap
	inodes      inode.Store
	indirectMap indirect.Map
	data        *engine.DataManager
}

// New carves backend into an inode region followed by a data-block region
// per cfg, and wires up the bitmap allocator, indirect-block backend, inode
// store, and physical I/O engine over them.
func New(backend volume.Volume, cfg Config) *FileSystem {
	inodeRegionSize := units.Byte(cfg.InodeCount) * units.Byte(inode.FrameSize)
	inodeRegion := volume.NewOffsetVolume(backend, 0)
	dataRegion := volume.NewOffsetVolume(backend, inodeRegionSize)

	blockBitmap := bitmap.New(uint64(cfg.BlockCount))
	indirectMap := indirect.NewVolumeMap(dataRegion, cfg.BlockCount)

	var store inode.Store = inode.NewVolumeStore(inodeRegion)
	if cfg.CacheCapacity > 0 {
		cached, err := inode.NewCachingStore(store, cfg.CacheCapacity)
		if err == nil {
			store = cached
		}
	}

	reader := engine.NewPhysicalReader(indirectMap, store)
	writer := engine.NewPhysicalWriter(blockBitmap, indirectMap, store)
	data := engine.NewDataManager(reader, writer, dataRegion, store)

	return &FileSystem{
		inodeBitmap: bitmap.New(uint64(cfg.InodeCount)),
		inodes:      store,
		indirectMap: indirectMap,
		data:        data,
	}
}

// CreateInode allocates a fresh, empty inode and returns its number.
func (fs *FileSystem) CreateInode() (inode.Ino, error) {
	slot, ok := fs.inodeBitmap.Allocate()
	if !ok {
		return 0, fserrors.Annotate(fserrors.ErrOutOfBlocks, "no free inode slots")
	}

	ino := inode.Ino(slot)
	if err := fs.inodes.Put(inode.New(ino)); err != nil {
		return 0, err
	}
	return ino, nil
}

// ReadAt fills buf with ino's contents starting at offset.
func (fs *FileSystem) ReadAt(ino inode.Ino, offset units.Byte, buf []byte) error {
	return fs.data.ReadAt(ino, offset, buf)
}

// WriteAt writes buf to ino's contents starting at offset, growing the
// inode's recorded size as needed.
func (fs *FileSystem) WriteAt(ino inode.Ino, offset units.Byte, buf []byte) error {
	return fs.data.WriteAt(ino, offset, buf)
}

// syncer is implemented by any backing component that buffers writes and
// needs an explicit flush.
type syncer interface {
	Sync() error
}

type flusher interface {
	Flush() error
}

// Sync flushes every write-back cache this FileSystem is holding onto — the
// indirect-block cache and, if the inode store is a CachingStore, its
// pending writes too — aggregating whatever fails rather than stopping at
// the first error.
func (fs *FileSystem) Sync() error {
	var result *multierror.Error

	if s, ok := fs.indirectMap.(syncer); ok {
		if err := s.Sync(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if f, ok := fs.inodes.(flusher); ok {
		if err := f.Flush(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}
