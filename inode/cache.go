package inode

import (
	"github.com/dargueta/v6fs/fserrors"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachingStore wraps a backing Store with an LRU write-back cache, the same
// shape as dargueta-disko's block cache but keyed by inode number instead of
// block number: Put only touches the cache, and a dirty entry is written
// through to the backend when the LRU evicts it to make room for a new inode
// or when Flush is called. Reusing a cached ino (whether via Put or Get) just refreshes its
// recency; it never triggers a write-through on its own.
type CachingStore struct {
	backend Store
	cache   *lru.Cache[Ino, *Inode]
	dirty   map[Ino]bool
	evictErr error
}

// NewCachingStore creates a CachingStore of the given capacity (must be >0)
// over backend.
func NewCachingStore(backend Store, capacity int) (*CachingStore, error) {
	if capacity <= 0 {
		return nil, fserrors.Annotate(fserrors.ErrInvalidArgument, "cache capacity must be positive, got %d", capacity)
	}

	s := &CachingStore{backend: backend, dirty: make(map[Ino]bool)}

	onEvict := func(ino Ino, node *Inode) {
		if !s.dirty[ino] {
			return
		}
		delete(s.dirty, ino)
		if err := s.backend.Put(node); err != nil {
			s.evictErr = err
		}
	}

	cache, err := lru.NewWithEvict[Ino, *Inode](capacity, onEvict)
	if err != nil {
		return nil, err
	}
	s.cache = cache
	return s, nil
}

// Put stages node in the cache as dirty. It is written through to the
// backend when a later insertion evicts it or when Flush is called.
func (s *CachingStore) Put(node *Inode) error {
	s.dirty[node.Ino] = true
	s.cache.Add(node.Ino, node.Clone())
	return s.takeEvictErr()
}

// Get returns the cached inode if present, otherwise loads it from the
// backend and caches a clean copy. Caching it may evict another entry; if
// that entry is dirty it is written through to the backend, and a failure of
// that write is returned from Get.
func (s *CachingStore) Get(ino Ino) (*Inode, error) {
	if node, ok := s.cache.Get(ino); ok {
		return node.Clone(), nil
	}

	node, err := s.backend.Get(ino)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}

	s.cache.Add(ino, node.Clone())
	if err := s.takeEvictErr(); err != nil {
		return nil, err
	}
	return node, nil
}

// Flush writes every dirty cached inode through to the backend.
func (s *CachingStore) Flush() error {
	for ino := range s.dirty {
		node, ok := s.cache.Get(ino)
		if !ok {
			continue
		}
		if err := s.backend.Put(node); err != nil {
			return err
		}
		delete(s.dirty, ino)
	}
	return nil
}

func (s *CachingStore) takeEvictErr() error {
	err := s.evictErr
	s.evictErr = nil
	return err
}
