package core

import (
	"sync"

	"github.com/tidwall/btree"
)

// BTreeStore keeps every entry in a single B-Tree behind one RWMutex.
// It trades write parallelism for a compact memory layout on large keyspaces.
type BTreeStore struct {
	mu   sync.RWMutex
	tree btree.Map[string, string]
}

// NewBTreeStore creates an empty BTreeStore.
func NewBTreeStore() *BTreeStore {
	return &BTreeStore{}
}

// Set adds or replaces the value for key.
func (s *BTreeStore) Set(key, value string) {
	s.mu.Lock()
	s.tree.Set(key, value)
	s.mu.Unlock()

	logSet(key, value)
}

// Get retrieves the value for key.
func (s *BTreeStore) Get(key string) (string, bool) {
	s.mu.RLock()
	value, found := s.tree.Get(key)
	s.mu.RUnlock()

	logGet(key, found)
	return value, found
}

// Remove deletes key if present.
func (s *BTreeStore) Remove(key string) {
	s.mu.Lock()
	s.tree.Delete(key)
	s.mu.Unlock()

	logRemove(key)
}
