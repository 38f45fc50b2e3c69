package core

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// shard is one independently locked slice of the keyspace.
type shard struct {
	mu   sync.RWMutex
	data map[string]string
}

// ShardedStore splits the keyspace across a fixed number of shards, each
// guarded by its own sync.RWMutex. A key always hashes to the same shard,
// so per-key ordering reduces to the ordering of that shard's lock.
type ShardedStore struct {
	shards []*shard
	mask   uint64
}

// NewShardedStore creates an empty store with n shards. n must be a power of two.
func NewShardedStore(n int) (*ShardedStore, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShardCount, n)
	}

	s := &ShardedStore{
		shards: make([]*shard, n),
		mask:   uint64(n - 1),
	}
	for i := range s.shards {
		s.shards[i] = &shard{data: make(map[string]string)}
	}
	return s, nil
}

func (s *ShardedStore) shardFor(key string) *shard {
	return s.shards[xxhash.Sum64String(key)&s.mask]
}

// Set adds or replaces the value for key.
func (s *ShardedStore) Set(key, value string) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	sh.data[key] = value
	sh.mu.Unlock()

	logSet(key, value)
}

// Get retrieves the value for key.
// Concurrent readers of the same shard do not block each other.
func (s *ShardedStore) Get(key string) (string, bool) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	value, found := sh.data[key]
	sh.mu.RUnlock()

	logGet(key, found)
	return value, found
}

// Remove deletes key if present.
func (s *ShardedStore) Remove(key string) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	delete(sh.data, key)
	sh.mu.Unlock()

	logRemove(key)
}
