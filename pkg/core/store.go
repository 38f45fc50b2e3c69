// Package core provides the in-memory key-value store behind kektorkv.
//
// A Store is created once at process start and shared by every request
// handler. Implementations carry their own synchronization: callers never
// lock around Set, Get or Remove, and each key's operations behave as if
// executed in a single total order. Nothing is ordered across keys.
package core

import (
	"errors"
	"fmt"
	"log/slog"
)

// Backend names accepted by NewStore.
const (
	BackendSharded = "sharded"
	BackendBTree   = "btree"
)

// DefaultShards is the shard count used by the sharded backend when none is configured.
const DefaultShards = 256

var (
	// ErrUnknownBackend is returned by NewStore for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown store backend")
	// ErrInvalidShardCount is returned when the shard count is not a positive power of two.
	ErrInvalidShardCount = errors.New("shard count must be a positive power of two")
)

// Store is a concurrency-safe mapping from string keys to string values.
type Store interface {
	// Set inserts or replaces the value for key.
	Set(key, value string)
	// Get returns the current value for key and whether it exists.
	Get(key string) (string, bool)
	// Remove deletes key. Removing a missing key is a no-op.
	Remove(key string)
}

// NewStore builds the Store implementation named by backend.
// shards is only used by the sharded backend; zero means DefaultShards.
func NewStore(backend string, shards int) (Store, error) {
	switch backend {
	case "", BackendSharded:
		if shards == 0 {
			shards = DefaultShards
		}
		s, err := NewShardedStore(shards)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendBTree:
		return NewBTreeStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func logSet(key, value string) {
	slog.Debug("Value set", "key", key, "value", value)
}

func logGet(key string, found bool) {
	if found {
		slog.Debug("Value retrieved", "key", key)
		return
	}
	slog.Debug("No value found", "key", key)
}

func logRemove(key string) {
	slog.Debug("Value removed", "key", key)
}
