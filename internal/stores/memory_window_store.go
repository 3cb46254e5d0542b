package stores

import (
	"context"
	"sync"

	"dynamic-routing/internal/models"
	"dynamic-routing/internal/shared/partitions"
)

const defaultMemoryShards = 64

type memoryEntry struct {
	version uint64
	window  *models.Window
}

type memoryShard struct {
	mu      sync.RWMutex
	windows map[string]memoryEntry
}

// memoryWindowStore keeps windows in process memory. Keys are spread over shards by
// fnv hash, each shard guarded by its own RWMutex, so unrelated labels rarely contend.
// Windows are copied on the way in and out; callers never share a slice with the store.
type memoryWindowStore struct {
	shards []*memoryShard
}

// NewMemoryWindowStore returns an in-process WindowStore with the given shard count
// (defaults to 64 when shards < 1).
func NewMemoryWindowStore(shards int) WindowStore {
	if shards < 1 {
		shards = defaultMemoryShards
	}
	s := &memoryWindowStore{shards: make([]*memoryShard, shards)}
	for i := range s.shards {
		s.shards[i] = &memoryShard{windows: make(map[string]memoryEntry)}
	}
	return s
}

func (s *memoryWindowStore) shard(key string) *memoryShard {
	return s.shards[partitions.Index(key, len(s.shards))]
}

func (s *memoryWindowStore) Get(ctx context.Context, key models.WindowKey) (*models.VersionedWindow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := key.String()
	shard := s.shard(k)

	shard.mu.RLock()
	entry, ok := shard.windows[k]
	shard.mu.RUnlock()

	if !ok {
		return models.NewEmptyVersionedWindow(), nil
	}
	// entry.window is never mutated after it is stored, so copying outside the lock is safe
	return &models.VersionedWindow{Version: entry.version, Window: entry.window.Clone()}, nil
}

func (s *memoryWindowStore) Put(ctx context.Context, key models.WindowKey, expectedVersion uint64, window *models.Window) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k := key.String()
	stored := window.Clone()
	shard := s.shard(k)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if shard.windows[k].version != expectedVersion {
		return ErrVersionConflict
	}
	shard.windows[k] = memoryEntry{version: expectedVersion + 1, window: stored}
	return nil
}
