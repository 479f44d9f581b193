// Package storage holds the SnapshotStorage backends a session snapshot can
// be written to.
package storage

import (
	"context"
	"fmt"
	"sync"

	"candleshop-backend/internal/domain"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStorage keeps snapshots in process memory with an optional cap on
// the total number of stored bytes. It does not survive a restart.
type MemoryStorage struct {
	mu         sync.Mutex
	store      *gocache.Cache
	quotaBytes int64
	usedBytes  int64
}

// NewMemoryStorage creates a memory store. quotaBytes <= 0 disables the quota.
func NewMemoryStorage(quotaBytes int64) *MemoryStorage {
	return &MemoryStorage{
		store:      gocache.New(gocache.NoExpiration, 0),
		quotaBytes: quotaBytes,
	}
}

func (s *MemoryStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := s.store.Get(key)
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	data := v.([]byte)
	return append([]byte(nil), data...), nil
}

func (s *MemoryStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var previous int64
	if v, ok := s.store.Get(key); ok {
		previous = int64(len(v.([]byte)))
	}
	next := s.usedBytes - previous + int64(len(data))
	if s.quotaBytes > 0 && next > s.quotaBytes {
		return fmt.Errorf("%w: %d of %d bytes in use", domain.ErrQuotaExceeded, s.usedBytes, s.quotaBytes)
	}

	s.store.Set(key, append([]byte(nil), data...), gocache.NoExpiration)
	s.usedBytes = next
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.store.Get(key); ok {
		s.usedBytes -= int64(len(v.([]byte)))
		s.store.Delete(key)
	}
	return nil
}
