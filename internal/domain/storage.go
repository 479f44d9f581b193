package domain

import "context"

// SnapshotStorage is the key/value store behind the persistence bridge.
// Load returns ErrSnapshotNotFound when nothing was stored under key.
type SnapshotStorage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
