package snapshot

import (
	"context"
	"errors"
	"time"

	"candleshop-backend/internal/domain"
	"candleshop-backend/pkg/logger"
)

const (
	cartKeySuffix     = "cart"
	wishlistKeySuffix = "wishlist"
)

func CartKey(sessionID string) string {
	return sessionID + ":" + cartKeySuffix
}

func WishlistKey(sessionID string) string {
	return sessionID + ":" + wishlistKeySuffix
}

// Bridge keeps session state in a SnapshotStorage on a best-effort basis.
// Loads never fail: an absent or unreadable snapshot yields the empty state.
// Saves never fail the caller: errors are logged and dropped, and the
// in-memory state stays authoritative.
type Bridge struct {
	storage domain.SnapshotStorage
	timeout time.Duration
}

func NewBridge(storage domain.SnapshotStorage, timeout time.Duration) *Bridge {
	return &Bridge{storage: storage, timeout: timeout}
}

func (b *Bridge) LoadCart(ctx context.Context, sessionID string) domain.CartState {
	data, ok := b.load(ctx, CartKey(sessionID))
	if !ok {
		return domain.EmptyCart()
	}
	state, err := DecodeCart(data)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("session_id", sessionID).Msg("Discarding unreadable cart snapshot")
		return domain.EmptyCart()
	}
	return state
}

func (b *Bridge) LoadWishlist(ctx context.Context, sessionID string) domain.WishlistState {
	data, ok := b.load(ctx, WishlistKey(sessionID))
	if !ok {
		return domain.EmptyWishlist()
	}
	state, err := DecodeWishlist(data)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("session_id", sessionID).Msg("Discarding unreadable wishlist snapshot")
		return domain.EmptyWishlist()
	}
	return state
}

// SaveCart reports whether the snapshot reached storage.
func (b *Bridge) SaveCart(ctx context.Context, sessionID string, state domain.CartState) bool {
	data, err := EncodeCart(state)
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Str("session_id", sessionID).Msg("Failed to encode cart snapshot")
		return false
	}
	return b.save(ctx, CartKey(sessionID), data)
}

// SaveWishlist reports whether the snapshot reached storage.
func (b *Bridge) SaveWishlist(ctx context.Context, sessionID string, state domain.WishlistState) bool {
	data, err := EncodeWishlist(state)
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Str("session_id", sessionID).Msg("Failed to encode wishlist snapshot")
		return false
	}
	return b.save(ctx, WishlistKey(sessionID), data)
}

// Forget drops both snapshots of a session.
func (b *Bridge) Forget(ctx context.Context, sessionID string) {
	for _, key := range []string{CartKey(sessionID), WishlistKey(sessionID)} {
		opCtx, cancel := b.opContext(ctx)
		err := b.storage.Delete(opCtx, key)
		cancel()
		if err != nil && !errors.Is(err, domain.ErrSnapshotNotFound) {
			logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("Failed to delete snapshot")
		}
	}
}

func (b *Bridge) load(ctx context.Context, key string) ([]byte, bool) {
	opCtx, cancel := b.opContext(ctx)
	defer cancel()

	start := time.Now()
	data, err := b.storage.Load(opCtx, key)
	logger.SnapshotOp(ctx, "load", key, time.Since(start), err)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("Snapshot load failed, starting empty")
		}
		return nil, false
	}
	return data, true
}

func (b *Bridge) save(ctx context.Context, key string, data []byte) bool {
	opCtx, cancel := b.opContext(ctx)
	defer cancel()

	start := time.Now()
	err := b.storage.Save(opCtx, key, data)
	logger.SnapshotOp(ctx, "save", key, time.Since(start), err)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Int("bytes", len(data)).Msg("Snapshot save failed, keeping in-memory state")
		return false
	}
	return true
}

// opContext bounds a storage call by the bridge timeout. Request
// cancellation does not propagate into storage calls.
func (b *Bridge) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	base := context.WithoutCancel(ctx)
	if b.timeout <= 0 {
		return context.WithCancel(base)
	}
	return context.WithTimeout(base, b.timeout)
}
