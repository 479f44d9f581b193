package usecase

import (
	"context"
	"sync"
	"time"

	"candleshop-backend/internal/domain"
	"candleshop-backend/pkg/cache"
	"candleshop-backend/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// SnapshotBridge persists session state on a best-effort basis.
type SnapshotBridge interface {
	LoadCart(ctx context.Context, sessionID string) domain.CartState
	LoadWishlist(ctx context.Context, sessionID string) domain.WishlistState
	SaveCart(ctx context.Context, sessionID string, state domain.CartState) bool
	SaveWishlist(ctx context.Context, sessionID string, state domain.WishlistState) bool
	Forget(ctx context.Context, sessionID string)
}

// SessionStore owns the cart and wishlist of one session. Dispatch methods
// are the only way to change either; each runs to completion, snapshot
// write included, before the next one for the same session starts.
type SessionStore struct {
	id       string
	bridge   SnapshotBridge
	mu       sync.Mutex
	cart     domain.CartState
	wishlist domain.WishlistState
}

func newSessionStore(ctx context.Context, id string, bridge SnapshotBridge) *SessionStore {
	return &SessionStore{
		id:       id,
		bridge:   bridge,
		cart:     bridge.LoadCart(ctx, id),
		wishlist: bridge.LoadWishlist(ctx, id),
	}
}

// Cart returns a copy of the current cart.
func (s *SessionStore) Cart() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Wishlist returns a copy of the current wishlist.
func (s *SessionStore) Wishlist() domain.WishlistState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Clone()
}

func (s *SessionStore) DispatchCart(ctx context.Context, action domain.CartAction) domain.CartState {
	next, _ := s.UpdateCart(ctx, func(domain.CartState) (domain.CartAction, error) {
		return action, nil
	})
	return next
}

// UpdateCart runs decide against the current cart while holding the session
// lock and dispatches the action it returns. A decide error aborts without
// any transition.
func (s *SessionStore) UpdateCart(ctx context.Context, decide func(current domain.CartState) (domain.CartAction, error)) (domain.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, err := decide(s.cart.Clone())
	if err != nil {
		return s.cart.Clone(), err
	}

	s.cart = domain.ReduceCart(s.cart, action)
	if !s.bridge.SaveCart(ctx, s.id, s.cart) {
		logger.WithContext(ctx).Debug().Str("action", action.Kind().String()).Msg("Cart kept in memory only")
	}
	return s.cart.Clone(), nil
}

// DispatchWishlist applies action and reports whether the wishlist changed.
// Unchanged wishlists are not written back.
func (s *SessionStore) DispatchWishlist(ctx context.Context, action domain.WishlistAction) (domain.WishlistState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := domain.ReduceWishlist(s.wishlist, action)
	if changed {
		s.wishlist = next
		if !s.bridge.SaveWishlist(ctx, s.id, s.wishlist) {
			logger.WithContext(ctx).Debug().Str("action", action.Kind().String()).Msg("Wishlist kept in memory only")
		}
	}
	return s.wishlist.Clone(), changed
}

// SessionUsecase keeps the live session stores. A store idle for longer than
// the TTL is dropped and rebuilt from its snapshots on the next request.
type SessionUsecase struct {
	bridge   SnapshotBridge
	sessions cache.CacheService[*SessionStore]
	ttl      time.Duration
	loads    singleflight.Group
}

func NewSessionUsecase(bridge SnapshotBridge, sessions cache.CacheService[*SessionStore], ttl time.Duration) *SessionUsecase {
	return &SessionUsecase{
		bridge:   bridge,
		sessions: sessions,
		ttl:      ttl,
	}
}

// Open returns the store for sessionID, loading it from storage when it is
// not live. Every call re-arms the idle TTL. Concurrent opens of the same
// cold session share one load; other sessions never wait on it.
func (u *SessionUsecase) Open(ctx context.Context, sessionID string) *SessionStore {
	if store, ok := u.sessions.Get(sessionID); ok {
		u.sessions.Touch(sessionID, u.ttl)
		return store
	}

	v, _, _ := u.loads.Do(sessionID, func() (interface{}, error) {
		if store, ok := u.sessions.Get(sessionID); ok {
			return store, nil
		}
		store := newSessionStore(ctx, sessionID, u.bridge)
		u.sessions.Set(sessionID, store, u.ttl)
		logger.WithContext(ctx).Debug().
			Int("cart_lines", len(store.cart.Items)).
			Int("wishlist_items", store.wishlist.Len()).
			Msg("Session opened")
		return store, nil
	})
	return v.(*SessionStore)
}

// End drops a session from memory and deletes its snapshots.
func (u *SessionUsecase) End(ctx context.Context, sessionID string) {
	u.sessions.Delete(sessionID)
	u.bridge.Forget(ctx, sessionID)
}

// ActiveSessions reports how many stores are held in memory.
func (u *SessionUsecase) ActiveSessions() int {
	return u.sessions.Count()
}
