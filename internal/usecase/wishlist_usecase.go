package usecase

import (
	"context"

	"candleshop-backend/internal/domain"
)

type WishlistUsecase struct {
	sessions *SessionUsecase
	catalog  domain.CatalogRepository
}

func NewWishlistUsecase(sessions *SessionUsecase, catalog domain.CatalogRepository) *WishlistUsecase {
	return &WishlistUsecase{
		sessions: sessions,
		catalog:  catalog,
	}
}

func (u *WishlistUsecase) GetWishlist(ctx context.Context, sessionID string) domain.WishlistState {
	return u.sessions.Open(ctx, sessionID).Wishlist()
}

// AddToWishlist reports added=false when the product was already present.
func (u *WishlistUsecase) AddToWishlist(ctx context.Context, sessionID, productID string) (domain.WishlistState, bool, error) {
	product, err := u.catalog.GetProductByID(ctx, productID)
	if err != nil {
		return domain.WishlistState{}, false, err
	}
	state, added := u.sessions.Open(ctx, sessionID).DispatchWishlist(ctx, domain.AddWishlistItem{Product: *product})
	return state, added, nil
}

// RemoveFromWishlist reports removed=false when the product was not present.
func (u *WishlistUsecase) RemoveFromWishlist(ctx context.Context, sessionID, productID string) (domain.WishlistState, bool) {
	return u.sessions.Open(ctx, sessionID).DispatchWishlist(ctx, domain.RemoveWishlistItem{ProductID: productID})
}

func (u *WishlistUsecase) ClearWishlist(ctx context.Context, sessionID string) domain.WishlistState {
	state, _ := u.sessions.Open(ctx, sessionID).DispatchWishlist(ctx, domain.ClearWishlist{})
	return state
}

func (u *WishlistUsecase) IsInWishlist(ctx context.Context, sessionID, productID string) bool {
	return u.sessions.Open(ctx, sessionID).Wishlist().Contains(productID)
}
