package usecase

import (
	"context"
	"fmt"

	"candleshop-backend/config"
	"candleshop-backend/internal/domain"
	"candleshop-backend/pkg/logger"
)

// CartUsecase applies storefront policy (catalog lookup, stock, quantity
// limits) before handing an action to the session store.
type CartUsecase struct {
	sessions *SessionUsecase
	catalog  domain.CatalogRepository
	cfg      *config.Config
}

func NewCartUsecase(sessions *SessionUsecase, catalog domain.CatalogRepository, cfg *config.Config) *CartUsecase {
	return &CartUsecase{
		sessions: sessions,
		catalog:  catalog,
		cfg:      cfg,
	}
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) domain.CartState {
	return u.sessions.Open(ctx, sessionID).Cart()
}

func (u *CartUsecase) AddToCart(ctx context.Context, sessionID, productID string) (domain.CartState, error) {
	product, err := u.catalog.GetProductByID(ctx, productID)
	if err != nil {
		return domain.CartState{}, err
	}

	store := u.sessions.Open(ctx, sessionID)
	return store.UpdateCart(ctx, func(current domain.CartState) (domain.CartAction, error) {
		if !current.CanAdd(*product, u.cfg.EnforceStock) {
			logger.WithContext(ctx).Info().
				Str("product_id", product.ID).
				Int("stock", product.Stock).
				Int("in_cart", current.Quantity(product.ID)).
				Msg("Add to cart refused")
			return nil, fmt.Errorf("%w: %s", domain.ErrOutOfStock, product.ID)
		}
		if current.Quantity(product.ID)+1 > u.cfg.MaxCartQuantity {
			return nil, fmt.Errorf("%w: max %d", domain.ErrQuantityLimit, u.cfg.MaxCartQuantity)
		}
		return domain.AddCartItem{Product: *product}, nil
	})
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line; an absent line is left alone.
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (domain.CartState, error) {
	if quantity > u.cfg.MaxCartQuantity {
		return domain.CartState{}, fmt.Errorf("%w: max %d", domain.ErrQuantityLimit, u.cfg.MaxCartQuantity)
	}

	var product *domain.Product
	if quantity > 0 && u.cfg.EnforceStock {
		p, err := u.catalog.GetProductByID(ctx, productID)
		if err != nil {
			return domain.CartState{}, err
		}
		product = p
	}

	store := u.sessions.Open(ctx, sessionID)
	return store.UpdateCart(ctx, func(current domain.CartState) (domain.CartAction, error) {
		if product != nil && quantity > current.Quantity(productID) && quantity > product.Stock {
			return nil, fmt.Errorf("%w: only %d of %s left", domain.ErrOutOfStock, product.Stock, productID)
		}
		return domain.UpdateCartQuantity{ProductID: productID, Quantity: quantity}, nil
	})
}

func (u *CartUsecase) RemoveFromCart(ctx context.Context, sessionID, productID string) domain.CartState {
	return u.sessions.Open(ctx, sessionID).DispatchCart(ctx, domain.RemoveCartItem{ProductID: productID})
}

func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) domain.CartState {
	return u.sessions.Open(ctx, sessionID).DispatchCart(ctx, domain.ClearCart{})
}
