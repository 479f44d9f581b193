// Package snapshot serializes cart and wishlist state and bridges it to a
// SnapshotStorage backend.
package snapshot

import (
	"fmt"

	"candleshop-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// FormatVersion is written into every snapshot; anything else is rejected on decode.
const FormatVersion = 1

type cartSnapshot struct {
	Version int                `json:"version"`
	Items   []cartLineSnapshot `json:"items"`
	Total   decimal.Decimal    `json:"total"`
}

type cartLineSnapshot struct {
	ProductID string         `json:"productId"`
	Quantity  int            `json:"quantity"`
	Product   domain.Product `json:"product"`
}

type wishlistSnapshot struct {
	Version    int                       `json:"version"`
	ProductIDs []string                  `json:"productIds"`
	Products   map[string]domain.Product `json:"products"`
}

func EncodeCart(state domain.CartState) ([]byte, error) {
	snap := cartSnapshot{
		Version: FormatVersion,
		Items:   make([]cartLineSnapshot, 0, len(state.Items)),
		Total:   state.Total,
	}
	for _, item := range state.Items {
		snap.Items = append(snap.Items, cartLineSnapshot{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			Product:   item.Product,
		})
	}
	return json.Marshal(snap)
}

// DecodeCart rebuilds a cart from its snapshot. The stored total is ignored
// and recomputed from the lines.
func DecodeCart(data []byte) (domain.CartState, error) {
	var snap cartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.CartState{}, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	if snap.Version != FormatVersion {
		return domain.CartState{}, fmt.Errorf("%w: unsupported version %d", domain.ErrInvalidSnapshot, snap.Version)
	}

	items := make([]domain.CartItem, 0, len(snap.Items))
	seen := make(map[string]bool, len(snap.Items))
	for _, line := range snap.Items {
		switch {
		case line.ProductID == "" || line.ProductID != line.Product.ID:
			return domain.CartState{}, fmt.Errorf("%w: line id %q does not match product %q", domain.ErrInvalidSnapshot, line.ProductID, line.Product.ID)
		case line.Quantity < 1:
			return domain.CartState{}, fmt.Errorf("%w: line %s has quantity %d", domain.ErrInvalidSnapshot, line.ProductID, line.Quantity)
		case seen[line.ProductID]:
			return domain.CartState{}, fmt.Errorf("%w: duplicate line %s", domain.ErrInvalidSnapshot, line.ProductID)
		case line.Product.Price.IsNegative():
			return domain.CartState{}, fmt.Errorf("%w: line %s has a negative price", domain.ErrInvalidSnapshot, line.ProductID)
		}
		seen[line.ProductID] = true
		items = append(items, domain.CartItem{Product: line.Product, Quantity: line.Quantity})
	}

	return domain.CartState{Items: items, Total: domain.CartTotal(items)}, nil
}

func EncodeWishlist(state domain.WishlistState) ([]byte, error) {
	snap := wishlistSnapshot{
		Version:    FormatVersion,
		ProductIDs: state.ProductIDs(),
		Products:   make(map[string]domain.Product, len(state.Products)),
	}
	for _, p := range state.Products {
		snap.Products[p.ID] = p
	}
	return json.Marshal(snap)
}

func DecodeWishlist(data []byte) (domain.WishlistState, error) {
	var snap wishlistSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.WishlistState{}, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	if snap.Version != FormatVersion {
		return domain.WishlistState{}, fmt.Errorf("%w: unsupported version %d", domain.ErrInvalidSnapshot, snap.Version)
	}

	state := domain.EmptyWishlist()
	for _, id := range snap.ProductIDs {
		p, ok := snap.Products[id]
		if !ok || p.ID != id {
			return domain.WishlistState{}, fmt.Errorf("%w: no product snapshot for %q", domain.ErrInvalidSnapshot, id)
		}
		if state.Contains(id) {
			return domain.WishlistState{}, fmt.Errorf("%w: duplicate product %s", domain.ErrInvalidSnapshot, id)
		}
		state.Products = append(state.Products, p)
	}
	return state, nil
}
