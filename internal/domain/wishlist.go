package domain

import "fmt"

// WishlistState is an insertion-ordered set of product snapshots keyed by id.
type WishlistState struct {
	Products []Product `json:"products"`
}

func EmptyWishlist() WishlistState {
	return WishlistState{Products: []Product{}}
}

func (s WishlistState) Contains(productID string) bool {
	for _, p := range s.Products {
		if p.ID == productID {
			return true
		}
	}
	return false
}

func (s WishlistState) Len() int {
	return len(s.Products)
}

// ProductIDs returns ids in insertion order.
func (s WishlistState) ProductIDs() []string {
	ids := make([]string, len(s.Products))
	for i, p := range s.Products {
		ids[i] = p.ID
	}
	return ids
}

func (s WishlistState) Clone() WishlistState {
	out := make([]Product, len(s.Products))
	for i, p := range s.Products {
		out[i] = p.Snapshot()
	}
	return WishlistState{Products: out}
}

func (s WishlistState) Equal(o WishlistState) bool {
	if len(s.Products) != len(o.Products) {
		return false
	}
	for i := range s.Products {
		if !s.Products[i].Equal(o.Products[i]) {
			return false
		}
	}
	return true
}

// --- Wishlist Actions ---

type WishlistActionKind int

const (
	WishlistActionAdd WishlistActionKind = iota + 1
	WishlistActionRemove
	WishlistActionClear
)

func (k WishlistActionKind) String() string {
	switch k {
	case WishlistActionAdd:
		return "ADD"
	case WishlistActionRemove:
		return "REMOVE"
	case WishlistActionClear:
		return "CLEAR"
	default:
		return fmt.Sprintf("WishlistActionKind(%d)", int(k))
	}
}

type WishlistAction interface {
	Kind() WishlistActionKind
	wishlistAction()
}

type AddWishlistItem struct {
	Product Product
}

type RemoveWishlistItem struct {
	ProductID string
}

type ClearWishlist struct{}

func (AddWishlistItem) Kind() WishlistActionKind    { return WishlistActionAdd }
func (RemoveWishlistItem) Kind() WishlistActionKind { return WishlistActionRemove }
func (ClearWishlist) Kind() WishlistActionKind      { return WishlistActionClear }

func (AddWishlistItem) wishlistAction()    {}
func (RemoveWishlistItem) wishlistAction() {}
func (ClearWishlist) wishlistAction()      {}

// ReduceWishlist computes the next wishlist state. changed is false when the
// action had nothing to do: ADD of a present id, REMOVE of an absent id, or
// CLEAR of an empty wishlist. Callers use it to pick the user-facing message.
func ReduceWishlist(state WishlistState, action WishlistAction) (next WishlistState, changed bool) {
	next = state.Clone()

	switch a := action.(type) {
	case AddWishlistItem:
		if next.Contains(a.Product.ID) {
			return next, false
		}
		next.Products = append(next.Products, a.Product.Snapshot())
		return next, true

	case RemoveWishlistItem:
		out := next.Products[:0]
		for _, p := range next.Products {
			if p.ID != a.ProductID {
				out = append(out, p)
			}
		}
		changed = len(out) != len(next.Products)
		next.Products = out
		return next, changed

	case ClearWishlist:
		changed = len(next.Products) > 0
		return EmptyWishlist(), changed
	}

	return next, false
}
