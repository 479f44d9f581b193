package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// --- Cart Entities ---

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (i CartItem) ProductID() string {
	return i.Product.ID
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartState is an ordered list of lines plus the derived total.
// Total is always CartTotal(Items); only ReduceCart produces new states.
type CartState struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func EmptyCart() CartState {
	return CartState{Items: []CartItem{}, Total: decimal.Zero}
}

// CartTotal folds price * quantity over every line.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Find returns the index of the line holding productID.
func (s CartState) Find(productID string) (int, bool) {
	for i, item := range s.Items {
		if item.Product.ID == productID {
			return i, true
		}
	}
	return -1, false
}

// Quantity returns how many units of productID are in the cart (0 if absent).
func (s CartState) Quantity(productID string) int {
	if i, ok := s.Find(productID); ok {
		return s.Items[i].Quantity
	}
	return 0
}

// ItemCount is the number of units across all lines.
func (s CartState) ItemCount() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

func (s CartState) IsEmpty() bool {
	return len(s.Items) == 0
}

// CanAdd reports whether one more unit of p may be added. Without stock
// enforcement only a positive stock count is required.
func (s CartState) CanAdd(p Product, enforceStock bool) bool {
	if !p.InStock() {
		return false
	}
	if enforceStock {
		return s.Quantity(p.ID) < p.Stock
	}
	return true
}

// Clone returns a copy that shares nothing mutable with s.
func (s CartState) Clone() CartState {
	return CartState{Items: cloneItems(s.Items), Total: s.Total}
}

// Equal compares lines in order and totals numerically.
func (s CartState) Equal(o CartState) bool {
	if len(s.Items) != len(o.Items) || !s.Total.Equal(o.Total) {
		return false
	}
	for i := range s.Items {
		if s.Items[i].Quantity != o.Items[i].Quantity || !s.Items[i].Product.Equal(o.Items[i].Product) {
			return false
		}
	}
	return true
}

func cloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = CartItem{Product: item.Product.Snapshot(), Quantity: item.Quantity}
	}
	return out
}

// --- Cart Actions ---

type CartActionKind int

const (
	CartActionAddItem CartActionKind = iota + 1
	CartActionRemoveItem
	CartActionUpdateQuantity
	CartActionClear
)

func (k CartActionKind) String() string {
	switch k {
	case CartActionAddItem:
		return "ADD_ITEM"
	case CartActionRemoveItem:
		return "REMOVE_ITEM"
	case CartActionUpdateQuantity:
		return "UPDATE_QUANTITY"
	case CartActionClear:
		return "CLEAR_CART"
	default:
		return fmt.Sprintf("CartActionKind(%d)", int(k))
	}
}

// CartAction is a closed set: only the action types in this file implement it.
type CartAction interface {
	Kind() CartActionKind
	cartAction()
}

type AddCartItem struct {
	Product Product
}

type RemoveCartItem struct {
	ProductID string
}

// UpdateCartQuantity replaces a line's quantity. Quantity <= 0 removes the line.
type UpdateCartQuantity struct {
	ProductID string
	Quantity  int
}

type ClearCart struct{}

func (AddCartItem) Kind() CartActionKind        { return CartActionAddItem }
func (RemoveCartItem) Kind() CartActionKind     { return CartActionRemoveItem }
func (UpdateCartQuantity) Kind() CartActionKind { return CartActionUpdateQuantity }
func (ClearCart) Kind() CartActionKind          { return CartActionClear }

func (AddCartItem) cartAction()        {}
func (RemoveCartItem) cartAction()     {}
func (UpdateCartQuantity) cartAction() {}
func (ClearCart) cartAction()          {}

// ReduceCart computes the next cart state. It never mutates state, and the
// total of the result is recomputed from scratch.
func ReduceCart(state CartState, action CartAction) CartState {
	items := cloneItems(state.Items)

	switch a := action.(type) {
	case AddCartItem:
		if i, ok := (CartState{Items: items}).Find(a.Product.ID); ok {
			items[i].Quantity++
		} else {
			items = append(items, CartItem{Product: a.Product.Snapshot(), Quantity: 1})
		}

	case RemoveCartItem:
		items = removeLine(items, a.ProductID)

	case UpdateCartQuantity:
		i, ok := (CartState{Items: items}).Find(a.ProductID)
		if !ok {
			break
		}
		if a.Quantity <= 0 {
			items = removeLine(items, a.ProductID)
		} else {
			items[i].Quantity = a.Quantity
		}

	case ClearCart:
		items = []CartItem{}
	}

	return CartState{Items: items, Total: CartTotal(items)}
}

func removeLine(items []CartItem, productID string) []CartItem {
	out := items[:0]
	for _, item := range items {
		if item.Product.ID != productID {
			out = append(out, item)
		}
	}
	return out
}
