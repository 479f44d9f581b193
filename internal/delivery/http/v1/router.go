package v1

import (
	"net/http"
)

// Handlers groups every handler mounted by NewRouter.
type Handlers struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Wishlist *WishlistHandler
	Session  *SessionHandler
	Health   *HealthHandler
}

// NewRouter registers the storefront routes. Cart, wishlist and session
// routes run behind the session middleware; catalog and health do not.
func NewRouter(h Handlers, session func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/products", h.Catalog.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", h.Catalog.GetProductByID)
	mux.HandleFunc("GET /api/v1/categories", h.Catalog.GetCategories)

	// Cart
	mux.Handle("GET /api/v1/cart", session(http.HandlerFunc(h.Cart.GetCart)))
	mux.Handle("DELETE /api/v1/cart", session(http.HandlerFunc(h.Cart.ClearCart)))
	mux.Handle("POST /api/v1/cart/items", session(http.HandlerFunc(h.Cart.AddToCart)))
	mux.Handle("PUT /api/v1/cart/items/{productId}", session(http.HandlerFunc(h.Cart.UpdateQuantity)))
	mux.Handle("DELETE /api/v1/cart/items/{productId}", session(http.HandlerFunc(h.Cart.RemoveFromCart)))

	// Wishlist
	mux.Handle("GET /api/v1/wishlist", session(http.HandlerFunc(h.Wishlist.GetWishlist)))
	mux.Handle("POST /api/v1/wishlist", session(http.HandlerFunc(h.Wishlist.AddToWishlist)))
	mux.Handle("DELETE /api/v1/wishlist", session(http.HandlerFunc(h.Wishlist.ClearWishlist)))
	mux.Handle("GET /api/v1/wishlist/{productId}", session(http.HandlerFunc(h.Wishlist.IsInWishlist)))
	mux.Handle("DELETE /api/v1/wishlist/{productId}", session(http.HandlerFunc(h.Wishlist.RemoveFromWishlist)))

	// Session
	mux.Handle("DELETE /api/v1/session", session(http.HandlerFunc(h.Session.EndSession)))

	// Health Check
	mux.HandleFunc("GET /api/v1/health", h.Health.Check)
	mux.HandleFunc("GET /health", h.Health.Check) // Support root health check for Load Balancers

	return mux
}
