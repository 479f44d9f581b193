package v1

import (
	"net/http"
	"strings"

	"candleshop-backend/internal/domain"
	"candleshop-backend/internal/usecase"
	"candleshop-backend/pkg/utils"
)

type WishlistHandler struct {
	usecase *usecase.WishlistUsecase
}

func NewWishlistHandler(usecase *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{usecase: usecase}
}

type wishlistResponse struct {
	Products []productResponse `json:"products"`
	Count    int               `json:"count"`
}

func newWishlistResponse(state domain.WishlistState) wishlistResponse {
	return wishlistResponse{Products: newProductResponses(state.Products), Count: state.Len()}
}

func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, newWishlistResponse(h.usecase.GetWishlist(r.Context(), sid)))
}

func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.ProductID = strings.TrimSpace(req.ProductID)
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	_, added, err := h.usecase.AddToWishlist(r.Context(), sid, req.ProductID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	message := "Added to wishlist"
	if !added {
		message = "Already in wishlist"
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"added": added, "message": message})
}

func (h *WishlistHandler) IsInWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"inWishlist": h.usecase.IsInWishlist(r.Context(), sid, productID)})
}

func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	_, removed := h.usecase.RemoveFromWishlist(r.Context(), sid, productID)
	message := "Removed from wishlist"
	if !removed {
		message = "Not in wishlist"
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"removed": removed, "message": message})
}

func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, newWishlistResponse(h.usecase.ClearWishlist(r.Context(), sid)))
}
