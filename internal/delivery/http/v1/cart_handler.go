package v1

import (
	"net/http"
	"strings"

	"candleshop-backend/internal/domain"
	"candleshop-backend/internal/usecase"
	"candleshop-backend/pkg/logger"
	"candleshop-backend/pkg/utils"

	"github.com/shopspring/decimal"
)

type CartHandler struct {
	cartUC *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: uc}
}

type cartItemResponse struct {
	Product   productResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type cartResponse struct {
	Items     []cartItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int                `json:"itemCount"`
	IsEmpty   bool               `json:"isEmpty"`
	Message   string             `json:"message,omitempty"`
}

func newCartResponse(state domain.CartState, message string) cartResponse {
	items := make([]cartItemResponse, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, cartItemResponse{
			Product:   newProductResponse(item.Product),
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}
	return cartResponse{
		Items:     items,
		Total:     state.Total,
		ItemCount: state.ItemCount(),
		IsEmpty:   state.IsEmpty(),
		Message:   message,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, newCartResponse(h.cartUC.GetCart(r.Context(), sid), ""))
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
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

	cart, err := h.cartUC.AddToCart(r.Context(), sid, req.ProductID)
	if err != nil {
		logger.WithContext(r.Context()).Info().Err(err).Str("product_id", req.ProductID).Msg("Add to cart rejected")
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, newCartResponse(cart, "Added to cart"))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	var req quantityRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil || req.Quantity == nil {
		utils.WriteError(w, http.StatusBadRequest, "Quantity required")
		return
	}

	cart, err := h.cartUC.UpdateQuantity(r.Context(), sid, productID, *req.Quantity)
	if err != nil {
		logger.WithContext(r.Context()).Info().Err(err).Str("product_id", productID).Int("quantity", *req.Quantity).Msg("Quantity update rejected")
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, newCartResponse(cart, ""))
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}
	utils.WriteJSON(w, http.StatusOK, newCartResponse(h.cartUC.RemoveFromCart(r.Context(), sid, productID), "Removed from cart"))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, newCartResponse(h.cartUC.ClearCart(r.Context(), sid), "Cart cleared"))
}
