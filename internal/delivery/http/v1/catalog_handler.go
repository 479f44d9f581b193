package v1

import (
	"net/http"
	"strconv"

	"candleshop-backend/internal/domain"
	"candleshop-backend/internal/usecase"
	"candleshop-backend/pkg/logger"
	"candleshop-backend/pkg/utils"

	"github.com/shopspring/decimal"
)

const (
	maxPageSize = 100
	maxPage     = 10000
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalogUC.GetCategories(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to list categories")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	utils.WriteJSON(w, http.StatusOK, cats)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := utils.ParseIntInRange(query.Get("limit"), 20, maxPageSize)
	page := utils.ParseIntInRange(query.Get("page"), 1, maxPage)

	filter := domain.ProductFilter{
		CategorySlug: query.Get("category"),
		Query:        query.Get("q"),
		MinPrice:     parsePrice(query.Get("min_price")),
		MaxPrice:     parsePrice(query.Get("max_price")),
	}
	if val := query.Get("in_stock"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			filter.InStockOnly = b
		}
	}

	products, pagination, err := h.catalogUC.ListProducts(r.Context(), filter, page, limit)
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to list products")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":       newProductResponses(products),
		"pagination": pagination,
	})
}

func (h *CatalogHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	product, err := h.catalogUC.GetProductByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, newProductResponse(*product))
}

// parsePrice ignores malformed bounds rather than rejecting the request.
func parsePrice(raw string) decimal.NullDecimal {
	if raw == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

type productResponse struct {
	domain.Product
	HasDiscount bool `json:"hasDiscount"`
}

func newProductResponse(p domain.Product) productResponse {
	return productResponse{Product: p, HasDiscount: p.HasDiscount()}
}

func newProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResponse(p))
	}
	return out
}
