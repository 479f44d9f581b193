package v1

import (
	"errors"
	"net/http"

	"candleshop-backend/internal/domain"
	"candleshop-backend/pkg/logger"
	"candleshop-backend/pkg/utils"
)

// writeDomainError maps use case errors onto HTTP responses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		utils.WriteError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrOutOfStock):
		utils.WriteError(w, http.StatusConflict, "Out of stock")
	case errors.Is(err, domain.ErrQuantityLimit):
		utils.WriteError(w, http.StatusUnprocessableEntity, "Quantity exceeds maximum limit")
	default:
		logger.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// sessionID returns the session resolved by the session middleware.
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := domain.SessionIDFromContext(r.Context())
	if !ok || id == "" {
		logger.WithContext(r.Context()).Error().Msg("Request reached a session route without a session")
		utils.WriteError(w, http.StatusInternalServerError, "Session unavailable")
		return "", false
	}
	return id, true
}

type productRequest struct {
	ProductID string `json:"productId"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}
