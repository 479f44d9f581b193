package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrOutOfStock       = errors.New("out of stock")
	ErrQuantityLimit    = errors.New("quantity exceeds maximum limit")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
	ErrQuotaExceeded    = errors.New("storage quota exceeded")
)
