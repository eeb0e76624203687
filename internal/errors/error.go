package errors

import (
	"errors"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductNotInCart     = errors.New("product is not in cart")
	ErrOutOfStock           = errors.New("product is out of stock")
	ErrCatalogUnavailable   = errors.New("catalog service unavailable")
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
)
