package domain

import "errors"

var (
	// ErrProductNotFound is returned when no product matches the given id
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryNotFound is returned when no category matches the given slug
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidQuery is returned when request parameters are invalid
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrCatalogUnavailable is returned when the catalog source cannot be read
	ErrCatalogUnavailable = errors.New("catalog source unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
