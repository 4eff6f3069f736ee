package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the catalog cannot be loaded
	ErrCatalogUnavailable = errors.New("product catalog unavailable")

	// ErrInvalidCatalogFormat is returned when the catalog file does not
	// have the expected header or column count
	ErrInvalidCatalogFormat = errors.New("invalid catalog file format")

	// ErrInvalidAliasFormat is returned when the alias file does not have
	// the expected header or column count
	ErrInvalidAliasFormat = errors.New("invalid alias file format")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)
