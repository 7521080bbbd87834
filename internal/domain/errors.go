package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidProduct is returned when a catalog record fails validation
	ErrInvalidProduct = errors.New("invalid product record")

	// ErrEmptyCatalog is returned when the catalog contains no products
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrWordstatAPIFailure is returned when the Wordstat demand request fails
	ErrWordstatAPIFailure = errors.New("wordstat API request failed")

	// ErrEmbeddingFailure is returned when the embedding provider errors for an input
	ErrEmbeddingFailure = errors.New("embedding request failed")

	// ErrCacheMiss is returned when a demand result is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
