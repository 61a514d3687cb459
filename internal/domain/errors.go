package domain

import "errors"

var (
	// ErrNeighborhoodNotFound is returned when no catalog entry has the requested id
	ErrNeighborhoodNotFound = errors.New("neighborhood not found")

	// ErrDuplicateNeighborhood is returned when two catalog entries share an id
	ErrDuplicateNeighborhood = errors.New("duplicate neighborhood id")

	// ErrCatalogInvalid is returned when the catalog document fails validation
	ErrCatalogInvalid = errors.New("invalid neighborhood catalog")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
