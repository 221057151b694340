package nearby

import "github.com/kailas-cloud/nearby/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyQuery     = domain.ErrEmptyQuery
	ErrPlaceNotFound  = domain.ErrPlaceNotFound
	ErrMarkerNotFound = domain.ErrMarkerNotFound
	ErrSuperseded     = domain.ErrSuperseded
	ErrNotConfigured  = domain.ErrNotConfigured
)
