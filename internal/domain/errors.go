package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank search query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrPlacesProvider signals a text-search provider failure (non-OK status or transport error).
	ErrPlacesProvider = errors.New("places provider error")
	// ErrNoCenterResult signals that the text search resolved to nothing.
	ErrNoCenterResult = errors.New("no place matches query")
	// ErrVenuesProvider signals a venues-explore failure of any kind.
	ErrVenuesProvider = errors.New("venues provider error")
	// ErrPlaceNotFound signals a list index outside the neighbor-place collection.
	ErrPlaceNotFound = errors.New("place not found")
	// ErrMarkerNotFound signals a marker that is not attached to the map.
	ErrMarkerNotFound = errors.New("marker not found")
	// ErrSuperseded signals that a newer search cycle replaced this one.
	ErrSuperseded = errors.New("search cycle superseded")
	// ErrInvalidCoordinates signals a latitude/longitude outside the valid range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrNotConfigured signals missing provider credentials.
	ErrNotConfigured = errors.New("provider not configured")
)
