package search

import (
	"context"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/usecase/view"
)

// PlaceSearcher resolves free text to candidate places.
type PlaceSearcher interface {
	TextSearch(ctx context.Context, query string) ([]domain.PlaceMatch, error)
}

// NearbyFetcher lists neighbor places around a center.
type NearbyFetcher interface {
	Fetch(ctx context.Context, center domain.CenterPlace) ([]domain.NeighborPlace, error)
}

// Renderer is the view a search cycle writes into. Writes for a generation that is
// no longer current fail with domain.ErrSuperseded.
type Renderer interface {
	Begin(query string) uint64
	SetCenter(gen uint64, place domain.CenterPlace) error
	ShowNeighbors(gen uint64, places []domain.NeighborPlace) error
	Fail(gen uint64) error
	Snapshot() view.Snapshot
}
