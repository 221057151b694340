package nearby

import (
	"context"

	"github.com/kailas-cloud/nearby/internal/domain"
)

// Explorer lists venues around a coordinate, in provider order.
type Explorer interface {
	Explore(ctx context.Context, ll domain.Coordinate) ([]domain.Venue, error)
}
