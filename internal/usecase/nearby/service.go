package nearby

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/domain"
)

// Service turns the venues around a center place into neighbor places.
type Service struct {
	explorer Explorer
	logger   *zap.Logger
}

// New creates a nearby-places fetcher.
func New(explorer Explorer, logger *zap.Logger) *Service {
	return &Service{explorer: explorer, logger: logger}
}

// Fetch queries venues around center and maps each one to a NeighborPlace.
// Order follows the provider response. On failure no places are returned.
func (s *Service) Fetch(ctx context.Context, center domain.CenterPlace) ([]domain.NeighborPlace, error) {
	start := time.Now()

	venues, err := s.explorer.Explore(ctx, center.Location)
	if err != nil {
		s.logger.Error("Error loading venues service",
			zap.String("query", center.Query),
			zap.Stringer("ll", center.Location),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("explore venues: %w", err)
	}

	places := make([]domain.NeighborPlace, 0, len(venues))
	for _, v := range venues {
		places = append(places, domain.NewNeighborPlace(v, center.Location))
	}

	s.logger.Debug("Venues loaded",
		zap.String("query", center.Query),
		zap.Stringer("ll", center.Location),
		zap.Int("count", len(places)),
		zap.Duration("duration", time.Since(start)),
	)
	return places, nil
}
