package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/metrics"
	"github.com/kailas-cloud/nearby/internal/usecase/view"
)

// DefaultCycleTimeout bounds both provider calls of one search cycle.
const DefaultCycleTimeout = 15 * time.Second

// Service is the search controller: query -> text search -> center -> nearby fetch -> view.
type Service struct {
	places  PlaceSearcher
	nearby  NearbyFetcher
	view    Renderer
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a search controller.
func New(places PlaceSearcher, nearby NearbyFetcher, r Renderer, logger *zap.Logger) *Service {
	return &Service{
		places:  places,
		nearby:  nearby,
		view:    r,
		timeout: DefaultCycleTimeout,
		logger:  logger,
	}
}

// WithCycleTimeout overrides the per-cycle deadline.
func (s *Service) WithCycleTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Search runs one cycle to completion and returns the resulting view.
// Provider failures are reported through the snapshot status (Error), not the
// returned error. The error is domain.ErrEmptyQuery for a blank query and wraps
// domain.ErrSuperseded when a newer cycle replaced this one.
func (s *Service) Search(ctx context.Context, query string) (view.Snapshot, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return s.view.Snapshot(), err
	}

	gen, cycleCtx, cancel := s.begin(ctx, q)
	defer cancel()

	err = s.run(cycleCtx, gen, q)
	return s.view.Snapshot(), err
}

// Submit starts a cycle in the background and returns its generation.
func (s *Service) Submit(ctx context.Context, query string) (uint64, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return 0, err
	}

	gen, cycleCtx, cancel := s.begin(ctx, q)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		_ = s.run(cycleCtx, gen, q)
	}()
	return gen, nil
}

// Wait blocks until all background cycles have returned.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Stop cancels the in-flight cycle and waits for background cycles.
func (s *Service) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func normalizeQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", domain.ErrEmptyQuery
	}
	return q, nil
}

// begin cancels the previous cycle and opens a new generation in the view.
// The cycle context keeps the caller's values but not its cancellation, so a
// disconnecting client never leaves the view in Loading.
func (s *Service) begin(ctx context.Context, query string) (uint64, context.Context, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	cycleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	s.cancel = cancel

	gen := s.view.Begin(query)
	metrics.NeighborPlaces.Set(0)
	return gen, cycleCtx, cancel
}

func (s *Service) run(ctx context.Context, gen uint64, query string) error {
	log := s.logger.With(zap.Uint64("generation", gen), zap.String("query", query))
	start := time.Now()

	matches, err := s.places.TextSearch(ctx, query)
	if err == nil && len(matches) == 0 {
		err = fmt.Errorf("text search %q: %w", query, domain.ErrNoCenterResult)
	}
	if err != nil {
		log.Error("Error loading places service", zap.Error(err))
		return s.fail(log, gen, err)
	}

	center := domain.NewCenterPlace(query, matches[0])
	if err := s.view.SetCenter(gen, center); err != nil {
		return s.superseded(log, err)
	}

	places, err := s.nearby.Fetch(ctx, center)
	if err != nil {
		return s.fail(log, gen, err)
	}

	if err := s.view.ShowNeighbors(gen, places); err != nil {
		return s.superseded(log, err)
	}

	outcome := "ready"
	if len(places) == 0 {
		outcome = "no_results"
	}
	metrics.SearchCyclesTotal.WithLabelValues(outcome).Inc()
	metrics.NeighborPlaces.Set(float64(len(places)))

	log.Info("Search cycle completed",
		zap.String("outcome", outcome),
		zap.String("center", center.Name),
		zap.Stringer("ll", center.Location),
		zap.Int("places", len(places)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// fail settles the cycle as Error. There is no retry; the next query starts over.
func (s *Service) fail(log *zap.Logger, gen uint64, cause error) error {
	if err := s.view.Fail(gen); err != nil {
		return s.superseded(log, err)
	}
	metrics.SearchCyclesTotal.WithLabelValues("error").Inc()
	log.Warn("Search cycle failed", zap.Error(cause))
	return nil
}

func (s *Service) superseded(log *zap.Logger, err error) error {
	metrics.SearchCyclesTotal.WithLabelValues("superseded").Inc()
	log.Debug("Search cycle superseded, discarding response")
	return err
}
