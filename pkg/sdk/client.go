package nearby

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/domain/mapview"
	"github.com/kailas-cloud/nearby/internal/transport/foursquare"
	"github.com/kailas-cloud/nearby/internal/transport/places"
	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
	nearbyuc "github.com/kailas-cloud/nearby/internal/usecase/nearby"
	searchuc "github.com/kailas-cloud/nearby/internal/usecase/search"
	viewuc "github.com/kailas-cloud/nearby/internal/usecase/view"
)

const defaultRequestTimeout = 10 * time.Second

// Внутренние интерфейсы для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, query string) (viewuc.Snapshot, error)
	Stop()
}

type viewUseCase interface {
	Snapshot() viewuc.Snapshot
	ShowInfo(id mapview.MarkerID) error
	ShowInfoAt(index int) error
	ShowCenterInfo() error
}

// Client is the nearby SDK entry point. It owns one widget view; concurrent
// searches are allowed and the latest one wins.
type Client struct {
	searchSvc searchUseCase
	viewSvc   viewUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. Both provider credentials are required.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{requestTimeout: defaultRequestTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.placesKey == "" {
		return nil, errors.New("nearby: places API key required (use WithGooglePlaces)")
	}
	if cfg.venuesID == "" || cfg.venuesSecret == "" {
		return nil, errors.New("nearby: venues credentials required (use WithFoursquare)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(cfg, obs)
}

func wireClient(cfg *clientConfig, obs *observer) (*Client, error) {
	// Внутренние сервисы логируют через zap; SDK пишет свои события в slog.
	nop := zap.NewNop()

	placesClient, err := places.NewClient(&places.Config{
		APIKey:   cfg.placesKey,
		BaseURL:  cfg.placesBaseURL,
		Language: cfg.language,
		Timeout:  cfg.requestTimeout,
		Logger:   nop,
	})
	if err != nil {
		return nil, fmt.Errorf("nearby: create places client: %w", err)
	}
	venuesClient := foursquare.NewClient(&foursquare.Config{
		BaseURL:      cfg.venuesBaseURL,
		ClientID:     cfg.venuesID,
		ClientSecret: cfg.venuesSecret,
		Timeout:      cfg.requestTimeout,
		Logger:       nop,
	})

	view := viewuc.New(viewuc.Config{Zoom: cfg.zoom})
	searchSvc := searchuc.New(placesClient, nearbyuc.New(venuesClient, nop), view, nop).
		WithCycleTimeout(cfg.cycleTimeout)

	healthSvc := healthuc.New(map[string]healthuc.Checker{
		"places": placesClient,
		"venues": venuesClient,
	})

	return &Client{
		searchSvc: searchSvc,
		viewSvc:   view,
		healthSvc: healthSvc,
		obs:       obs,
	}, nil
}

// Close cancels an in-flight search and waits for it to return.
func (c *Client) Close() {
	if c.searchSvc != nil {
		c.searchSvc.Stop()
	}
}

// Search resolves query, centers the map on it and lists the venues around it.
// Provider failures are reported as StatusError in the View; the error is
// ErrEmptyQuery for a blank query or wraps ErrSuperseded when a newer search
// replaced this one.
func (c *Client) Search(ctx context.Context, query string) (v View, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	snap, err := c.searchSvc.Search(ctx, query)
	if err != nil {
		return viewFromSnapshot(snap), fmt.Errorf("search: %w", err)
	}
	return viewFromSnapshot(snap), nil
}

// View returns the current widget state.
func (c *Client) View() View {
	return viewFromSnapshot(c.viewSvc.Snapshot())
}

// SelectPlace acts like a click on the list entry at index: the map pans to
// the place and the popup opens on its marker.
func (c *Client) SelectPlace(index int) (View, error) {
	return c.interact("select_place", func() error { return c.viewSvc.ShowInfoAt(index) })
}

// ClickMarker acts like a click on a map marker, center or neighbor.
func (c *Client) ClickMarker(id uint64) (View, error) {
	return c.interact("click_marker", func() error { return c.viewSvc.ShowInfo(mapview.MarkerID(id)) })
}

// ClickCenter recenters on the center place and shows the query in the popup.
func (c *Client) ClickCenter() (View, error) {
	return c.interact("click_center", c.viewSvc.ShowCenterInfo)
}

func (c *Client) interact(op string, fn func() error) (v View, err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	if err = fn(); err != nil {
		return View{}, fmt.Errorf("%s: %w", op, err)
	}
	return c.View(), nil
}
