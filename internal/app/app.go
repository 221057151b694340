// Package app wires providers, use cases and the view from configuration.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/config"
	"github.com/kailas-cloud/nearby/internal/transport/foursquare"
	"github.com/kailas-cloud/nearby/internal/transport/places"
	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
	nearbyuc "github.com/kailas-cloud/nearby/internal/usecase/nearby"
	searchuc "github.com/kailas-cloud/nearby/internal/usecase/search"
	viewuc "github.com/kailas-cloud/nearby/internal/usecase/view"
)

// App is the assembled object graph shared by the server and the CLI.
type App struct {
	View   *viewuc.View
	Search *searchuc.Service
	Health *healthuc.Service
}

// Build assembles the app: places + venues clients -> fetcher -> controller -> view.
func Build(cfg *config.Config, logger *zap.Logger) (*App, error) {
	placesClient, err := places.NewClient(&places.Config{
		APIKey:   cfg.Places.APIKey,
		BaseURL:  cfg.Places.BaseURL,
		Language: cfg.Places.Language,
		Timeout:  time.Duration(cfg.Places.TimeoutSec) * time.Second,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("places client: %w", err)
	}

	venuesClient := foursquare.NewClient(&foursquare.Config{
		BaseURL:      cfg.Venues.BaseURL,
		ClientID:     cfg.Venues.ClientID,
		ClientSecret: cfg.Venues.ClientSecret,
		Version:      cfg.Venues.Version,
		Timeout:      time.Duration(cfg.Venues.TimeoutSec) * time.Second,
		Logger:       logger,
	})

	view := viewuc.New(viewuc.Config{
		Zoom:       cfg.Widget.Zoom,
		CenterIcon: cfg.Widget.CenterIcon,
	})
	fetcher := nearbyuc.New(venuesClient, logger)
	search := searchuc.New(placesClient, fetcher, view, logger).
		WithCycleTimeout(cfg.CycleTimeout())

	health := healthuc.New(map[string]healthuc.Checker{
		"places": placesClient,
		"venues": venuesClient,
	})

	return &App{View: view, Search: search, Health: health}, nil
}
