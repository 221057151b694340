package nearby

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	placesKey     string
	placesBaseURL string
	language      string

	venuesID      string
	venuesSecret  string
	venuesBaseURL string

	zoom           int
	cycleTimeout   time.Duration
	requestTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithGooglePlaces sets the Google Maps API key used for text search.
func WithGooglePlaces(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.placesKey = apiKey
	})
}

// WithPlacesBaseURL points text search at another host, e.g. a test server.
func WithPlacesBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.placesBaseURL = u
	})
}

// WithLanguage sets the language of place names returned by text search.
func WithLanguage(lang string) Option {
	return optionFunc(func(c *clientConfig) {
		c.language = lang
	})
}

// WithFoursquare sets the venues explore API credentials.
func WithFoursquare(clientID, clientSecret string) Option {
	return optionFunc(func(c *clientConfig) {
		c.venuesID = clientID
		c.venuesSecret = clientSecret
	})
}

// WithVenuesBaseURL points venues explore at another host.
// Default: https://api.foursquare.com.
func WithVenuesBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.venuesBaseURL = u
	})
}

// WithZoom sets the map zoom level. Default: 14.
func WithZoom(zoom int) Option {
	return optionFunc(func(c *clientConfig) {
		c.zoom = zoom
	})
}

// WithCycleTimeout bounds one search (text search plus venues fetch).
// Default: 15s.
func WithCycleTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cycleTimeout = d
	})
}

// WithRequestTimeout bounds each provider HTTP request. Default: 10s.
func WithRequestTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.requestTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
