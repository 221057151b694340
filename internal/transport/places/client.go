package places

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/metrics"
)

const provider = "places"

// Client resolves free-text queries with the Google Places Text Search API.
type Client struct {
	maps     *maps.Client
	language string
	logger   *zap.Logger
}

// Config holds the text search provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewClient creates a text search client. A client without an API key is valid
// but every search fails with domain.ErrNotConfigured.
func NewClient(cfg *Config) (*Client, error) {
	c := &Client{language: cfg.Language, logger: cfg.Logger}
	if cfg.APIKey == "" {
		return c, nil
	}

	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}
	mc, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	c.maps = mc
	return c, nil
}

// TextSearch returns the matches for query in provider order.
func (c *Client) TextSearch(ctx context.Context, query string) ([]domain.PlaceMatch, error) {
	if c.maps == nil {
		metrics.ProviderErrorsTotal.WithLabelValues(provider, "not_configured").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrPlacesProvider, domain.ErrNotConfigured)
	}

	start := time.Now()
	resp, err := c.maps.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    query,
		Language: c.language,
	})
	duration := time.Since(start)

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(provider, "error").Inc()
		metrics.ProviderErrorsTotal.WithLabelValues(provider, errorType(ctx, err)).Inc()
		return nil, fmt.Errorf("text search: %v: %w", err, domain.ErrPlacesProvider)
	}

	metrics.ProviderRequestsTotal.WithLabelValues(provider, "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())

	out := make([]domain.PlaceMatch, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, domain.PlaceMatch{
			Name:             r.Name,
			FormattedAddress: r.FormattedAddress,
			Location:         domain.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		})
	}
	c.logger.Debug("text search completed",
		zap.String("query", query),
		zap.Int("results", len(out)),
		zap.Duration("duration", duration),
	)
	return out, nil
}

// HealthCheck reports whether the client has credentials. Text Search is billed
// per request, so no probe is sent.
func (c *Client) HealthCheck(_ context.Context) error {
	if c.maps == nil {
		return fmt.Errorf("places api key: %w", domain.ErrNotConfigured)
	}
	return nil
}

func errorType(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		return "canceled"
	default:
		return "api_error"
	}
}
