package foursquare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/metrics"
)

const (
	provider = "venues"

	// DefaultBaseURL is the public Foursquare API.
	DefaultBaseURL = "https://api.foursquare.com"
	// DefaultVersion is the API version date sent as the "v" parameter.
	DefaultVersion = "20130815"

	explorePath = "/v2/venues/explore"
	maxBodySize = 4 << 20
)

// Client calls the Foursquare venues explore endpoint.
type Client struct {
	http         *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	version      string
	logger       *zap.Logger
}

// Config holds the venues provider settings.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Version      string
	Timeout      time.Duration
	Logger       *zap.Logger
}

// NewClient creates a venues explore client.
func NewClient(cfg *Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	version := cfg.Version
	if version == "" {
		version = DefaultVersion
	}
	return &Client{
		http:         &http.Client{Timeout: cfg.Timeout},
		baseURL:      baseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		version:      version,
		logger:       cfg.Logger,
	}
}

// Explore returns the venues of the first response group around ll, in response order.
func (c *Client) Explore(ctx context.Context, ll domain.Coordinate) ([]domain.Venue, error) {
	if c.clientID == "" || c.clientSecret == "" {
		metrics.ProviderErrorsTotal.WithLabelValues(provider, "not_configured").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrVenuesProvider, domain.ErrNotConfigured)
	}

	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("client_secret", c.clientSecret)
	params.Set("v", c.version)
	params.Set("ll", ll.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+explorePath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build explore request: %v: %w", err, domain.ErrVenuesProvider)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail("transport", fmt.Errorf("explore request: %v: %w", redact(err), domain.ErrVenuesProvider))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, c.fail("transport", fmt.Errorf("read explore response: %v: %w", err, domain.ErrVenuesProvider))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail("http_status", fmt.Errorf("explore returned %d%s: %w",
			resp.StatusCode, detail(body), domain.ErrVenuesProvider))
	}

	var parsed exploreResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, c.fail("decode", fmt.Errorf("decode explore response: %v: %w", err, domain.ErrVenuesProvider))
	}
	if parsed.Meta != nil && parsed.Meta.Code != http.StatusOK {
		return nil, c.fail("meta", fmt.Errorf("explore meta code %d %s: %w",
			parsed.Meta.Code, parsed.Meta.ErrorType, domain.ErrVenuesProvider))
	}
	if len(parsed.Response.Groups) == 0 {
		return nil, c.fail("shape", fmt.Errorf("explore response has no groups: %w", domain.ErrVenuesProvider))
	}

	duration := time.Since(start)
	metrics.ProviderRequestsTotal.WithLabelValues(provider, "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())

	items := parsed.Response.Groups[0].Items
	venues := make([]domain.Venue, 0, len(items))
	for _, it := range items {
		venues = append(venues, toDomain(it.Venue))
	}

	c.logger.Debug("explore completed",
		zap.Stringer("ll", ll),
		zap.Int("venues", len(venues)),
		zap.Duration("duration", duration),
	)
	return venues, nil
}

// HealthCheck reports whether client credentials are set.
func (c *Client) HealthCheck(_ context.Context) error {
	if c.clientID == "" || c.clientSecret == "" {
		return fmt.Errorf("venues client credentials: %w", domain.ErrNotConfigured)
	}
	return nil
}

func (c *Client) fail(errType string, err error) error {
	metrics.ProviderRequestsTotal.WithLabelValues(provider, "error").Inc()
	metrics.ProviderErrorsTotal.WithLabelValues(provider, errType).Inc()
	return err
}

func toDomain(v venue) domain.Venue {
	cats := make([]string, 0, len(v.Categories))
	for _, c := range v.Categories {
		cats = append(cats, c.Name)
	}
	return domain.Venue{
		Name:       v.Name,
		Categories: cats,
		Address:    v.Location.Address,
		Phone:      v.Contact.FormattedPhone,
		Rating:     v.Rating,
		Location:   domain.Coordinate{Lat: v.Location.Lat, Lng: v.Location.Lng},
	}
}

// detail extracts meta.errorDetail from an error body.
func detail(body []byte) string {
	var parsed exploreResponse
	if json.Unmarshal(body, &parsed) == nil && parsed.Meta != nil && parsed.Meta.ErrorDetail != "" {
		return ": " + parsed.Meta.ErrorDetail
	}
	return ""
}

// redact drops the request URL, which carries the client secret.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
