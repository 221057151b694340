package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the nearby service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Places  PlacesConfig  `yaml:"places"`
	Venues  VenuesConfig  `yaml:"venues"`
	Search  SearchConfig  `yaml:"search"`
	Widget  WidgetConfig  `yaml:"widget"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// PlacesConfig holds the text search provider settings.
type PlacesConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"` // empty: the library default
	Language   string `yaml:"language"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// VenuesConfig holds the venues explore provider settings.
type VenuesConfig struct {
	BaseURL      string `yaml:"base_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Version      string `yaml:"version"` // API version date, e.g. 20130815
	TimeoutSec   int    `yaml:"timeout_sec"`
}

// SearchConfig holds search cycle settings.
type SearchConfig struct {
	CycleTimeoutSec int `yaml:"cycle_timeout_sec"`
}

// WidgetConfig holds the initial view settings.
type WidgetConfig struct {
	DefaultQuery string `yaml:"default_query"`
	Zoom         int    `yaml:"zoom"`
	CenterIcon   string `yaml:"center_icon"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// Variables from a .env file in the working directory are loaded first; variables
// already set in the environment win.
func Load(env string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands ${VAR} references in data, decodes it and applies defaults.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	// SSE streams stay open, so no write timeout unless configured.
	if c.HTTP.WriteTimeoutSec < 0 {
		c.HTTP.WriteTimeoutSec = 0
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Places.TimeoutSec <= 0 {
		c.Places.TimeoutSec = 10
	}
	if c.Venues.BaseURL == "" {
		c.Venues.BaseURL = "https://api.foursquare.com"
	}
	if c.Venues.Version == "" {
		c.Venues.Version = "20130815"
	}
	if c.Venues.TimeoutSec <= 0 {
		c.Venues.TimeoutSec = 10
	}
	if c.Search.CycleTimeoutSec <= 0 {
		c.Search.CycleTimeoutSec = 15
	}
	if c.Widget.DefaultQuery == "" {
		c.Widget.DefaultQuery = "Udacity"
	}
	if c.Widget.Zoom <= 0 {
		c.Widget.Zoom = 14
	}
	if c.Widget.CenterIcon == "" {
		c.Widget.CenterIcon = "img/center-marker.png"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Widget.Zoom > 21 {
		return fmt.Errorf("widget.zoom must be between 1 and 21, got %d", c.Widget.Zoom)
	}
	if strings.TrimSpace(c.Widget.DefaultQuery) == "" {
		return fmt.Errorf("widget.default_query must not be blank")
	}
	for name, raw := range map[string]string{"places.base_url": c.Places.BaseURL, "venues.base_url": c.Venues.BaseURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
		}
	}
	return nil
}

// CycleTimeout returns the search cycle deadline.
func (c *Config) CycleTimeout() time.Duration {
	return time.Duration(c.Search.CycleTimeoutSec) * time.Second
}

// loadDotEnv loads path into the environment if it exists.
func loadDotEnv(path string) error {
	if !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// relative to the source file: internal/config -> project root
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b)))
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
