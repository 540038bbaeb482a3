// Package config loads the service configuration from defaults, an optional
// YAML or JSON file and EV_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. Nested keys use "__",
// e.g. EV_SERVER__PORT=9090 or EV_DATABASE__CIRCUIT_BREAKER__TIMEOUT=1m.
const EnvPrefix = "EV_"

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Cache    CacheConfig    `koanf:"cache"`
	Auth     AuthConfig     `koanf:"auth"`
	Database DatabaseConfig `koanf:"database"`
	Planner  PlannerConfig  `koanf:"planner"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        `koanf:"port"`
	RateLimit      int           `koanf:"rate_limit"`
	RateWindow     time.Duration `koanf:"rate_window"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	CORSOrigins    []string      `koanf:"cors_origins"`
	SwaggerUser    string        `koanf:"swagger_user"`
	SwaggerPass    string        `koanf:"swagger_pass"`
}

// CacheConfig holds the allocation result cache configuration.
// A zero Size disables the cache.
type CacheConfig struct {
	Size   int           `koanf:"size"`
	TTL    time.Duration `koanf:"ttl"`
	Shards int           `koanf:"shards"`
}

// AuthConfig holds authentication of the calling bot.
type AuthConfig struct {
	Enabled   bool          `koanf:"enabled"`
	APIKeys   []string      `koanf:"api_keys"`
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI            string               `koanf:"uri"`
	Name           string               `koanf:"name"`
	Enabled        bool                 `koanf:"enabled"`
	LogsTTL        time.Duration        `koanf:"logs_ttl"`
	CatalogRefresh time.Duration        `koanf:"catalog_refresh"`
	SeedCatalog    bool                 `koanf:"seed_catalog"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig configures the breakers around repository calls.
type CircuitBreakerConfig struct {
	FailureThreshold int           `koanf:"failure_threshold"`
	SuccessThreshold int           `koanf:"success_threshold"`
	Timeout          time.Duration `koanf:"timeout"`
}

// PlannerConfig holds allocation engine settings.
type PlannerConfig struct {
	ThresholdFactor    float64 `koanf:"threshold_factor"`
	MaxDays            int     `koanf:"max_days"`
	DefaultDensity     float64 `koanf:"default_density"`
	DefaultMealsPerDay int     `koanf:"default_meals_per_day"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level        string `koanf:"level"`
	Pretty       bool   `koanf:"pretty"`
	AsyncWorkers int    `koanf:"async_workers"`
	AsyncBuffer  int    `koanf:"async_buffer"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Size:   1000,
			TTL:    5 * time.Minute,
			Shards: 16,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Database: DatabaseConfig{
			URI:            "mongodb://localhost:27017",
			Name:           "energyvalue",
			LogsTTL:        30 * 24 * time.Hour,
			CatalogRefresh: 30 * time.Second,
			SeedCatalog:    true,
			CircuitBreaker: CircuitBreakerConfig{
				FailureThreshold: 5,
				SuccessThreshold: 2,
				Timeout:          30 * time.Second,
			},
		},
		Planner: PlannerConfig{
			ThresholdFactor:    1.5,
			MaxDays:            366,
			DefaultDensity:     100,
			DefaultMealsPerDay: 4,
		},
		Log: LogConfig{
			Level:        "info",
			AsyncWorkers: 4,
			AsyncBuffer:  1000,
		},
	}
}

// Load builds the configuration. path may be empty; otherwise it must name
// a .yaml, .yml or .json file. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Server.CORSOrigins = parseCORSOrigins(cfg.Server.CORSOrigins)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Cache.Size < 0 {
		errs = append(errs, fmt.Errorf("cache.size must not be negative, got %d", c.Cache.Size))
	}
	if !(c.Planner.ThresholdFactor > 0) {
		errs = append(errs, fmt.Errorf("planner.threshold_factor must be positive, got %v", c.Planner.ThresholdFactor))
	}
	if c.Planner.MaxDays <= 0 {
		errs = append(errs, fmt.Errorf("planner.max_days must be positive, got %d", c.Planner.MaxDays))
	}
	if !(c.Planner.DefaultDensity > 0) {
		errs = append(errs, fmt.Errorf("planner.default_density must be positive, got %v", c.Planner.DefaultDensity))
	}
	if m := c.Planner.DefaultMealsPerDay; m != 4 && m != 5 {
		errs = append(errs, fmt.Errorf("planner.default_meals_per_day must be 4 or 5, got %d", m))
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" && len(c.Auth.APIKeySet()) == 0 {
		errs = append(errs, errors.New("auth.enabled needs auth.jwt_secret or auth.api_keys"))
	}
	if c.Database.Enabled && c.Database.URI == "" {
		errs = append(errs, errors.New("database.uri is required when database.enabled"))
	}
	return errors.Join(errs...)
}

// APIKeySet returns the configured API keys as a lookup set, or nil.
func (a AuthConfig) APIKeySet() map[string]bool {
	return parseAPIKeys(a.APIKeys)
}

func parseAPIKeys(keys []string) map[string]bool {
	if len(keys) == 0 {
		return nil
	}
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func parseCORSOrigins(origins []string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	result := make([]string, 0, len(origins)+len(defaults))
	result = append(result, defaults...)
	for _, o := range origins {
		if origin := strings.TrimSpace(o); origin != "" && !slices.Contains(result, origin) {
			result = append(result, origin)
		}
	}
	return result
}
