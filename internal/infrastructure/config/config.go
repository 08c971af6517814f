package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/docker/go-units"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/liview/internal/shared/paths"
)

// EnvConfigFile names an optional TOML file applied before environment overrides.
const EnvConfigFile = "LIVIEW_CONFIG"

// Storage lifetime policies.
const (
	PolicyScoped = "scoped"
	PolicyNamed  = "named"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Archive   ArchiveConfig   `toml:"archive"`
	Images    ImagesConfig    `toml:"images"`
	Logging   LogConfig       `toml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `toml:"port" envconfig:"PORT"`
	Host string `toml:"host" envconfig:"HOST"`
}

// StorageConfig holds temp-area configuration.
type StorageConfig struct {
	// TempRoot is the base for scoped areas, removed per session on exit.
	TempRoot string `toml:"temp_root" envconfig:"STORAGE_TEMP_ROOT"`
	// CacheRoot is the fixed root for named, caller-managed extractions.
	CacheRoot string `toml:"cache_root" envconfig:"STORAGE_CACHE_ROOT"`
	// Policy is the default lifetime policy: "scoped" or "named".
	Policy string `toml:"policy" envconfig:"STORAGE_POLICY"`
}

// ArchiveConfig holds extraction limits.
type ArchiveConfig struct {
	// MaxEntrySize caps a single entry held in memory, e.g. "512MB".
	MaxEntrySize    string `toml:"max_entry_size" envconfig:"ARCHIVE_MAX_ENTRY_SIZE"`
	maxEntrySizeVal int64
}

// ImagesConfig holds the image allow-list.
type ImagesConfig struct {
	Extensions []string `toml:"extensions" envconfig:"IMAGE_EXTENSIONS"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `toml:"level" envconfig:"LOG_LEVEL"`
	Development bool   `toml:"development" envconfig:"LOG_DEV"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `toml:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int  `toml:"burst" envconfig:"RATE_LIMIT_BURST"`
	Enabled           bool `toml:"enabled" envconfig:"RATE_LIMIT_ENABLED"`
}

// MaxEntrySizeBytes returns the validated per-entry cap in bytes.
func (c *ArchiveConfig) MaxEntrySizeBytes() int64 {
	return c.maxEntrySizeVal
}

// Load builds configuration from defaults, the optional TOML file named by
// LIVIEW_CONFIG, and environment variables, in that order.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// Fields carry no default tags: unset variables leave file/default values alone.
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration or returns the validated default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = Default()
		_ = cfg.Validate()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "127.0.0.1",
		},
		Storage: StorageConfig{
			TempRoot:  paths.DefaultTempRoot(),
			CacheRoot: paths.DefaultCacheRoot(),
			Policy:    PolicyScoped,
		},
		Archive: ArchiveConfig{
			MaxEntrySize: "512MB",
		},
		Images: ImagesConfig{
			Extensions: []string{"png", "jpg", "jpeg", "gif", "webp"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Validate normalizes and checks the configuration.
func (c *Config) Validate() error {
	if c.Storage.TempRoot == "" {
		return fmt.Errorf("storage.temp_root required")
	}
	if c.Storage.CacheRoot == "" {
		return fmt.Errorf("storage.cache_root required")
	}

	c.Storage.Policy = strings.ToLower(strings.TrimSpace(c.Storage.Policy))
	switch c.Storage.Policy {
	case PolicyScoped, PolicyNamed:
	default:
		return fmt.Errorf("invalid storage.policy %q: must be %s or %s", c.Storage.Policy, PolicyScoped, PolicyNamed)
	}

	size, err := units.FromHumanSize(c.Archive.MaxEntrySize)
	if err != nil {
		return fmt.Errorf("invalid archive.max_entry_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("archive.max_entry_size must be positive")
	}
	c.Archive.maxEntrySizeVal = size

	exts := make([]string, 0, len(c.Images.Extensions))
	for _, ext := range c.Images.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		return fmt.Errorf("images.extensions cannot be empty")
	}
	c.Images.Extensions = exts

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit requires positive requests_per_second and burst")
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
