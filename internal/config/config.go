// Package config handles application configuration management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all couchpilot data (~/.couchpilot)
	BaseDir string `mapstructure:"-"`

	Server ServerConfig `mapstructure:"server"`
	Sync   SyncConfig   `mapstructure:"sync"`
	Browse BrowseConfig `mapstructure:"browse"`
}

// ServerConfig holds the remote media server settings. The catalog core
// only reads these; server discovery and auth flows live elsewhere.
type ServerConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// SyncConfig tunes the background catalog sync.
type SyncConfig struct {
	// PageSize is the bulk page size requested from the server.
	PageSize int `mapstructure:"page_size"`
	// Interval between periodic full syncs.
	Interval time.Duration `mapstructure:"interval"`
	// RequestsPerMinute caps the request rate during a multi-page sync.
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
}

// BrowseConfig tunes the windowed catalog views.
type BrowseConfig struct {
	// PageSize is the number of rows loaded per window page.
	PageSize int `mapstructure:"page_size"`
	// WindowPages bounds how many loaded pages are retained in memory.
	WindowPages int `mapstructure:"window_pages"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),
		Sync: SyncConfig{
			PageSize:          200,
			Interval:          6 * time.Hour,
			RequestsPerMinute: 60,
		},
		Browse: BrowseConfig{
			PageSize:    50,
			WindowPages: 6,
		},
	}
}

// Load reads configuration from the config file and environment.
// Environment variables use the COUCHPILOT_ prefix
// (COUCHPILOT_SERVER_URL, COUCHPILOT_SERVER_TOKEN, ...).
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(cfg.BaseDir)

	v.SetEnvPrefix("COUCHPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.url", "")
	v.SetDefault("server.token", "")
	v.SetDefault("sync.page_size", cfg.Sync.PageSize)
	v.SetDefault("sync.interval", cfg.Sync.Interval)
	v.SetDefault("sync.requests_per_minute", cfg.Sync.RequestsPerMinute)
	v.SetDefault("browse.page_size", cfg.Browse.PageSize)
	v.SetDefault("browse.window_pages", cfg.Browse.WindowPages)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.BaseDir = DefaultBaseDir()

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
		filepath.Join(cfg.BaseDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
