package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// ServerURL is the base URL of the user-administration server.
	ServerURL   string        `env:"SERVER_URL,   default=http://localhost:5000"`
	Env         string        `env:"ENV,          default=development"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	LogFile     string        `env:"LOG_FILE"`
	StateFile   string        `env:"STATE_FILE"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=10s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// LoadFrom reads configuration from an arbitrary lookuper. Used in tests.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveStateFile returns the configured state file path, defaulting to a
// per-user location under the OS config directory.
func (c *Config) ResolveStateFile() string {
	if c.StateFile != "" {
		return c.StateFile
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "fieldstation", "session.json")
}
