package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/slacklinehq/slackline/pkg/cache"
	"github.com/slacklinehq/slackline/pkg/errors"
	"github.com/slacklinehq/slackline/pkg/store"
)

// Config holds user-level settings loaded from the TOML config file
// (~/.config/slackline/config.toml by default). All fields have working
// defaults so the file is optional.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Cache    CacheConfig    `toml:"cache"`
	Store    StoreConfig    `toml:"store"`
	Practice PracticeConfig `toml:"practice"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects the schedule cache backend.
type CacheConfig struct {
	Backend string            `toml:"backend"` // "file", "redis" or "none"
	Dir     string            `toml:"dir"`     // file backend directory
	Redis   cache.RedisConfig `toml:"redis"`
}

// StoreConfig selects the project store backend.
type StoreConfig struct {
	Backend string            `toml:"backend"` // "file", "memory" or "mongo"
	Dir     string            `toml:"dir"`     // file backend directory
	Mongo   store.MongoConfig `toml:"mongo"`
}

// PracticeConfig configures practice report submission.
type PracticeConfig struct {
	SubmitURL string `toml:"submit_url"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{Backend: "file"},
		Store:  StoreConfig{Backend: "file"},
	}
}

// LoadConfig reads the config file at path. An empty path means the default
// location; a missing file is not an error and yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	return cfg, nil
}
