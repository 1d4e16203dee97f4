// Package config loads tracker settings from an optional YAML file and
// TRACKER_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

// Storage drivers
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// DefaultRosterKey is the key the roster snapshot is stored under
const DefaultRosterKey = "dndTrackerState"

const envPrefix = "TRACKER"

// StorageConfig selects and configures the roster store
type StorageConfig struct {
	// Driver is one of sqlite, redis or memory
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
	RedisAddr  string `mapstructure:"redis_addr"`
	// RedisDialTimeout bounds the initial connection attempt
	RedisDialTimeout time.Duration `mapstructure:"redis_dial_timeout"`
	RosterKey        string        `mapstructure:"roster_key"`
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Format is "json" or "console"
	Format string `mapstructure:"format"`
}

// Config is the top-level tracker configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate reports every invalid setting at once
func (c Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("storage.driver", c.Storage.Driver,
		[]string{DriverSQLite, DriverRedis, DriverMemory}, vb)
	switch c.Storage.Driver {
	case DriverSQLite:
		errors.ValidateRequired("storage.sqlite_path", c.Storage.SQLitePath, vb)
	case DriverRedis:
		errors.ValidateRequired("storage.redis_addr", c.Storage.RedisAddr, vb)
		if c.Storage.RedisDialTimeout < 0 {
			vb.Field("storage.redis_dial_timeout", "must not be negative")
		}
	}
	errors.ValidateRequired("storage.roster_key", c.Storage.RosterKey, vb)

	errors.ValidateEnum("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, []string{"json", "console"}, vb)

	return vb.Build()
}

// Load reads configuration from path, applies environment overrides and
// validates the result. An empty path means defaults plus environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured viper instance
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshalling config")
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", DefaultSQLitePath())
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_dial_timeout", 2*time.Second)
	v.SetDefault("storage.roster_key", DefaultRosterKey)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
}

// DefaultSQLitePath returns tracker.db under the user's data directory,
// falling back to the working directory when no home is available.
func DefaultSQLitePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "rpg-tracker", "tracker.db")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "tracker.db"
	}
	return filepath.Join(home, ".local", "share", "rpg-tracker", "tracker.db")
}
