package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/iov-one/quorum/errors"
)

const (
	configFile  = "config.toml"
	genesisFile = "genesis.json"
	dataDir     = "data"

	envPrefix = "QUORUM_"
)

// Config is the daemon configuration. It is read from config.toml in the
// home directory and each value can be overridden with a QUORUM_ prefixed
// environment variable.
type Config struct {
	// Bind is the address the HTTP server listens on.
	Bind string `toml:"bind" env:"BIND"`
	// Debug exposes internal error details and stack traces to clients.
	Debug bool `toml:"debug" env:"DEBUG"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`
	// ShutdownTimeout bounds the graceful shutdown of the server.
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DefaultConfig returns the configuration written by init.
func DefaultConfig() Config {
	return Config{
		Bind:            "localhost:8080",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadConfig reads the configuration of given home directory. A missing file
// is not an error, the defaults are used instead.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(home, configFile)
	switch _, err := os.Stat(path); {
	case err == nil:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, errors.Wrapf(errors.ErrInput, "load %s: %s", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, errors.Wrap(err, "stat config")
	}

	if err := env.Parse(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return cfg, errors.Wrapf(errors.ErrInput, "environment: %s", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	var errs error
	if c.Bind == "" {
		errs = errors.AppendField(errs, "Bind", errors.ErrEmpty)
	}
	switch c.LogLevel {
	case "debug", "info", "error", "none":
	default:
		errs = errors.AppendField(errs, "LogLevel", errors.Wrapf(errors.ErrInput, "unknown level %q", c.LogLevel))
	}
	if c.ShutdownTimeout <= 0 {
		errs = errors.AppendField(errs, "ShutdownTimeout", errors.Wrap(errors.ErrInput, "must be positive"))
	}
	return errs
}

// writeConfig saves the configuration as config.toml in given directory.
func writeConfig(home string, cfg Config) error {
	f, err := os.Create(filepath.Join(home, configFile))
	if err != nil {
		return errors.Wrap(err, "create config")
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrap(err, "encode config")
	}
	return nil
}
