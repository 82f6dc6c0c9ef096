// Package config loads NamedCache settings from a YAML file and environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang/glog"
	"gopkg.in/yaml.v3"

	"github.com/VanDung-dev/NamedCache/cache"
)

// Environment variables read by FromEnv.
const (
	EnvConfigPath  = "NAMEDCACHE_CONFIG"
	EnvShards      = "NAMEDCACHE_SHARDS"
	EnvMetricsAddr = "NAMEDCACHE_METRICS_ADDR"
	EnvLogV        = "NAMEDCACHE_LOG_V"
)

// ErrInvalidShards is returned by Validate for a shard count that is not a power of two in range.
var ErrInvalidShards = errors.New("invalid shard count")

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Address   string `yaml:"address,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

// LogConfig controls glog output.
type LogConfig struct {
	ToStderr  bool `yaml:"to_stderr"`
	Verbosity int  `yaml:"verbosity,omitempty"`
}

// Config holds the library configuration.
type Config struct {
	// Shards is the number of name shards per registry (power of two, 1..cache.MaxShards)
	Shards int `yaml:"shards,omitempty"`

	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Shards: cache.DefaultShards,
		Metrics: MetricsConfig{
			Enabled:   false,
			Address:   "127.0.0.1:9464",
			Namespace: "namedcache",
		},
		Log: LogConfig{
			ToStderr: true,
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from NAMEDCACHE_CONFIG (if set) and the individual overrides.
func FromEnv() (*Config, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigPath); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v := os.Getenv(EnvShards); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvShards, err)
		}
		cfg.Shards = n
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Address = v
	}
	if v := os.Getenv(EnvLogV); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogV, err)
		}
		cfg.Log.Verbosity = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Shards < 1 || c.Shards > cache.MaxShards || c.Shards&(c.Shards-1) != 0 {
		return fmt.Errorf("%w: %d (want a power of two in 1..%d)", ErrInvalidShards, c.Shards, cache.MaxShards)
	}
	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return errors.New("metrics enabled without an address")
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("invalid log verbosity %d", c.Log.Verbosity)
	}
	return nil
}

// StoreOptions returns the cache options described by the config.
func (c *Config) StoreOptions() cache.Options {
	return cache.Options{Shards: c.Shards}
}

// ApplyLogging pushes the log settings into glog's flags.
func (c *Config) ApplyLogging() error {
	if err := flag.Set("logtostderr", strconv.FormatBool(c.Log.ToStderr)); err != nil {
		return fmt.Errorf("set logtostderr: %w", err)
	}
	if err := flag.Set("v", strconv.Itoa(c.Log.Verbosity)); err != nil {
		return fmt.Errorf("set v: %w", err)
	}
	glog.V(1).Infof("logging configured: to_stderr=%t v=%d", c.Log.ToStderr, c.Log.Verbosity)
	return nil
}
