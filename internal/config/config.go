// Package config loads and saves propcell.json, the configuration file used
// by the propcell CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "propcell.json"

	// DefaultAddr is the default inspect server listen address.
	DefaultAddr = "localhost:6060"

	// DefaultNamespace is the default Prometheus metrics namespace.
	DefaultNamespace = "propcell"

	// DefaultBenchWrites is the default number of writes per bench run.
	DefaultBenchWrites = 1_000_000

	// DefaultBenchChain is the default bind chain length for bench runs.
	DefaultBenchChain = 4
)

// Config represents the complete propcell.json configuration.
type Config struct {
	// Serve configures the inspect server.
	Serve ServeConfig `json:"serve,omitempty"`

	// Feed configures the WebSocket feed used by watch and serve.
	Feed FeedConfig `json:"feed,omitempty"`

	// Bench configures benchmark runs.
	Bench BenchConfig `json:"bench,omitempty"`
}

// ServeConfig configures the inspect server.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`

	// Namespace is the Prometheus metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// FeedConfig configures the WebSocket feed.
type FeedConfig struct {
	// URL is the WebSocket endpoint to dial.
	URL string `json:"url,omitempty"`

	// ReadTimeoutSeconds bounds the wait for each message; 0 means none.
	ReadTimeoutSeconds int `json:"readTimeoutSeconds,omitempty"`
}

// BenchConfig configures benchmark runs.
type BenchConfig struct {
	// Writes is the number of writes per run.
	Writes int `json:"writes,omitempty"`

	// Chain is the number of bound properties each write propagates
	// through.
	Chain int `json:"chain,omitempty"`
}

// New returns a config populated with defaults.
func New() *Config {
	return &Config{
		Serve: ServeConfig{
			Addr:      DefaultAddr,
			Namespace: DefaultNamespace,
		},
		Bench: BenchConfig{
			Writes: DefaultBenchWrites,
			Chain:  DefaultBenchChain,
		},
	}
}

// Load reads propcell.json from dir. A missing file yields the defaults; a
// malformed one is an error. Fields absent from the file keep their default
// values.
func Load(dir string) (*Config, error) {
	cfg := New()

	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to propcell.json in dir.
func (c *Config) Save(dir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
