// Package config loads the kektorkv startup configuration.
//
// Values are layered: DefaultConfig, then an optional YAML file, then any
// command-line flags the operator set explicitly (applied by cmd/kektorkv).
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sanonone/kektorkv/pkg/core"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full startup configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Store   StoreConfig   `yaml:"store"`
	Metrics MetricsConfig `yaml:"metrics"`
	MCP     MCPConfig     `yaml:"mcp"`
}

type ServerConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Verbose bool   `yaml:"verbose"`
	Format  string `yaml:"format"` // "text" or "json"
}

type StoreConfig struct {
	Backend string `yaml:"backend"` // "sharded" or "btree"
	Shards  int    `yaml:"shards"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:              "127.0.0.1",
			Port:              3030,
			MaxBodyBytes:      1 << 20,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		Log: LogConfig{
			Format: "text",
		},
		Store: StoreConfig{
			Backend: core.BackendSharded,
			Shards:  core.DefaultShards,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Addr is the host:port the HTTP server binds to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Load reads the YAML file at path on top of DefaultConfig.
// Environment variables written as ${VAR} are expanded before parsing, and
// unknown fields are rejected so that typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read configuration file '%s': %w", path, err)
	}

	decoder := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("YAML syntax error in '%s': %w", path, err)
	}

	return cfg, nil
}

// Validate reports the first setting that cannot be used to start the server.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.max_body_bytes must be positive", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalidConfig, c.Log.Format)
	}
	switch c.Store.Backend {
	case core.BackendSharded:
		if n := c.Store.Shards; n <= 0 || n&(n-1) != 0 {
			return fmt.Errorf("%w: store.shards %d is not a positive power of two", ErrInvalidConfig, n)
		}
	case core.BackendBTree:
	default:
		return fmt.Errorf("%w: store.backend %q (want sharded or btree)", ErrInvalidConfig, c.Store.Backend)
	}
	return nil
}
