// Package config provides configuration management for cachemir-core's
// server and client components.
//
// The package supports configuration through multiple sources with the
// following precedence:
//  1. Command-line flags (highest priority)
//  2. Environment variables
//  3. Default values (lowest priority)
//
// Environment variables are prefixed with "CACHEMIR_" and use uppercase
// names. For example, the server port can be set with CACHEMIR_PORT=2203.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default server configuration constants.
const (
	DefaultServerPort        = 2203
	DefaultMaxConns          = 1000
	DefaultReadTimeoutSecs   = 30
	DefaultWriteTimeoutSecs  = 10
	DefaultSweepIntervalSecs = 1
	DefaultRehashSteps       = 1
)

// Default client configuration constants.
const (
	DefaultMaxConnsPerNode = 10
	DefaultConnTimeoutSecs = 5
	DefaultRetryAttempts   = 3
)

// ServerConfig holds all configuration options for a cachemir-core server
// instance: network settings, resource limits, and the tuning knobs for the
// store's rehash pace and expiration sweep.
//
// Configuration sources (in order of precedence):
//  1. Command-line flags: -port, -host, -sweep-interval, etc.
//  2. Environment variables: CACHEMIR_PORT, CACHEMIR_HOST, etc.
//  3. Default values
type ServerConfig struct {
	Host              string // Host address to bind to (default: "0.0.0.0")
	LogLevel          string // Log level: debug, info, warn, error (default: "info")
	Port              int    // TCP port to listen on (default: 2203)
	MaxConns          int    // Connection limit; validated, but internal/server does not enforce it (default: 1000)
	ReadTimeoutSecs   int    // Per-connection read deadline, seconds (default: 30)
	WriteTimeoutSecs  int    // Per-connection write deadline, seconds (default: 10)
	SweepIntervalSecs int    // TTL sweep cadence, seconds (default: 1)
	RehashSteps       int    // Buckets migrated per ProgressiveMap op during a resize (default: 1)
}

// ClientConfig holds all configuration options for a cachemir-core client
// instance: the single server address, connection pooling, and retry
// settings.
type ClientConfig struct {
	Addr             string // Server address, "host:port" (default: "localhost:2203")
	MaxConns         int    // Max pooled connections (default: 10)
	ConnTimeoutSecs  int    // Dial timeout, seconds (default: 5)
	ReadTimeoutSecs  int    // Read timeout, seconds (default: 30)
	WriteTimeoutSecs int    // Write timeout, seconds (default: 10)
	RetryAttempts    int    // Retry count; validated, but Client makes each call once and does not retry (default: 3)
}

// LoadServerConfig creates a ServerConfig by loading values from
// command-line flags and environment variables, with sensible defaults.
//
// Command-line flags:
//
//	-port: Server port (default: 2203)
//	-host: Server host (default: "0.0.0.0")
//	-max-conns: Maximum connections (default: 1000)
//	-read-timeout: Read timeout in seconds (default: 30)
//	-write-timeout: Write timeout in seconds (default: 10)
//	-sweep-interval: TTL sweep cadence in seconds (default: 1)
//	-rehash-steps: Buckets migrated per map operation during a resize (default: 1)
//	-log-level: Log level (default: "info")
//
// Environment variables:
//
//	CACHEMIR_PORT, CACHEMIR_HOST, CACHEMIR_MAX_CONNS,
//	CACHEMIR_SWEEP_INTERVAL_SECS, CACHEMIR_REHASH_STEPS
func LoadServerConfig() *ServerConfig {
	cfg := &ServerConfig{
		Port:              DefaultServerPort,
		Host:              "0.0.0.0",
		MaxConns:          DefaultMaxConns,
		ReadTimeoutSecs:   DefaultReadTimeoutSecs,
		WriteTimeoutSecs:  DefaultWriteTimeoutSecs,
		SweepIntervalSecs: DefaultSweepIntervalSecs,
		RehashSteps:       DefaultRehashSteps,
		LogLevel:          "info",
	}

	flag.IntVar(&cfg.Port, "port", cfg.Port, "Server port")
	flag.StringVar(&cfg.Host, "host", cfg.Host, "Server host")
	flag.IntVar(&cfg.MaxConns, "max-conns", cfg.MaxConns, "Maximum concurrent connections")
	flag.IntVar(&cfg.ReadTimeoutSecs, "read-timeout", cfg.ReadTimeoutSecs, "Read timeout in seconds")
	flag.IntVar(&cfg.WriteTimeoutSecs, "write-timeout", cfg.WriteTimeoutSecs, "Write timeout in seconds")
	flag.IntVar(&cfg.SweepIntervalSecs, "sweep-interval", cfg.SweepIntervalSecs, "TTL sweep cadence in seconds")
	flag.IntVar(&cfg.RehashSteps, "rehash-steps", cfg.RehashSteps, "Buckets migrated per map operation during a resize")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.Parse()

	// Environment variables fill in only settings not given as flags.
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if v := os.Getenv("CACHEMIR_PORT"); v != "" && !explicit["port"] {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("CACHEMIR_HOST"); v != "" && !explicit["host"] {
		cfg.Host = v
	}
	if v := os.Getenv("CACHEMIR_MAX_CONNS"); v != "" && !explicit["max-conns"] {
		if mc, err := strconv.Atoi(v); err == nil {
			cfg.MaxConns = mc
		}
	}
	if v := os.Getenv("CACHEMIR_SWEEP_INTERVAL_SECS"); v != "" && !explicit["sweep-interval"] {
		if si, err := strconv.Atoi(v); err == nil {
			cfg.SweepIntervalSecs = si
		}
	}
	if v := os.Getenv("CACHEMIR_REHASH_STEPS"); v != "" && !explicit["rehash-steps"] {
		if rs, err := strconv.Atoi(v); err == nil {
			cfg.RehashSteps = rs
		}
	}

	return cfg
}

// LoadClientConfig creates a ClientConfig by loading values from
// environment variables, with sensible defaults.
//
// Environment variables:
//
//	CACHEMIR_ADDR: Server address
//	CACHEMIR_MAX_CONNS: Maximum pooled connections
//	CACHEMIR_CONN_TIMEOUT: Connection timeout in seconds
//	CACHEMIR_READ_TIMEOUT: Read timeout in seconds
//	CACHEMIR_WRITE_TIMEOUT: Write timeout in seconds
//	CACHEMIR_RETRY_ATTEMPTS: Number of retry attempts
func LoadClientConfig() *ClientConfig {
	cfg := &ClientConfig{
		Addr:             "localhost:2203",
		MaxConns:         DefaultMaxConnsPerNode,
		ConnTimeoutSecs:  DefaultConnTimeoutSecs,
		ReadTimeoutSecs:  DefaultReadTimeoutSecs,
		WriteTimeoutSecs: DefaultWriteTimeoutSecs,
		RetryAttempts:    DefaultRetryAttempts,
	}

	if v := os.Getenv("CACHEMIR_ADDR"); v != "" {
		cfg.Addr = strings.TrimSpace(v)
	}
	if v := os.Getenv("CACHEMIR_MAX_CONNS"); v != "" {
		if mc, err := strconv.Atoi(v); err == nil {
			cfg.MaxConns = mc
		}
	}
	if v := os.Getenv("CACHEMIR_CONN_TIMEOUT"); v != "" {
		if ct, err := strconv.Atoi(v); err == nil {
			cfg.ConnTimeoutSecs = ct
		}
	}
	if v := os.Getenv("CACHEMIR_READ_TIMEOUT"); v != "" {
		if rt, err := strconv.Atoi(v); err == nil {
			cfg.ReadTimeoutSecs = rt
		}
	}
	if v := os.Getenv("CACHEMIR_WRITE_TIMEOUT"); v != "" {
		if wt, err := strconv.Atoi(v); err == nil {
			cfg.WriteTimeoutSecs = wt
		}
	}
	if v := os.Getenv("CACHEMIR_RETRY_ATTEMPTS"); v != "" {
		if ra, err := strconv.Atoi(v); err == nil {
			cfg.RetryAttempts = ra
		}
	}

	return cfg
}

// Address returns the "host:port" string for the server to bind to.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks that a ServerConfig's values are usable.
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.MaxConns < 1 {
		return fmt.Errorf("max connections must be positive: %d", c.MaxConns)
	}
	if c.ReadTimeoutSecs < 1 {
		return fmt.Errorf("read timeout must be positive: %d", c.ReadTimeoutSecs)
	}
	if c.WriteTimeoutSecs < 1 {
		return fmt.Errorf("write timeout must be positive: %d", c.WriteTimeoutSecs)
	}
	if c.SweepIntervalSecs < 1 {
		return fmt.Errorf("sweep interval must be positive: %d", c.SweepIntervalSecs)
	}
	if c.RehashSteps < 1 {
		return fmt.Errorf("rehash steps must be positive: %d", c.RehashSteps)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// Validate checks that a ClientConfig's values are usable.
func (c *ClientConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server address must be specified")
	}
	if !strings.Contains(c.Addr, ":") {
		return fmt.Errorf("invalid server address format: %s", c.Addr)
	}
	if c.MaxConns < 1 {
		return fmt.Errorf("max connections must be positive: %d", c.MaxConns)
	}
	if c.ConnTimeoutSecs < 1 {
		return fmt.Errorf("connection timeout must be positive: %d", c.ConnTimeoutSecs)
	}
	if c.ReadTimeoutSecs < 1 {
		return fmt.Errorf("read timeout must be positive: %d", c.ReadTimeoutSecs)
	}
	if c.WriteTimeoutSecs < 1 {
		return fmt.Errorf("write timeout must be positive: %d", c.WriteTimeoutSecs)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be non-negative: %d", c.RetryAttempts)
	}

	return nil
}
