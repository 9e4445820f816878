package config

import (
	"time"

	coretypes "github.com/projecteru2/core/types"
)

const (
	// DefaultSocketPath is where the daemon listens unless --socket says
	// otherwise.
	DefaultSocketPath = "/var/run/xenopsd/xenopsd.sock"
	// DefaultConnectTimeoutSeconds bounds the single connection attempt to
	// the control socket. Calls in flight are never timed out client-side.
	DefaultConnectTimeoutSeconds = 5
)

// Config holds the global options shared read-only by every subcommand.
// It is built once at startup and never mutated afterwards.
type Config struct {
	// SocketPath is the daemon's control socket.
	// Flag: --socket. Default: /var/run/xenopsd/xenopsd.sock.
	SocketPath string `json:"socket_path" mapstructure:"socket_path"`
	// ConnectTimeoutSeconds is how long one dial of the control socket may
	// take before the daemon is reported unreachable.
	// Default: 5.
	ConnectTimeoutSeconds int `json:"connect_timeout_seconds" mapstructure:"connect_timeout_seconds"`
	// Debug enables debug-level logging. Flag: --debug.
	Debug bool `json:"debug" mapstructure:"debug"`
	// Verbose enables info-level logging. Flag: -v/--verbose.
	Verbose bool `json:"verbose" mapstructure:"verbose"`
	// Log configuration, uses eru core's ServerLogConfig.
	Log coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		SocketPath:            DefaultSocketPath,
		ConnectTimeoutSeconds: DefaultConnectTimeoutSeconds,
		Log:                   coretypes.ServerLogConfig{Level: "warn"},
	}
}

// ApplyDefaults fills in zero values left behind by flag/config merging.
func (c *Config) ApplyDefaults() {
	if c.SocketPath == "" {
		c.SocketPath = DefaultSocketPath
	}
	if c.ConnectTimeoutSeconds <= 0 {
		c.ConnectTimeoutSeconds = DefaultConnectTimeoutSeconds
	}
	switch {
	case c.Debug:
		c.Log.Level = "debug"
	case c.Verbose:
		c.Log.Level = "info"
	case c.Log.Level == "":
		c.Log.Level = "warn"
	}
}

// ConnectTimeout returns the dial bound as a duration.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}
