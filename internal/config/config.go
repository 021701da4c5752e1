package config

import (
	"fmt"
	"time"

	"github.com/solagent-io/solagent/internal/chain"
)

// Config represents the main solagent configuration. It is read once at
// startup and treated as immutable afterwards.
type Config struct {
	// Solana cluster to probe, one of chain.Networks()
	Network string `json:"network" mapstructure:"network"`

	// RPC endpoint override; empty derives the endpoint from Network
	RPCURL string `json:"rpc_url" mapstructure:"rpc_url"`

	// Per-call RPC timeout in seconds
	RPCTimeoutSeconds int `json:"rpc_timeout_seconds" mapstructure:"rpc_timeout_seconds"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Metrics
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file" mapstructure:"file"`
}

// MetricsConfig holds the Prometheus listener configuration. An empty Addr
// disables the listener.
type MetricsConfig struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Network:           string(chain.MainnetBeta),
		RPCTimeoutSeconds: 10,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for values the process cannot start with.
func (c *Config) Validate() error {
	if !chain.Network(c.Network).Valid() {
		return fmt.Errorf("unknown network %q (supported: %v)", c.Network, chain.Networks())
	}
	if c.RPCTimeoutSeconds < 0 {
		return fmt.Errorf("rpc_timeout_seconds must not be negative")
	}
	return nil
}

// Endpoint returns the RPC endpoint to use: the explicit override when set,
// otherwise the default endpoint of the selected network.
func (c *Config) Endpoint() string {
	if c.RPCURL != "" {
		return c.RPCURL
	}
	return chain.Network(c.Network).Endpoint()
}

// RPCTimeout returns the per-call RPC timeout.
func (c *Config) RPCTimeout() time.Duration {
	return time.Duration(c.RPCTimeoutSeconds) * time.Second
}
