package main

import (
	"fmt"
	"os"
	"strconv"
)

const (
	envRPCEndpoint = "RPC_ENDPOINT"
	envAPIAddr     = "API_ADDR"
	envMetricsAddr = "METRICS_ADDR"
	envTokensPath  = "TOKENS_YAML_PATH"
	envSolUSD      = "SOL_USD_QUOTE"
)

// Config captures the runtime parameters for the resolver service.
type Config struct {
	// RPCEndpoint is the Solana JSON-RPC URL backing the ledger reader.
	RPCEndpoint string
	// APIAddr is the HTTP API listen address.
	APIAddr string
	// MetricsAddr is the prometheus listen address.
	MetricsAddr string
	// TokensPath optionally extends the token metadata table from YAML.
	TokensPath string
	// SolUSD seeds the static pricer's SOL quote; zero disables it.
	SolUSD float64
}

// DefaultConfig initialises Config with defaults for optional fields.
func DefaultConfig() Config {
	return Config{
		APIAddr:     ":8080",
		MetricsAddr: ":9090",
	}
}

// Validate ensures required fields are populated.
func (c Config) Validate() error {
	if c.RPCEndpoint == "" {
		return fmt.Errorf("%s is required", envRPCEndpoint)
	}
	if c.APIAddr == "" {
		return fmt.Errorf("API address cannot be empty")
	}
	return nil
}

// FromEnv constructs a Config from environment variables.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.RPCEndpoint = os.Getenv(envRPCEndpoint)
	if v := os.Getenv(envAPIAddr); v != "" {
		cfg.APIAddr = v
	}
	if v := os.Getenv(envMetricsAddr); v != "" {
		cfg.MetricsAddr = v
	}
	cfg.TokensPath = os.Getenv(envTokensPath)
	if v := os.Getenv(envSolUSD); v != "" {
		quote, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", envSolUSD, err)
		}
		cfg.SolUSD = quote
	}
	return cfg, cfg.Validate()
}
