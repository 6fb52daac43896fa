package main

import "testing"

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing RPC endpoint should fail validation")
	}
	cfg.RPCEndpoint = "https://api.mainnet-beta.solana.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(envRPCEndpoint, "http://localhost:8899")
	t.Setenv(envAPIAddr, ":9000")
	t.Setenv(envSolUSD, "145.5")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}
	if cfg.RPCEndpoint != "http://localhost:8899" {
		t.Fatalf("unexpected endpoint %s", cfg.RPCEndpoint)
	}
	if cfg.APIAddr != ":9000" {
		t.Fatalf("unexpected api addr %s", cfg.APIAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Fatalf("default metrics addr expected, got %s", cfg.MetricsAddr)
	}
	if cfg.SolUSD != 145.5 {
		t.Fatalf("unexpected sol quote %v", cfg.SolUSD)
	}
}

func TestFromEnvRejectsBadQuote(t *testing.T) {
	t.Setenv(envRPCEndpoint, "http://localhost:8899")
	t.Setenv(envSolUSD, "not-a-number")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected an error for a malformed quote")
	}
}
