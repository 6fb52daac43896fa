// Package tokenmeta supplies display metadata for token mints. Lookups that
// fail fall back to a generic placeholder so a missing registry entry never
// fails pool resolution.
package tokenmeta

import (
	"context"
	"fmt"
	"sync"
)

// Metadata is the display information attached to a mint.
type Metadata struct {
	Symbol   string `yaml:"symbol"`
	Name     string `yaml:"name"`
	Decimals uint8  `yaml:"decimals"`
}

// Provider is the token metadata collaborator.
type Provider interface {
	// TokenMetadata returns display metadata for a mint. Callers absorb
	// failures with Fallback rather than aborting.
	TokenMetadata(ctx context.Context, mint string) (*Metadata, error)
}

// Fallback is the metadata substituted when a lookup fails.
func Fallback() *Metadata {
	return &Metadata{Symbol: "TOKEN", Name: "Unknown Token", Decimals: 9}
}

// Lookup fetches metadata through the provider and substitutes the fallback
// on any failure, including a nil provider.
func Lookup(ctx context.Context, p Provider, mint string) *Metadata {
	if p == nil {
		return Fallback()
	}
	md, err := p.TokenMetadata(ctx, mint)
	if err != nil || md == nil {
		return Fallback()
	}
	return md
}

// StaticProvider serves metadata from an in-memory table of well-known
// mints, optionally extended from a YAML file.
type StaticProvider struct {
	mu    sync.RWMutex
	mints map[string]Metadata
}

// NewStaticProvider seeds the provider with the common Solana mints.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		mints: map[string]Metadata{
			"So11111111111111111111111111111111111111112": {Symbol: "SOL", Name: "Wrapped SOL", Decimals: 9},
			"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": {Symbol: "USDC", Name: "USD Coin", Decimals: 6},
			"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": {Symbol: "USDT", Name: "USDT", Decimals: 6},
			"7vfCXTUXx5WJV5JADk17DUJ4ksgau7utNKj4b963voxs": {Symbol: "ORCA", Name: "Orca", Decimals: 6},
		},
	}
}

// TokenMetadata implements Provider.
func (p *StaticProvider) TokenMetadata(_ context.Context, mint string) (*Metadata, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	md, ok := p.mints[mint]
	if !ok {
		return nil, fmt.Errorf("no metadata for mint %s", mint)
	}
	return &md, nil
}

// Add registers or replaces metadata for a mint.
func (p *StaticProvider) Add(mint string, md Metadata) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mints[mint] = md
}
