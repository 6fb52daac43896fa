// Package ledger abstracts the on-chain reads the resolver depends on:
// raw account snapshots, token vault balances, and mint decimals.
package ledger

import (
	"context"
	"errors"
)

// ErrAccountNotFound is returned when the requested address has no account.
var ErrAccountNotFound = errors.New("account not found")

// Account is a raw on-chain account snapshot: immutable bytes plus the
// owning program. Lifecycle is per-request; nothing caches it.
type Account struct {
	Address string
	Owner   string
	Data    []byte
}

// Length reports the account data size in bytes.
func (a *Account) Length() int { return len(a.Data) }

// Reader is the ledger collaborator. Implementations own timeouts and
// transport concerns; callers treat any failure as a propagated error and
// never retry at this layer.
type Reader interface {
	// FetchAccount returns the raw account at address, or ErrAccountNotFound.
	FetchAccount(ctx context.Context, address string) (*Account, error)
	// FetchTokenBalance returns the raw token amount held by a vault account.
	FetchTokenBalance(ctx context.Context, vault string) (uint64, error)
	// FetchMintDecimals returns the decimal precision of a token mint.
	FetchMintDecimals(ctx context.Context, mint string) (uint8, error)
}
