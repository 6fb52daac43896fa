package resolver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rexbrahh/pool-resolver/decoder/clmm"
	"github.com/rexbrahh/pool-resolver/decoder/common"
	"github.com/rexbrahh/pool-resolver/decoder/meteora"
	"github.com/rexbrahh/pool-resolver/decoder/orca_whirlpool"
	"github.com/rexbrahh/pool-resolver/decoder/pumpfun"
	"github.com/rexbrahh/pool-resolver/decoder/raydium"
)

// resolveReserves fills in the reserve data a decoded record cannot carry
// itself. Vault-based protocols need four ledger lookups; the bonding curve
// already holds its counters and resolves without I/O.
func (r *Resolver) resolveReserves(ctx context.Context, acct common.Account) (*Reserves, error) {
	switch s := acct.(type) {
	case *raydium.PoolState:
		return r.fetchVaultReserves(ctx, s.BaseVault, s.QuoteVault, s.BaseMint, s.QuoteMint)
	case *clmm.PoolState:
		return r.fetchVaultReserves(ctx, s.VaultA, s.VaultB, s.MintA, s.MintB)
	case *meteora.PairState:
		return r.fetchVaultReserves(ctx, s.ReserveX, s.ReserveY, s.TokenXMint, s.TokenYMint)
	case *orca_whirlpool.PoolState:
		return r.fetchVaultReserves(ctx, s.TokenVaultA, s.TokenVaultB, s.TokenMintA, s.TokenMintB)
	case *pumpfun.CurveState:
		// Self-contained: real reserves from the record, protocol-fixed
		// decimals, no external lookups.
		return &Reserves{
			AmountA:   s.RealSolReserves,
			AmountB:   s.RealTokenReserves,
			DecimalsA: common.NativeDecimals,
			DecimalsB: common.BondingCurveTokenDecimals,
		}, nil
	default:
		return nil, fmt.Errorf("no reserve strategy for protocol %q", acct.Protocol())
	}
}

// fetchVaultReserves issues the four independent lookups concurrently, one
// fixed fan-out per resolution, and waits for all of them. Any single
// failure fails the whole resolution, naming the vault or mint that failed.
func (r *Resolver) fetchVaultReserves(ctx context.Context, vaultA, vaultB, mintA, mintB string) (*Reserves, error) {
	var res Reserves
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		amount, err := r.ledger.FetchTokenBalance(ctx, vaultA)
		if err != nil {
			return fmt.Errorf("balance of vault A %s: %w", vaultA, err)
		}
		res.AmountA = amount
		return nil
	})
	g.Go(func() error {
		amount, err := r.ledger.FetchTokenBalance(ctx, vaultB)
		if err != nil {
			return fmt.Errorf("balance of vault B %s: %w", vaultB, err)
		}
		res.AmountB = amount
		return nil
	})
	g.Go(func() error {
		dec, err := r.ledger.FetchMintDecimals(ctx, mintA)
		if err != nil {
			return fmt.Errorf("decimals of mint A %s: %w", mintA, err)
		}
		res.DecimalsA = dec
		return nil
	})
	g.Go(func() error {
		dec, err := r.ledger.FetchMintDecimals(ctx, mintB)
		if err != nil {
			return fmt.Errorf("decimals of mint B %s: %w", mintB, err)
		}
		res.DecimalsB = dec
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}
