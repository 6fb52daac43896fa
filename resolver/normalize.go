package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/rexbrahh/pool-resolver/decoder/common"
	"github.com/rexbrahh/pool-resolver/decoder/raydium"
	"github.com/rexbrahh/pool-resolver/health"
	"github.com/rexbrahh/pool-resolver/tokenmeta"
)

// normalize maps a protocol-specific record, its resolved reserves, and the
// health verdict onto the unified output shape. Metadata and pricing
// failures degrade to the fallback symbol and an omitted value; they never
// fail the call.
func (r *Resolver) normalize(ctx context.Context, address string, acct common.Account, res *Reserves, verdict health.Verdict) *AdjustedPoolReserves {
	mintA, mintB := acct.Mints()

	// The two symbol lookups are independent network reads; dispatch them
	// together and wait for both.
	var metaA, metaB *tokenmeta.Metadata
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		metaA = tokenmeta.Lookup(ctx, r.meta, mintA)
	}()
	go func() {
		defer wg.Done()
		metaB = tokenmeta.Lookup(ctx, r.meta, mintB)
	}()
	wg.Wait()

	out := &AdjustedPoolReserves{
		Protocol:  string(acct.Protocol()),
		Address:   address,
		MintA:     mintA,
		MintB:     mintB,
		SymbolA:   metaA.Symbol,
		SymbolB:   metaB.Symbol,
		AmountA:   common.ScaleAmount(res.AmountA, res.DecimalsA),
		AmountB:   common.ScaleAmount(res.AmountB, res.DecimalsB),
		DecimalsA: res.DecimalsA,
		DecimalsB: res.DecimalsB,
		Fee:       feeDescriptor(acct.FeeBps()),
		LPMint:    LPNotApplicable,
		Status:    verdict.String(),
	}
	for _, issue := range verdict.Issues {
		out.Issues = append(out.Issues, string(issue))
	}

	// Only the constant-product family carries an LP token.
	if s, ok := acct.(*raydium.PoolState); ok {
		out.LPMint = s.LPMint
		out.LPSupply = s.LPSupply
	}

	if r.pricer != nil {
		if value, err := r.pricer.PriceInUSD(ctx, out.SymbolA, out.AmountA, out.SymbolB, out.AmountB); err == nil {
			out.ValueUSD = &value
		}
	}
	return out
}

// feeDescriptor renders a basis-point fee as display text, e.g. 250 -> "2.50%".
func feeDescriptor(bps uint32) string {
	return fmt.Sprintf("%.2f%%", float64(bps)/100)
}
