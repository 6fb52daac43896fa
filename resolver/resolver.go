// Package resolver turns a pool address into one normalized reserve/health
// record. The pipeline per resolution is strict: decode, resolve reserves,
// assess health, normalize. Each resolution owns its bytes and derived
// records, so concurrent resolutions share nothing and nothing is cached.
package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/rexbrahh/pool-resolver/decoder"
	"github.com/rexbrahh/pool-resolver/decoder/clmm"
	"github.com/rexbrahh/pool-resolver/decoder/common"
	"github.com/rexbrahh/pool-resolver/decoder/meteora"
	"github.com/rexbrahh/pool-resolver/decoder/orca_whirlpool"
	"github.com/rexbrahh/pool-resolver/decoder/pumpfun"
	"github.com/rexbrahh/pool-resolver/decoder/raydium"
	"github.com/rexbrahh/pool-resolver/health"
	"github.com/rexbrahh/pool-resolver/ledger"
	"github.com/rexbrahh/pool-resolver/observability"
	"github.com/rexbrahh/pool-resolver/pricing"
	"github.com/rexbrahh/pool-resolver/tokenmeta"
)

// Resolver is the single public entry point into the core. It holds only
// collaborators; per-request state never outlives a call.
type Resolver struct {
	ledger ledger.Reader
	meta   tokenmeta.Provider
	pricer pricing.Pricer
}

// New wires a resolver from its collaborators. meta and pricer may be nil;
// their lookups then degrade to the fallback metadata and an omitted value.
func New(reader ledger.Reader, meta tokenmeta.Provider, pricer pricing.Pricer) *Resolver {
	return &Resolver{ledger: reader, meta: meta, pricer: pricer}
}

// ResolvePool fetches, classifies, decodes, and normalizes the pool at
// address. Callers receive either a complete record or an error naming the
// failing stage and account. Nothing is retried here; collaborator timeouts
// are the ledger reader's concern.
func (r *Resolver) ResolvePool(ctx context.Context, address string) (*AdjustedPoolReserves, error) {
	acctRaw, err := r.ledger.FetchAccount(ctx, address)
	if err != nil {
		observability.StageErrors.WithLabelValues(observability.StageDecode).Inc()
		return nil, &StageError{Stage: "fetch", Address: address, Err: err}
	}

	start := time.Now()
	state, det, err := decoder.DecodeAccount(acctRaw.Owner, acctRaw.Data)
	if err != nil {
		if det.Protocol == common.ProtocolUnknown {
			observability.UnsupportedAccounts.Inc()
		}
		observability.StageErrors.WithLabelValues(observability.StageDecode).Inc()
		return nil, &StageError{Stage: "decode", Address: address, Err: err}
	}
	protocol := string(state.Protocol())
	observability.ObserveStage(observability.StageDecode, protocol, start)

	start = time.Now()
	reserves, err := r.resolveReserves(ctx, state)
	if err != nil {
		observability.StageErrors.WithLabelValues(observability.StageResolve).Inc()
		return nil, &StageError{Stage: "resolve", Address: address, Err: err}
	}
	observability.ObserveStage(observability.StageResolve, protocol, start)

	start = time.Now()
	verdict, err := assess(state, reserves)
	if err != nil {
		observability.StageErrors.WithLabelValues(observability.StageAssess).Inc()
		return nil, &StageError{Stage: "assess", Address: address, Err: err}
	}
	observability.ObserveStage(observability.StageAssess, protocol, start)

	start = time.Now()
	record := r.normalize(ctx, address, state, reserves, verdict)
	observability.ObserveStage(observability.StageNormalize, protocol, start)

	observability.PoolsResolved.WithLabelValues(protocol).Inc()
	return record, nil
}

// assess dispatches to the protocol's health assessor.
func assess(acct common.Account, res *Reserves) (health.Verdict, error) {
	switch s := acct.(type) {
	case *raydium.PoolState:
		return raydium.AssessHealth(s, res.AmountA, res.AmountB), nil
	case *clmm.PoolState:
		return clmm.AssessHealth(s, res.AmountA, res.AmountB), nil
	case *meteora.PairState:
		return meteora.AssessHealth(s, res.AmountA, res.AmountB), nil
	case *orca_whirlpool.PoolState:
		return orca_whirlpool.AssessHealth(s, res.AmountA, res.AmountB), nil
	case *pumpfun.CurveState:
		return pumpfun.AssessHealth(s, res.AmountA, res.AmountB), nil
	default:
		return health.Verdict{}, fmt.Errorf("no health assessor for protocol %q", acct.Protocol())
	}
}
