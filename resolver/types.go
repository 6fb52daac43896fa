package resolver

import "fmt"

// LPNotApplicable is the sentinel emitted for protocols that carry no LP
// token. Only the constant-product family populates the LP fields.
const LPNotApplicable = "not-applicable"

// Reserves holds the raw integer reserve amounts for both sides plus each
// side's decimal precision. Computed per request, never cached.
type Reserves struct {
	AmountA   uint64
	AmountB   uint64
	DecimalsA uint8
	DecimalsB uint8
}

// AdjustedPoolReserves is the unified output record. Its shape is identical
// regardless of source protocol; no protocol-specific field names leak
// through it.
type AdjustedPoolReserves struct {
	Protocol string `json:"protocol"`
	Address  string `json:"address"`

	MintA   string `json:"mint_a"`
	MintB   string `json:"mint_b"`
	SymbolA string `json:"symbol_a"`
	SymbolB string `json:"symbol_b"`

	// AmountA/B are human-scaled: raw reserve divided by 10^decimals.
	AmountA   float64 `json:"amount_a"`
	AmountB   float64 `json:"amount_b"`
	DecimalsA uint8   `json:"decimals_a"`
	DecimalsB uint8   `json:"decimals_b"`

	// Fee is a display descriptor such as "2.50%".
	Fee string `json:"fee"`

	// LPMint and LPSupply describe the LP token, or LPNotApplicable / zero
	// for protocols without one.
	LPMint   string `json:"lp_mint"`
	LPSupply uint64 `json:"lp_supply"`

	// Status is the rendered health verdict, e.g. "warning: zero reserve".
	Status string   `json:"status"`
	Issues []string `json:"issues,omitempty"`

	// ValueUSD is present only when the pricing collaborator succeeded.
	ValueUSD *float64 `json:"value_usd,omitempty"`
}

// StageError annotates a resolution failure with the pipeline stage and the
// account being resolved.
type StageError struct {
	Stage   string
	Address string
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Address, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
