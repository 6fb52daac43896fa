// Package pricing abstracts USD valuation of a pool's two sides. Failure to
// price is expected and non-fatal; callers simply omit the value.
package pricing

import (
	"context"
	"fmt"
)

// Pricer values a pool's two human-scaled amounts in USD.
type Pricer interface {
	PriceInUSD(ctx context.Context, symbolA string, amountA float64, symbolB string, amountB float64) (float64, error)
}

// StaticPricer quotes from a fixed symbol→USD table. Sides with no quote
// contribute nothing; when neither side is quoted the pricer fails so the
// caller omits the value instead of reporting zero.
type StaticPricer struct {
	Quotes map[string]float64
}

// NewStaticPricer builds a pricer over the given quote table.
func NewStaticPricer(quotes map[string]float64) *StaticPricer {
	return &StaticPricer{Quotes: quotes}
}

// PriceInUSD implements Pricer.
func (p *StaticPricer) PriceInUSD(_ context.Context, symbolA string, amountA float64, symbolB string, amountB float64) (float64, error) {
	quoteA, okA := p.Quotes[symbolA]
	quoteB, okB := p.Quotes[symbolB]
	if !okA && !okB {
		return 0, fmt.Errorf("no USD quote for %s or %s", symbolA, symbolB)
	}
	return amountA*quoteA + amountB*quoteB, nil
}
