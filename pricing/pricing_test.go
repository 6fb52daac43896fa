package pricing

import (
	"context"
	"testing"
)

func TestStaticPricer(t *testing.T) {
	p := NewStaticPricer(map[string]float64{"SOL": 150, "USDC": 1})
	ctx := context.Background()

	got, err := p.PriceInUSD(ctx, "SOL", 2, "USDC", 300)
	if err != nil {
		t.Fatalf("PriceInUSD returned error: %v", err)
	}
	if got != 600 {
		t.Fatalf("2 SOL + 300 USDC should be $600, got %v", got)
	}

	// one unquoted side contributes nothing
	got, err = p.PriceInUSD(ctx, "SOL", 1, "TOKEN", 1_000_000)
	if err != nil {
		t.Fatalf("PriceInUSD returned error: %v", err)
	}
	if got != 150 {
		t.Fatalf("unquoted side must contribute zero, got %v", got)
	}

	if _, err := p.PriceInUSD(ctx, "FOO", 1, "BAR", 1); err == nil {
		t.Fatal("expected an error when neither symbol is quoted")
	}
}
