package tokenmeta

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLookupFallsBack(t *testing.T) {
	ctx := context.Background()

	if md := Lookup(ctx, nil, "anyMint"); md.Symbol != "TOKEN" || md.Name != "Unknown Token" {
		t.Fatalf("nil provider should fall back, got %+v", md)
	}

	p := NewStaticProvider()
	if md := Lookup(ctx, p, "unregisteredMint"); md.Symbol != "TOKEN" {
		t.Fatalf("missing entry should fall back, got %+v", md)
	}
	if md := Lookup(ctx, p, "So11111111111111111111111111111111111111112"); md.Symbol != "SOL" || md.Decimals != 9 {
		t.Fatalf("seeded SOL entry expected, got %+v", md)
	}
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.yaml")
	yaml := `tokens:
  DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263:
    symbol: BONK
    name: Bonk
    decimals: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p := NewStaticProvider()
	if err := LoadTable(p, path); err != nil {
		t.Fatalf("LoadTable returned error: %v", err)
	}

	md, err := p.TokenMetadata(context.Background(), "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")
	if err != nil {
		t.Fatalf("TokenMetadata returned error: %v", err)
	}
	if md.Symbol != "BONK" || md.Decimals != 5 {
		t.Fatalf("unexpected metadata %+v", md)
	}
}

func TestLoadTableRejectsMissingSymbol(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.yaml")
	yaml := `tokens:
  someMint:
    name: Nameless
    decimals: 6
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := LoadTable(NewStaticProvider(), path); err == nil {
		t.Fatal("expected an error for a token without a symbol")
	}
}
