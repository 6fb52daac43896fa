package resolver

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/mr-tron/base58"

	"github.com/rexbrahh/pool-resolver/decoder"
	"github.com/rexbrahh/pool-resolver/decoder/common"
	"github.com/rexbrahh/pool-resolver/decoder/pumpfun"
	"github.com/rexbrahh/pool-resolver/decoder/raydium"
	"github.com/rexbrahh/pool-resolver/ledger"
	"github.com/rexbrahh/pool-resolver/pricing"
	"github.com/rexbrahh/pool-resolver/tokenmeta"
)

// fakeReader serves canned accounts, balances, and decimals while counting
// every lookup. When barrier is set, each balance/decimals call parks until
// all expected callers have arrived, so a sequential fan-out deadlocks the
// test instead of passing quietly.
type fakeReader struct {
	accounts map[string]*ledger.Account
	balances map[string]uint64
	decimals map[string]uint8
	failures map[string]error

	barrier *sync.WaitGroup

	mu            sync.Mutex
	balanceCalls  int
	decimalsCalls int
	accountCalls  int
}

func (f *fakeReader) arrive() {
	if f.barrier != nil {
		f.barrier.Done()
		f.barrier.Wait()
	}
}

func (f *fakeReader) FetchAccount(_ context.Context, address string) (*ledger.Account, error) {
	f.mu.Lock()
	f.accountCalls++
	f.mu.Unlock()
	acct, ok := f.accounts[address]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	return acct, nil
}

func (f *fakeReader) FetchTokenBalance(_ context.Context, vault string) (uint64, error) {
	f.mu.Lock()
	f.balanceCalls++
	f.mu.Unlock()
	f.arrive()
	if err, ok := f.failures[vault]; ok {
		return 0, err
	}
	return f.balances[vault], nil
}

func (f *fakeReader) FetchMintDecimals(_ context.Context, mint string) (uint8, error) {
	f.mu.Lock()
	f.decimalsCalls++
	f.mu.Unlock()
	f.arrive()
	if err, ok := f.failures[mint]; ok {
		return 0, err
	}
	return f.decimals[mint], nil
}

func seededAddr(seed byte) string {
	b := make([]byte, common.AddressLen)
	for i := range b {
		b[i] = seed
	}
	return base58.Encode(b)
}

// raydiumPool assembles a constant-product account buffer around the given
// addresses. Offsets mirror the published layout.
func raydiumPool(baseMint, quoteMint, baseVault, quoteVault, lpMint string, lpSupply uint64) []byte {
	buf := make([]byte, raydium.MinAccountLen)
	copy(buf, raydium.Discriminator[:])
	buf[8] = 1 // status
	put := func(offset int, addr string) {
		raw, _ := base58.Decode(addr)
		copy(buf[offset:], raw)
	}
	put(10, baseMint)
	put(42, quoteMint)
	put(74, baseVault)
	put(106, quoteVault)
	put(138, lpMint)
	binary.LittleEndian.PutUint64(buf[170:], lpSupply)
	binary.LittleEndian.PutUint64(buf[178:], 2500)    // fee numerator
	binary.LittleEndian.PutUint64(buf[186:], 100_000) // fee denominator
	return buf
}

// bondingCurve assembles a bonding-curve account buffer with the given real
// reserve counters.
func bondingCurve(mint string, realSol, realToken uint64, complete bool) []byte {
	buf := make([]byte, 81)
	copy(buf, pumpfun.Discriminator[:])
	raw, _ := base58.Decode(mint)
	copy(buf[8:], raw)
	binary.LittleEndian.PutUint64(buf[56:], realToken)
	binary.LittleEndian.PutUint64(buf[64:], realSol)
	if complete {
		buf[80] = 1
	}
	return buf
}

func TestResolvePoolVaultBased(t *testing.T) {
	poolAddr := seededAddr(0x01)
	baseMint := common.NativeMint
	quoteMint := seededAddr(0x12)
	baseVault := seededAddr(0x13)
	quoteVault := seededAddr(0x14)
	lpMint := seededAddr(0x15)

	reader := &fakeReader{
		accounts: map[string]*ledger.Account{
			poolAddr: {
				Address: poolAddr,
				Owner:   raydium.ProgramID,
				Data:    raydiumPool(baseMint, quoteMint, baseVault, quoteVault, lpMint, 42_000),
			},
		},
		balances: map[string]uint64{baseVault: 12_500_000_000, quoteVault: 3_000_000},
		decimals: map[string]uint8{baseMint: 9, quoteMint: 6},
	}

	r := New(reader, tokenmeta.NewStaticProvider(), nil)
	rec, err := r.ResolvePool(context.Background(), poolAddr)
	if err != nil {
		t.Fatalf("ResolvePool returned error: %v", err)
	}

	if rec.Protocol != string(common.ProtocolRaydium) {
		t.Fatalf("unexpected protocol %s", rec.Protocol)
	}
	if rec.Address != poolAddr {
		t.Fatalf("unexpected address %s", rec.Address)
	}
	if rec.AmountA != 12.5 {
		t.Fatalf("12500000000 raw at 9 decimals should scale to 12.5, got %v", rec.AmountA)
	}
	if rec.AmountB != 3.0 {
		t.Fatalf("3000000 raw at 6 decimals should scale to 3.0, got %v", rec.AmountB)
	}
	if rec.DecimalsA != 9 || rec.DecimalsB != 6 {
		t.Fatalf("unexpected decimals %d/%d", rec.DecimalsA, rec.DecimalsB)
	}
	if rec.SymbolA != "SOL" {
		t.Fatalf("native mint should resolve to SOL, got %s", rec.SymbolA)
	}
	if rec.SymbolB != "TOKEN" {
		t.Fatalf("unregistered mint should fall back to TOKEN, got %s", rec.SymbolB)
	}
	if rec.Fee != "2.50%" {
		t.Fatalf("unexpected fee descriptor %q", rec.Fee)
	}
	if rec.LPMint != lpMint || rec.LPSupply != 42_000 {
		t.Fatalf("unexpected lp token %s supply=%d", rec.LPMint, rec.LPSupply)
	}
	if rec.Status != "healthy" {
		t.Fatalf("unexpected status %q", rec.Status)
	}
	if rec.ValueUSD != nil {
		t.Fatal("no pricer was configured, value must be omitted")
	}
}

func TestResolvePoolFanOut(t *testing.T) {
	poolAddr := seededAddr(0x02)
	baseVault := seededAddr(0x23)
	quoteVault := seededAddr(0x24)
	baseMint := seededAddr(0x21)
	quoteMint := seededAddr(0x22)

	var barrier sync.WaitGroup
	barrier.Add(4)
	reader := &fakeReader{
		accounts: map[string]*ledger.Account{
			poolAddr: {
				Address: poolAddr,
				Owner:   raydium.ProgramID,
				Data:    raydiumPool(baseMint, quoteMint, baseVault, quoteVault, seededAddr(0x25), 1),
			},
		},
		balances: map[string]uint64{baseVault: 1, quoteVault: 1},
		decimals: map[string]uint8{baseMint: 9, quoteMint: 9},
		barrier:  &barrier,
	}

	r := New(reader, nil, nil)
	if _, err := r.ResolvePool(context.Background(), poolAddr); err != nil {
		t.Fatalf("ResolvePool returned error: %v", err)
	}

	if reader.balanceCalls != 2 {
		t.Fatalf("expected exactly 2 balance lookups, got %d", reader.balanceCalls)
	}
	if reader.decimalsCalls != 2 {
		t.Fatalf("expected exactly 2 decimals lookups, got %d", reader.decimalsCalls)
	}
}

func TestResolvePoolVaultLookupFailure(t *testing.T) {
	poolAddr := seededAddr(0x03)
	baseVault := seededAddr(0x33)
	quoteVault := seededAddr(0x34)
	baseMint := seededAddr(0x31)
	quoteMint := seededAddr(0x32)

	reader := &fakeReader{
		accounts: map[string]*ledger.Account{
			poolAddr: {
				Address: poolAddr,
				Owner:   raydium.ProgramID,
				Data:    raydiumPool(baseMint, quoteMint, baseVault, quoteVault, seededAddr(0x35), 1),
			},
		},
		balances: map[string]uint64{baseVault: 1},
		decimals: map[string]uint8{baseMint: 9, quoteMint: 9},
		failures: map[string]error{quoteVault: fmt.Errorf("rpc timeout")},
	}

	r := New(reader, nil, nil)
	rec, err := r.ResolvePool(context.Background(), poolAddr)
	if rec != nil {
		t.Fatal("a failed lookup must fail the whole resolution")
	}

	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StageError, got %T", err)
	}
	if se.Stage != "resolve" {
		t.Fatalf("expected resolve stage, got %s", se.Stage)
	}
	if !strings.Contains(err.Error(), "balance of vault B "+quoteVault) {
		t.Fatalf("error should name the failing vault: %v", err)
	}
}

func TestResolvePoolBondingCurve(t *testing.T) {
	poolAddr := seededAddr(0x04)
	mint := seededAddr(0x42)

	reader := &fakeReader{
		accounts: map[string]*ledger.Account{
			poolAddr: {
				Address: poolAddr,
				Owner:   pumpfun.ProgramID,
				Data:    bondingCurve(mint, 5_000_000_000, 750_000_000_000, false),
			},
		},
	}

	r := New(reader, tokenmeta.NewStaticProvider(), nil)
	rec, err := r.ResolvePool(context.Background(), poolAddr)
	if err != nil {
		t.Fatalf("ResolvePool returned error: %v", err)
	}

	// reserves come out of the account itself, no extra ledger traffic
	if reader.balanceCalls != 0 || reader.decimalsCalls != 0 {
		t.Fatalf("bonding curve must not hit the ledger: %d balance, %d decimals calls",
			reader.balanceCalls, reader.decimalsCalls)
	}
	if rec.AmountA != 5.0 {
		t.Fatalf("5000000000 raw SOL at 9 decimals should scale to 5.0, got %v", rec.AmountA)
	}
	if rec.AmountB != 750_000.0 {
		t.Fatalf("750000000000 raw at 6 decimals should scale to 750000, got %v", rec.AmountB)
	}
	if rec.MintA != common.NativeMint || rec.MintB != mint {
		t.Fatalf("unexpected mints %s/%s", rec.MintA, rec.MintB)
	}
	if rec.LPMint != LPNotApplicable || rec.LPSupply != 0 {
		t.Fatalf("bonding curve carries no LP token, got %s supply=%d", rec.LPMint, rec.LPSupply)
	}
	if rec.Fee != "1.00%" {
		t.Fatalf("unexpected fee descriptor %q", rec.Fee)
	}
}

func TestResolvePoolMigratedCurveStaysHealthy(t *testing.T) {
	poolAddr := seededAddr(0x05)
	reader := &fakeReader{
		accounts: map[string]*ledger.Account{
			poolAddr: {
				Address: poolAddr,
				Owner:   pumpfun.ProgramID,
				Data:    bondingCurve(seededAddr(0x52), 1_000_000_000, 1_000_000, true),
			},
		},
	}

	r := New(reader, nil, nil)
	rec, err := r.ResolvePool(context.Background(), poolAddr)
	if err != nil {
		t.Fatalf("ResolvePool returned error: %v", err)
	}
	if rec.Status != "healthy" {
		t.Fatalf("migration alone should stay healthy, got %q", rec.Status)
	}
	if len(rec.Issues) != 1 || rec.Issues[0] != "migrated" {
		t.Fatalf("migrated issue should still be listed, got %v", rec.Issues)
	}
}

func TestResolvePoolNotFound(t *testing.T) {
	reader := &fakeReader{accounts: map[string]*ledger.Account{}}
	r := New(reader, nil, nil)

	_, err := r.ResolvePool(context.Background(), seededAddr(0x06))
	if !errors.Is(err, ledger.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	var se *StageError
	if !errors.As(err, &se) || se.Stage != "fetch" {
		t.Fatalf("expected fetch stage error, got %v", err)
	}
}

func TestResolvePoolUnsupported(t *testing.T) {
	poolAddr := seededAddr(0x07)
	reader := &fakeReader{
		accounts: map[string]*ledger.Account{
			poolAddr: {Address: poolAddr, Owner: seededAddr(0x77), Data: make([]byte, 96)},
		},
	}

	r := New(reader, nil, nil)
	_, err := r.ResolvePool(context.Background(), poolAddr)
	if !errors.Is(err, decoder.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	var se *StageError
	if !errors.As(err, &se) || se.Stage != "decode" {
		t.Fatalf("expected decode stage error, got %v", err)
	}
}

func TestResolvePoolValueUSD(t *testing.T) {
	poolAddr := seededAddr(0x08)
	reader := &fakeReader{
		accounts: map[string]*ledger.Account{
			poolAddr: {
				Address: poolAddr,
				Owner:   pumpfun.ProgramID,
				Data:    bondingCurve(seededAddr(0x82), 2_000_000_000, 0, false),
			},
		},
	}

	pricer := pricing.NewStaticPricer(map[string]float64{"SOL": 150})
	r := New(reader, tokenmeta.NewStaticProvider(), pricer)
	rec, err := r.ResolvePool(context.Background(), poolAddr)
	if err != nil {
		t.Fatalf("ResolvePool returned error: %v", err)
	}
	if rec.ValueUSD == nil {
		t.Fatal("expected a USD value")
	}
	if *rec.ValueUSD != 300.0 {
		t.Fatalf("2 SOL at $150 should be $300, got %v", *rec.ValueUSD)
	}

	// an unquotable pool omits the value rather than reporting zero
	unpriced := New(reader, nil, pricing.NewStaticPricer(nil))
	rec, err = unpriced.ResolvePool(context.Background(), poolAddr)
	if err != nil {
		t.Fatalf("ResolvePool returned error: %v", err)
	}
	if rec.ValueUSD != nil {
		t.Fatalf("no quotes available, value must be omitted, got %v", *rec.ValueUSD)
	}
}
