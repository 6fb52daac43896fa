package orca_whirlpool

import (
	"encoding/binary"
	"errors"
	"math/big"
	"testing"

	"github.com/mr-tron/base58"

	"github.com/rexbrahh/pool-resolver/decoder/common"
	"github.com/rexbrahh/pool-resolver/health"
)

func putAddr(buf []byte, offset int, seed byte) string {
	for i := 0; i < common.AddressLen; i++ {
		buf[offset+i] = seed
	}
	return base58.Encode(buf[offset : offset+common.AddressLen])
}

func poolFixture(t *testing.T) ([]byte, map[string]string) {
	t.Helper()
	buf := make([]byte, MinAccountLen)
	copy(buf, Discriminator[:])
	buf[bumpOffset] = 255

	addrs := map[string]string{
		"config": putAddr(buf, configOffset, 0x01),
		"mintA":  putAddr(buf, tokenMintAOffset, 0x11),
		"vaultA": putAddr(buf, tokenVaultAOffset, 0x22),
		"mintB":  putAddr(buf, tokenMintBOffset, 0x33),
		"vaultB": putAddr(buf, tokenVaultBOffset, 0x44),
	}
	binary.LittleEndian.PutUint16(buf[tickSpacingOffset:], 128)
	binary.LittleEndian.PutUint16(buf[feeRateOffset:], 3000) // 30 bps
	binary.LittleEndian.PutUint16(buf[protocolFeeRateOffset:], 300)
	copy(buf[liquidityOffset:], common.EncodeU128(big.NewInt(123456)))
	copy(buf[sqrtPriceOffset:], common.EncodeU128(new(big.Int).Lsh(big.NewInt(2), 64)))
	tickCurrent := int32(-39104)
	binary.LittleEndian.PutUint32(buf[tickCurrentOffset:], uint32(tickCurrent))
	binary.LittleEndian.PutUint64(buf[protocolFeeOwedAOff:], 17)
	binary.LittleEndian.PutUint64(buf[protocolFeeOwedBOff:], 19)
	return buf, addrs
}

func TestDecode(t *testing.T) {
	buf, addrs := poolFixture(t)
	if len(buf) != 245 {
		t.Fatalf("fixture should be the 245-byte minimum, got %d", len(buf))
	}

	s, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if s.Config != addrs["config"] {
		t.Fatalf("unexpected config %s", s.Config)
	}
	if s.TokenMintA != addrs["mintA"] || s.TokenMintB != addrs["mintB"] {
		t.Fatalf("unexpected mints %s/%s", s.TokenMintA, s.TokenMintB)
	}
	if s.TokenVaultA != addrs["vaultA"] || s.TokenVaultB != addrs["vaultB"] {
		t.Fatalf("unexpected vaults %s/%s", s.TokenVaultA, s.TokenVaultB)
	}
	if s.TickSpacing != 128 {
		t.Fatalf("unexpected tick spacing %d", s.TickSpacing)
	}
	if s.TickCurrent != -39104 {
		t.Fatalf("unexpected tick %d", s.TickCurrent)
	}
	if s.Liquidity.Cmp(big.NewInt(123456)) != 0 {
		t.Fatalf("unexpected liquidity %s", s.Liquidity)
	}
	if s.ProtocolFeeOwedA != 17 || s.ProtocolFeeOwedB != 19 {
		t.Fatalf("unexpected protocol fees owed %d/%d", s.ProtocolFeeOwedA, s.ProtocolFeeOwedB)
	}
	// fee rate stored in hundredths of a basis point
	if got := s.FeeBps(); got != 30 {
		t.Fatalf("fee 3000 should be 30 bps, got %d", got)
	}
	if got := s.FeePercent(); got != 0.3 {
		t.Fatalf("fee 3000 should be 0.30%%, got %v", got)
	}
	// sqrt price of 2*2^64 is price 4.0
	if got := s.Price(); got != 4.0 {
		t.Fatalf("expected price 4.0, got %v", got)
	}
}

func TestDecodeTruncated(t *testing.T) {
	buf, _ := poolFixture(t)
	s, err := Decode(buf[:MinAccountLen-1])
	if !errors.Is(err, common.ErrTruncated) {
		t.Fatalf("expected truncated error for 244 bytes, got %v", err)
	}
	if s != nil {
		t.Fatal("no partial record on truncation")
	}
}

func TestAssessHealth(t *testing.T) {
	buf, _ := poolFixture(t)
	s, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if v := AssessHealth(s, 10, 10); v.Status != health.Healthy {
		t.Fatalf("expected healthy, got %s (%v)", v.Status, v.Issues)
	}
	if v := AssessHealth(s, 0, 10); v.Status != health.Warning {
		t.Fatalf("zero reserve alone should warn, got %s", v.Status)
	}

	s.Liquidity = big.NewInt(0)
	if v := AssessHealth(s, 0, 10); v.Status != health.Critical {
		t.Fatalf("expected critical, got %s (%v)", v.Status, v.Issues)
	}
}
