// Package clmm decodes concentrated-liquidity AMM pool accounts. Reserves
// live in the two vaults; the in-range liquidity curve is deliberately not
// reconstructed from tick arrays, vault balances stand in for it.
package clmm

import (
	"math/big"

	"github.com/rexbrahh/pool-resolver/decoder/common"
)

// ProgramID is the concentrated-liquidity AMM program address.
const ProgramID = "CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK"

// Discriminator identifies concentrated-liquidity pool state accounts.
var Discriminator = [8]byte{247, 237, 227, 245, 215, 195, 222, 70}

const (
	bumpOffset            = common.DiscriminatorLen
	ammConfigOffset       = bumpOffset + 1
	mintAOffset           = ammConfigOffset + common.AddressLen
	mintBOffset           = mintAOffset + common.AddressLen
	vaultAOffset          = mintBOffset + common.AddressLen
	vaultBOffset          = vaultAOffset + common.AddressLen
	decimalsAOffset       = vaultBOffset + common.AddressLen
	decimalsBOffset       = decimalsAOffset + 1
	tickSpacingOffset     = decimalsBOffset + 1
	liquidityOffset       = tickSpacingOffset + 2
	sqrtPriceOffset       = liquidityOffset + 16
	tickCurrentOffset     = sqrtPriceOffset + 16
	feeRateOffset         = tickCurrentOffset + 4
	protocolFeeRateOffset = feeRateOffset + 4
	openTimeOffset        = protocolFeeRateOffset + 4

	// MinAccountLen is the smallest account the decoder accepts.
	MinAccountLen = openTimeOffset + 8

	// feeRateDenominator converts the on-chain fee unit (1e-6) to a ratio.
	feeRateDenominator = 1_000_000
)

var layout = common.MustValidate(common.Layout{
	Protocol: common.ProtocolCLMM,
	MinLen:   MinAccountLen,
	Fields: []common.Field{
		{Name: "discriminator", Offset: 0, Type: common.TypeBytes, Size: common.DiscriminatorLen},
		{Name: "bump", Offset: bumpOffset, Type: common.TypeU8},
		{Name: "amm_config", Offset: ammConfigOffset, Type: common.TypeAddress},
		{Name: "mint_a", Offset: mintAOffset, Type: common.TypeAddress},
		{Name: "mint_b", Offset: mintBOffset, Type: common.TypeAddress},
		{Name: "vault_a", Offset: vaultAOffset, Type: common.TypeAddress},
		{Name: "vault_b", Offset: vaultBOffset, Type: common.TypeAddress},
		{Name: "mint_decimals_a", Offset: decimalsAOffset, Type: common.TypeU8},
		{Name: "mint_decimals_b", Offset: decimalsBOffset, Type: common.TypeU8},
		{Name: "tick_spacing", Offset: tickSpacingOffset, Type: common.TypeU16},
		{Name: "liquidity", Offset: liquidityOffset, Type: common.TypeU128},
		{Name: "sqrt_price_x64", Offset: sqrtPriceOffset, Type: common.TypeU128},
		{Name: "tick_current", Offset: tickCurrentOffset, Type: common.TypeI32},
		{Name: "fee_rate", Offset: feeRateOffset, Type: common.TypeU32},
		{Name: "protocol_fee_rate", Offset: protocolFeeRateOffset, Type: common.TypeU32},
		{Name: "open_time", Offset: openTimeOffset, Type: common.TypeU64},
	},
})

// PoolState is the decoded concentrated-liquidity pool record.
type PoolState struct {
	Bump            uint8
	AmmConfig       string
	MintA           string
	MintB           string
	VaultA          string
	VaultB          string
	MintDecimalsA   uint8
	MintDecimalsB   uint8
	TickSpacing     uint16
	Liquidity       *big.Int
	SqrtPriceX64    *big.Int
	TickCurrent     int32
	FeeRate         uint32 // 1e-6 units
	ProtocolFeeRate uint32
	OpenTime        uint64
}

// Protocol implements common.Account.
func (s *PoolState) Protocol() common.Protocol { return common.ProtocolCLMM }

// Mints returns side A and side B.
func (s *PoolState) Mints() (string, string) { return s.MintA, s.MintB }

// FeeBps returns the trade fee in basis points.
func (s *PoolState) FeeBps() uint32 { return s.FeeRate / 100 }

// FeePercent returns the trade fee as a percentage.
func (s *PoolState) FeePercent() float64 {
	return float64(s.FeeRate) / feeRateDenominator * 100
}

// Price returns the current pool price derived from the Q64.64 sqrt price.
func (s *PoolState) Price() float64 {
	return common.SqrtPriceX64ToPrice(s.SqrtPriceX64)
}

// Decode parses a concentrated-liquidity pool account. Buffers below
// MinAccountLen are rejected whole; no partial record is returned.
func Decode(data []byte) (*PoolState, error) {
	if err := layout.CheckMinLen(data); err != nil {
		return nil, err
	}
	r := common.NewReader(data)

	var s PoolState
	var err error
	if s.Bump, err = r.U8(bumpOffset); err != nil {
		return nil, err
	}
	if s.AmmConfig, err = r.Address(ammConfigOffset); err != nil {
		return nil, err
	}
	if s.MintA, err = r.Address(mintAOffset); err != nil {
		return nil, err
	}
	if s.MintB, err = r.Address(mintBOffset); err != nil {
		return nil, err
	}
	if s.VaultA, err = r.Address(vaultAOffset); err != nil {
		return nil, err
	}
	if s.VaultB, err = r.Address(vaultBOffset); err != nil {
		return nil, err
	}
	if s.MintDecimalsA, err = r.U8(decimalsAOffset); err != nil {
		return nil, err
	}
	if s.MintDecimalsB, err = r.U8(decimalsBOffset); err != nil {
		return nil, err
	}
	if s.TickSpacing, err = r.U16(tickSpacingOffset); err != nil {
		return nil, err
	}
	if s.Liquidity, err = r.U128(liquidityOffset); err != nil {
		return nil, err
	}
	if s.SqrtPriceX64, err = r.U128(sqrtPriceOffset); err != nil {
		return nil, err
	}
	if s.TickCurrent, err = r.I32(tickCurrentOffset); err != nil {
		return nil, err
	}
	if s.FeeRate, err = r.U32(feeRateOffset); err != nil {
		return nil, err
	}
	if s.ProtocolFeeRate, err = r.U32(protocolFeeRateOffset); err != nil {
		return nil, err
	}
	if s.OpenTime, err = r.U64(openTimeOffset); err != nil {
		return nil, err
	}
	return &s, nil
}
