// Package orca_whirlpool decodes whirlpool-style concentrated-liquidity pool
// accounts, the second CLMM flavour with its own layout. Reserves live in the
// two token vaults; tick arrays are not reconstructed.
package orca_whirlpool

import (
	"math/big"

	"github.com/rexbrahh/pool-resolver/decoder/common"
)

// ProgramID is the whirlpool program address.
const ProgramID = "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc"

// Discriminator identifies whirlpool accounts.
var Discriminator = [8]byte{63, 149, 209, 12, 225, 128, 99, 9}

const (
	configOffset          = common.DiscriminatorLen
	bumpOffset            = configOffset + common.AddressLen
	tickSpacingOffset     = bumpOffset + 1
	feeTierIndexOffset    = tickSpacingOffset + 2
	feeRateOffset         = feeTierIndexOffset + 2
	protocolFeeRateOffset = feeRateOffset + 2
	liquidityOffset       = protocolFeeRateOffset + 2
	sqrtPriceOffset       = liquidityOffset + 16
	tickCurrentOffset     = sqrtPriceOffset + 16
	protocolFeeOwedAOff   = tickCurrentOffset + 4
	protocolFeeOwedBOff   = protocolFeeOwedAOff + 8
	tokenMintAOffset      = protocolFeeOwedBOff + 8
	tokenVaultAOffset     = tokenMintAOffset + common.AddressLen
	feeGrowthGlobalAOff   = tokenVaultAOffset + common.AddressLen
	tokenMintBOffset      = feeGrowthGlobalAOff + 16
	tokenVaultBOffset     = tokenMintBOffset + common.AddressLen

	// MinAccountLen is the smallest account the decoder accepts.
	MinAccountLen = tokenVaultBOffset + common.AddressLen
)

var layout = common.MustValidate(common.Layout{
	Protocol: common.ProtocolWhirlpool,
	MinLen:   MinAccountLen,
	Fields: []common.Field{
		{Name: "discriminator", Offset: 0, Type: common.TypeBytes, Size: common.DiscriminatorLen},
		{Name: "config", Offset: configOffset, Type: common.TypeAddress},
		{Name: "bump", Offset: bumpOffset, Type: common.TypeU8},
		{Name: "tick_spacing", Offset: tickSpacingOffset, Type: common.TypeU16},
		{Name: "fee_tier_index", Offset: feeTierIndexOffset, Type: common.TypeU16},
		{Name: "fee_rate", Offset: feeRateOffset, Type: common.TypeU16},
		{Name: "protocol_fee_rate", Offset: protocolFeeRateOffset, Type: common.TypeU16},
		{Name: "liquidity", Offset: liquidityOffset, Type: common.TypeU128},
		{Name: "sqrt_price", Offset: sqrtPriceOffset, Type: common.TypeU128},
		{Name: "tick_current", Offset: tickCurrentOffset, Type: common.TypeI32},
		{Name: "protocol_fee_owed_a", Offset: protocolFeeOwedAOff, Type: common.TypeU64},
		{Name: "protocol_fee_owed_b", Offset: protocolFeeOwedBOff, Type: common.TypeU64},
		{Name: "token_mint_a", Offset: tokenMintAOffset, Type: common.TypeAddress},
		{Name: "token_vault_a", Offset: tokenVaultAOffset, Type: common.TypeAddress},
		{Name: "fee_growth_global_a", Offset: feeGrowthGlobalAOff, Type: common.TypeU128},
		{Name: "token_mint_b", Offset: tokenMintBOffset, Type: common.TypeAddress},
		{Name: "token_vault_b", Offset: tokenVaultBOffset, Type: common.TypeAddress},
	},
})

// PoolState is the decoded whirlpool record. The fee rate is stored in
// hundredths of a basis point.
type PoolState struct {
	Config           string
	TickSpacing      uint16
	FeeRate          uint16 // hundredths of a basis point
	ProtocolFeeRate  uint16
	Liquidity        *big.Int
	SqrtPrice        *big.Int
	TickCurrent      int32
	ProtocolFeeOwedA uint64
	ProtocolFeeOwedB uint64
	TokenMintA       string
	TokenVaultA      string
	TokenMintB       string
	TokenVaultB      string
}

// Protocol implements common.Account.
func (s *PoolState) Protocol() common.Protocol { return common.ProtocolWhirlpool }

// Mints returns side A and side B.
func (s *PoolState) Mints() (string, string) { return s.TokenMintA, s.TokenMintB }

// FeeBps returns the trade fee in basis points.
func (s *PoolState) FeeBps() uint32 { return uint32(s.FeeRate) / 100 }

// FeePercent returns the trade fee as a percentage.
func (s *PoolState) FeePercent() float64 { return float64(s.FeeRate) / 10000 }

// Price returns the current pool price derived from the Q64.64 sqrt price.
func (s *PoolState) Price() float64 {
	return common.SqrtPriceX64ToPrice(s.SqrtPrice)
}

// Decode parses a whirlpool account. Buffers below MinAccountLen are
// rejected whole; no partial record is returned.
func Decode(data []byte) (*PoolState, error) {
	if err := layout.CheckMinLen(data); err != nil {
		return nil, err
	}
	r := common.NewReader(data)

	var s PoolState
	var err error
	if s.Config, err = r.Address(configOffset); err != nil {
		return nil, err
	}
	if s.TickSpacing, err = r.U16(tickSpacingOffset); err != nil {
		return nil, err
	}
	if s.FeeRate, err = r.U16(feeRateOffset); err != nil {
		return nil, err
	}
	if s.ProtocolFeeRate, err = r.U16(protocolFeeRateOffset); err != nil {
		return nil, err
	}
	if s.Liquidity, err = r.U128(liquidityOffset); err != nil {
		return nil, err
	}
	if s.SqrtPrice, err = r.U128(sqrtPriceOffset); err != nil {
		return nil, err
	}
	if s.TickCurrent, err = r.I32(tickCurrentOffset); err != nil {
		return nil, err
	}
	if s.ProtocolFeeOwedA, err = r.U64(protocolFeeOwedAOff); err != nil {
		return nil, err
	}
	if s.ProtocolFeeOwedB, err = r.U64(protocolFeeOwedBOff); err != nil {
		return nil, err
	}
	if s.TokenMintA, err = r.Address(tokenMintAOffset); err != nil {
		return nil, err
	}
	if s.TokenVaultA, err = r.Address(tokenVaultAOffset); err != nil {
		return nil, err
	}
	if s.TokenMintB, err = r.Address(tokenMintBOffset); err != nil {
		return nil, err
	}
	if s.TokenVaultB, err = r.Address(tokenVaultBOffset); err != nil {
		return nil, err
	}
	return &s, nil
}
