// Package meteora decodes dynamic-bin AMM pool accounts. Reserves live in
// the two reserve vaults; bin-array liquidity distribution is deliberately
// not reconstructed, vault balances stand in for it.
package meteora

import (
	"math/big"

	"github.com/rexbrahh/pool-resolver/decoder/common"
)

// ProgramID is the dynamic-bin AMM program address.
const ProgramID = "LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo"

// Discriminator identifies dynamic-bin pair accounts.
var Discriminator = [8]byte{33, 11, 49, 98, 181, 101, 177, 13}

const (
	staticParamsOffset   = common.DiscriminatorLen
	activeIDOffset       = staticParamsOffset + 32
	binStepOffset        = activeIDOffset + 4
	statusOffset         = binStepOffset + 2
	tokenXMintOffset     = statusOffset + 2 // one pad byte after status
	tokenYMintOffset     = tokenXMintOffset + common.AddressLen
	reserveXOffset       = tokenYMintOffset + common.AddressLen
	reserveYOffset       = reserveXOffset + common.AddressLen
	rewardVaultXOffset   = reserveYOffset + common.AddressLen
	rewardVaultYOffset   = rewardVaultXOffset + common.AddressLen
	liquidityOffset      = rewardVaultYOffset + common.AddressLen
	baseFeeBpsOffset     = liquidityOffset + 16
	protocolShareOffset  = baseFeeBpsOffset + 2
	oracleOffset         = protocolShareOffset + 2
	binArrayBitmapOffset = oracleOffset + common.AddressLen
	binArrayBitmapLen    = 64

	// MinAccountLen is the smallest account the decoder accepts, two pad
	// bytes past the bitmap.
	MinAccountLen = binArrayBitmapOffset + binArrayBitmapLen + 2
)

var layout = common.MustValidate(common.Layout{
	Protocol: common.ProtocolMeteora,
	MinLen:   MinAccountLen,
	Fields: []common.Field{
		{Name: "discriminator", Offset: 0, Type: common.TypeBytes, Size: common.DiscriminatorLen},
		{Name: "static_params", Offset: staticParamsOffset, Type: common.TypeBytes, Size: 32},
		{Name: "active_id", Offset: activeIDOffset, Type: common.TypeI32},
		{Name: "bin_step", Offset: binStepOffset, Type: common.TypeU16},
		{Name: "status", Offset: statusOffset, Type: common.TypeU8},
		{Name: "token_x_mint", Offset: tokenXMintOffset, Type: common.TypeAddress},
		{Name: "token_y_mint", Offset: tokenYMintOffset, Type: common.TypeAddress},
		{Name: "reserve_x", Offset: reserveXOffset, Type: common.TypeAddress},
		{Name: "reserve_y", Offset: reserveYOffset, Type: common.TypeAddress},
		{Name: "reward_vault_x", Offset: rewardVaultXOffset, Type: common.TypeAddress},
		{Name: "reward_vault_y", Offset: rewardVaultYOffset, Type: common.TypeAddress},
		{Name: "liquidity", Offset: liquidityOffset, Type: common.TypeU128},
		{Name: "base_fee_bps", Offset: baseFeeBpsOffset, Type: common.TypeU16},
		{Name: "protocol_share", Offset: protocolShareOffset, Type: common.TypeU16},
		{Name: "oracle", Offset: oracleOffset, Type: common.TypeAddress},
		{Name: "bin_array_bitmap", Offset: binArrayBitmapOffset, Type: common.TypeBytes, Size: binArrayBitmapLen},
	},
})

// PairState is the decoded dynamic-bin pair record. Token X maps to side A
// and token Y to side B.
type PairState struct {
	ActiveID      int32
	BinStep       uint16
	Status        uint8
	TokenXMint    string
	TokenYMint    string
	ReserveX      string // vault holding token X
	ReserveY      string // vault holding token Y
	RewardVaultX  string
	RewardVaultY  string
	Liquidity     *big.Int
	BaseFeeBps    uint16
	ProtocolShare uint16
	Oracle        string
}

// Protocol implements common.Account.
func (s *PairState) Protocol() common.Protocol { return common.ProtocolMeteora }

// Mints returns side A (token X) and side B (token Y).
func (s *PairState) Mints() (string, string) { return s.TokenXMint, s.TokenYMint }

// FeeBps returns the base trade fee in basis points.
func (s *PairState) FeeBps() uint32 { return uint32(s.BaseFeeBps) }

// FeePercent returns the base trade fee as a percentage.
func (s *PairState) FeePercent() float64 { return float64(s.BaseFeeBps) / 100 }

// Decode parses a dynamic-bin pair account. A 358-byte buffer decodes; 357
// bytes is rejected whole with no partial record.
func Decode(data []byte) (*PairState, error) {
	if err := layout.CheckMinLen(data); err != nil {
		return nil, err
	}
	r := common.NewReader(data)

	var s PairState
	var err error
	if s.ActiveID, err = r.I32(activeIDOffset); err != nil {
		return nil, err
	}
	if s.BinStep, err = r.U16(binStepOffset); err != nil {
		return nil, err
	}
	if s.Status, err = r.U8(statusOffset); err != nil {
		return nil, err
	}
	if s.TokenXMint, err = r.Address(tokenXMintOffset); err != nil {
		return nil, err
	}
	if s.TokenYMint, err = r.Address(tokenYMintOffset); err != nil {
		return nil, err
	}
	if s.ReserveX, err = r.Address(reserveXOffset); err != nil {
		return nil, err
	}
	if s.ReserveY, err = r.Address(reserveYOffset); err != nil {
		return nil, err
	}
	if s.RewardVaultX, err = r.Address(rewardVaultXOffset); err != nil {
		return nil, err
	}
	if s.RewardVaultY, err = r.Address(rewardVaultYOffset); err != nil {
		return nil, err
	}
	if s.Liquidity, err = r.U128(liquidityOffset); err != nil {
		return nil, err
	}
	if s.BaseFeeBps, err = r.U16(baseFeeBpsOffset); err != nil {
		return nil, err
	}
	if s.ProtocolShare, err = r.U16(protocolShareOffset); err != nil {
		return nil, err
	}
	if s.Oracle, err = r.Address(oracleOffset); err != nil {
		return nil, err
	}
	return &s, nil
}
