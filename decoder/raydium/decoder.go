// Package raydium decodes constant-product AMM pool accounts. Reserves live
// in the two vault accounts referenced by the pool; the account itself only
// carries addresses, fee parameters, and the LP token state.
package raydium

import (
	"github.com/rexbrahh/pool-resolver/decoder/common"
)

// ProgramID is the constant-product AMM program address.
const ProgramID = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"

// Discriminator identifies constant-product pool state accounts.
var Discriminator = [8]byte{106, 7, 139, 225, 44, 18, 91, 170}

const (
	statusOffset     = common.DiscriminatorLen
	nonceOffset      = statusOffset + 1
	baseMintOffset   = nonceOffset + 1
	quoteMintOffset  = baseMintOffset + common.AddressLen
	baseVaultOffset  = quoteMintOffset + common.AddressLen
	quoteVaultOffset = baseVaultOffset + common.AddressLen
	lpMintOffset     = quoteVaultOffset + common.AddressLen
	lpSupplyOffset   = lpMintOffset + common.AddressLen
	feeNumOffset     = lpSupplyOffset + 8
	feeDenOffset     = feeNumOffset + 8
	openTimeOffset   = feeDenOffset + 8
	pnlOwedOffset    = openTimeOffset + 8
	paddingOffset    = pnlOwedOffset + 8

	// MinAccountLen is the smallest account the decoder accepts.
	MinAccountLen = paddingOffset + 4
)

var layout = common.MustValidate(common.Layout{
	Protocol: common.ProtocolRaydium,
	MinLen:   MinAccountLen,
	Fields: []common.Field{
		{Name: "discriminator", Offset: 0, Type: common.TypeBytes, Size: common.DiscriminatorLen},
		{Name: "status", Offset: statusOffset, Type: common.TypeU8},
		{Name: "nonce", Offset: nonceOffset, Type: common.TypeU8},
		{Name: "base_mint", Offset: baseMintOffset, Type: common.TypeAddress},
		{Name: "quote_mint", Offset: quoteMintOffset, Type: common.TypeAddress},
		{Name: "base_vault", Offset: baseVaultOffset, Type: common.TypeAddress},
		{Name: "quote_vault", Offset: quoteVaultOffset, Type: common.TypeAddress},
		{Name: "lp_mint", Offset: lpMintOffset, Type: common.TypeAddress},
		{Name: "lp_supply", Offset: lpSupplyOffset, Type: common.TypeU64},
		{Name: "fee_numerator", Offset: feeNumOffset, Type: common.TypeU64},
		{Name: "fee_denominator", Offset: feeDenOffset, Type: common.TypeU64},
		{Name: "open_time", Offset: openTimeOffset, Type: common.TypeU64},
		{Name: "pnl_owed", Offset: pnlOwedOffset, Type: common.TypeU64},
	},
})

// PoolState is the decoded constant-product pool record.
type PoolState struct {
	Status         uint8
	Nonce          uint8
	BaseMint       string
	QuoteMint      string
	BaseVault      string
	QuoteVault     string
	LPMint         string
	LPSupply       uint64
	FeeNumerator   uint64
	FeeDenominator uint64
	OpenTime       uint64
}

// Protocol implements common.Account.
func (s *PoolState) Protocol() common.Protocol { return common.ProtocolRaydium }

// Mints returns side A (base) and side B (quote).
func (s *PoolState) Mints() (string, string) { return s.BaseMint, s.QuoteMint }

// FeeBps returns the trade fee in basis points.
func (s *PoolState) FeeBps() uint32 {
	if s.FeeDenominator == 0 {
		return 0
	}
	return uint32(s.FeeNumerator * 10000 / s.FeeDenominator)
}

// FeePercent returns the trade fee as a percentage, e.g. 2500/100000 -> 2.5.
func (s *PoolState) FeePercent() float64 {
	if s.FeeDenominator == 0 {
		return 0
	}
	return float64(s.FeeNumerator) / float64(s.FeeDenominator) * 100
}

// Decode parses a constant-product pool account. Buffers below MinAccountLen
// are rejected whole; no partial record is returned.
func Decode(data []byte) (*PoolState, error) {
	if err := layout.CheckMinLen(data); err != nil {
		return nil, err
	}
	r := common.NewReader(data)

	var s PoolState
	var err error
	if s.Status, err = r.U8(statusOffset); err != nil {
		return nil, err
	}
	if s.Nonce, err = r.U8(nonceOffset); err != nil {
		return nil, err
	}
	if s.BaseMint, err = r.Address(baseMintOffset); err != nil {
		return nil, err
	}
	if s.QuoteMint, err = r.Address(quoteMintOffset); err != nil {
		return nil, err
	}
	if s.BaseVault, err = r.Address(baseVaultOffset); err != nil {
		return nil, err
	}
	if s.QuoteVault, err = r.Address(quoteVaultOffset); err != nil {
		return nil, err
	}
	if s.LPMint, err = r.Address(lpMintOffset); err != nil {
		return nil, err
	}
	if s.LPSupply, err = r.U64(lpSupplyOffset); err != nil {
		return nil, err
	}
	if s.FeeNumerator, err = r.U64(feeNumOffset); err != nil {
		return nil, err
	}
	if s.FeeDenominator, err = r.U64(feeDenOffset); err != nil {
		return nil, err
	}
	if s.OpenTime, err = r.U64(openTimeOffset); err != nil {
		return nil, err
	}
	return &s, nil
}
