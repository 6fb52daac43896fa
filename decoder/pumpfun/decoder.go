// Package pumpfun decodes bonding-curve accounts. Unlike the vault-based
// families the reserves are counters inside the account itself, and the pool
// is implicitly paired against native SOL, which never appears in the buffer.
package pumpfun

import (
	"github.com/rexbrahh/pool-resolver/decoder/common"
)

// ProgramID is the bonding-curve program address.
const ProgramID = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"

// Discriminator identifies bonding-curve accounts.
var Discriminator = [8]byte{23, 183, 248, 55, 96, 216, 172, 96}

const (
	mintOffset                 = common.DiscriminatorLen
	virtualTokenReservesOffset = mintOffset + common.AddressLen
	virtualSolReservesOffset   = virtualTokenReservesOffset + 8
	realTokenReservesOffset    = virtualSolReservesOffset + 8
	realSolReservesOffset      = realTokenReservesOffset + 8
	tokenTotalSupplyOffset     = realSolReservesOffset + 8
	completeOffset             = tokenTotalSupplyOffset + 8

	// MinAccountLen covers the discriminator and mint only. The reserve
	// counters past it are tolerated missing: snapshots are sometimes
	// truncated while the discriminator still matches.
	MinAccountLen = virtualTokenReservesOffset

	// reserveRegionEnd is the end of the counters plus the complete flag.
	reserveRegionEnd = completeOffset + 1

	// FeeBps is the flat bonding-curve trade fee; it is not stored in the
	// account.
	FeeBps uint32 = 100
)

var layout = common.MustValidate(common.Layout{
	Protocol: common.ProtocolPumpfun,
	MinLen:   MinAccountLen,
	Fields: []common.Field{
		{Name: "discriminator", Offset: 0, Type: common.TypeBytes, Size: common.DiscriminatorLen},
		{Name: "mint", Offset: mintOffset, Type: common.TypeAddress},
		{Name: "virtual_token_reserves", Offset: virtualTokenReservesOffset, Type: common.TypeU64, Optional: true},
		{Name: "virtual_sol_reserves", Offset: virtualSolReservesOffset, Type: common.TypeU64, Optional: true},
		{Name: "real_token_reserves", Offset: realTokenReservesOffset, Type: common.TypeU64, Optional: true},
		{Name: "real_sol_reserves", Offset: realSolReservesOffset, Type: common.TypeU64, Optional: true},
		{Name: "token_total_supply", Offset: tokenTotalSupplyOffset, Type: common.TypeU64, Optional: true},
		{Name: "complete", Offset: completeOffset, Type: common.TypeU8, Optional: true},
	},
})

// CurveState is the decoded bonding-curve record. Side A is native SOL at 9
// decimals; side B is the custom mint at the conventional 6.
type CurveState struct {
	Mint                 string
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
	RealSolReserves      uint64
	TokenTotalSupply     uint64
	Complete             bool
}

// Protocol implements common.Account.
func (s *CurveState) Protocol() common.Protocol { return common.ProtocolPumpfun }

// Mints returns native SOL as side A and the custom mint as side B.
func (s *CurveState) Mints() (string, string) { return common.NativeMint, s.Mint }

// FeeBps returns the flat bonding-curve fee in basis points.
func (s *CurveState) FeeBps() uint32 { return FeeBps }

// Decode parses a bonding-curve account. A buffer below MinAccountLen is
// rejected whole. A buffer whose discriminator and mint decode but whose
// reserve-counter region is short degrades softly: zero reserves and
// Complete=false, no error.
func Decode(data []byte) (*CurveState, error) {
	if err := layout.CheckMinLen(data); err != nil {
		return nil, err
	}
	r := common.NewReader(data)

	var s CurveState
	var err error
	if s.Mint, err = r.Address(mintOffset); err != nil {
		return nil, err
	}
	if len(data) < reserveRegionEnd {
		return &s, nil
	}
	if s.VirtualTokenReserves, err = r.U64(virtualTokenReservesOffset); err != nil {
		return nil, err
	}
	if s.VirtualSolReserves, err = r.U64(virtualSolReservesOffset); err != nil {
		return nil, err
	}
	if s.RealTokenReserves, err = r.U64(realTokenReservesOffset); err != nil {
		return nil, err
	}
	if s.RealSolReserves, err = r.U64(realSolReservesOffset); err != nil {
		return nil, err
	}
	if s.TokenTotalSupply, err = r.U64(tokenTotalSupplyOffset); err != nil {
		return nil, err
	}
	if s.Complete, err = r.Bool(completeOffset); err != nil {
		return nil, err
	}
	return &s, nil
}
