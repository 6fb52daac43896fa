// Package decoder classifies raw pool account snapshots and dispatches them
// to the protocol-specific layout decoders.
package decoder

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rexbrahh/pool-resolver/decoder/clmm"
	"github.com/rexbrahh/pool-resolver/decoder/common"
	"github.com/rexbrahh/pool-resolver/decoder/meteora"
	"github.com/rexbrahh/pool-resolver/decoder/orca_whirlpool"
	"github.com/rexbrahh/pool-resolver/decoder/pumpfun"
	"github.com/rexbrahh/pool-resolver/decoder/raydium"
)

// ErrUnsupported marks accounts no known protocol claims.
var ErrUnsupported = errors.New("unsupported pool account")

// UnsupportedError carries the diagnostics observed on an unclassifiable
// account.
type UnsupportedError struct {
	Length        int
	Discriminator []byte
}

func (e *UnsupportedError) Error() string {
	disc := "none"
	if len(e.Discriminator) > 0 {
		disc = hex.EncodeToString(e.Discriminator)
	}
	return fmt.Sprintf("unsupported pool account: %d bytes, discriminator %s", e.Length, disc)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// Confidence grades how a detection was made.
type Confidence string

const (
	// ConfidenceProgramID means the owning program matched exactly.
	ConfidenceProgramID Confidence = "program-id"
	// ConfidenceFingerprint means length range plus leading discriminator
	// matched, without an owning-program confirmation.
	ConfidenceFingerprint Confidence = "fingerprint"
	// ConfidenceNone means no protocol claimed the account.
	ConfidenceNone Confidence = "none"
)

// Detection is the detector's verdict for one account.
type Detection struct {
	Protocol   common.Protocol
	Confidence Confidence
	// Reason describes why the account was rejected when Protocol is
	// unknown.
	Reason string
}

// programOwners maps owning-program IDs to their protocol. An exact owner
// match always outranks fingerprinting.
var programOwners = map[string]common.Protocol{
	raydium.ProgramID:        common.ProtocolRaydium,
	clmm.ProgramID:           common.ProtocolCLMM,
	meteora.ProgramID:        common.ProtocolMeteora,
	pumpfun.ProgramID:        common.ProtocolPumpfun,
	orca_whirlpool.ProgramID: common.ProtocolWhirlpool,
}

type fingerprint struct {
	protocol      common.Protocol
	discriminator []byte
	minLen        int
	maxLen        int
}

// fingerprintWindow bounds how far past the declared minimum an account may
// grow and still match a fingerprint. On-chain accounts carry trailing
// reserved space, but not without limit.
const fingerprintWindow = 512

// fingerprints are tried in fixed priority order; the first match wins.
var fingerprints = []fingerprint{
	{common.ProtocolRaydium, raydium.Discriminator[:], raydium.MinAccountLen, raydium.MinAccountLen + fingerprintWindow},
	{common.ProtocolCLMM, clmm.Discriminator[:], clmm.MinAccountLen, clmm.MinAccountLen + fingerprintWindow},
	{common.ProtocolMeteora, meteora.Discriminator[:], meteora.MinAccountLen, meteora.MinAccountLen + fingerprintWindow},
	{common.ProtocolPumpfun, pumpfun.Discriminator[:], pumpfun.MinAccountLen, pumpfun.MinAccountLen + fingerprintWindow},
	{common.ProtocolWhirlpool, orca_whirlpool.Discriminator[:], orca_whirlpool.MinAccountLen, orca_whirlpool.MinAccountLen + fingerprintWindow},
}

// Detect classifies raw account bytes. Owner-program identity wins outright;
// otherwise the discriminator and byte-length fingerprints are tried in
// priority order. Detect is pure and never fetches additional data.
func Detect(owner string, data []byte) Detection {
	if p, ok := programOwners[owner]; ok {
		return Detection{Protocol: p, Confidence: ConfidenceProgramID}
	}

	disc := common.NewReader(data).Discriminator()
	for _, fp := range fingerprints {
		if len(data) < fp.minLen || len(data) > fp.maxLen {
			continue
		}
		if !bytes.Equal(disc, fp.discriminator) {
			continue
		}
		return Detection{Protocol: fp.protocol, Confidence: ConfidenceFingerprint}
	}

	unsupported := &UnsupportedError{Length: len(data), Discriminator: disc}
	return Detection{
		Protocol:   common.ProtocolUnknown,
		Confidence: ConfidenceNone,
		Reason:     unsupported.Error(),
	}
}
