package decoder

import (
	"fmt"

	"github.com/rexbrahh/pool-resolver/decoder/clmm"
	"github.com/rexbrahh/pool-resolver/decoder/common"
	"github.com/rexbrahh/pool-resolver/decoder/meteora"
	"github.com/rexbrahh/pool-resolver/decoder/orca_whirlpool"
	"github.com/rexbrahh/pool-resolver/decoder/pumpfun"
	"github.com/rexbrahh/pool-resolver/decoder/raydium"
)

// Decode invokes the layout decoder for an already-detected protocol.
func Decode(protocol common.Protocol, data []byte) (common.Account, error) {
	switch protocol {
	case common.ProtocolRaydium:
		return raydium.Decode(data)
	case common.ProtocolCLMM:
		return clmm.Decode(data)
	case common.ProtocolMeteora:
		return meteora.Decode(data)
	case common.ProtocolPumpfun:
		return pumpfun.Decode(data)
	case common.ProtocolWhirlpool:
		return orca_whirlpool.Decode(data)
	default:
		return nil, fmt.Errorf("no decoder for protocol %q", protocol)
	}
}

// DecodeAccount detects and decodes in one step. Unclassifiable accounts
// fail with an UnsupportedError carrying the observed length and
// discriminator.
func DecodeAccount(owner string, data []byte) (common.Account, Detection, error) {
	det := Detect(owner, data)
	if det.Protocol == common.ProtocolUnknown {
		return nil, det, &UnsupportedError{
			Length:        len(data),
			Discriminator: common.NewReader(data).Discriminator(),
		}
	}
	acct, err := Decode(det.Protocol, data)
	if err != nil {
		return nil, det, err
	}
	return acct, det, nil
}
