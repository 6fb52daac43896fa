package common

// Protocol identifies the DEX program family a pool account belongs to.
type Protocol string

const (
	// ProtocolRaydium is the constant-product AMM family. Reserves live in
	// external vault accounts; the pool additionally carries an LP mint.
	ProtocolRaydium Protocol = "raydium"
	// ProtocolCLMM is the concentrated-liquidity AMM family.
	ProtocolCLMM Protocol = "clmm"
	// ProtocolMeteora is the dynamic-bin AMM family.
	ProtocolMeteora Protocol = "meteora"
	// ProtocolPumpfun is the bonding-curve family. Reserves are counters
	// embedded in the account itself, with no external vaults.
	ProtocolPumpfun Protocol = "pumpfun"
	// ProtocolWhirlpool is the whirlpool-style concentrated-liquidity variant.
	ProtocolWhirlpool Protocol = "whirlpool"
	// ProtocolUnknown marks accounts no decoder claims.
	ProtocolUnknown Protocol = "unknown"
)

// NativeMint is the wrapped SOL mint address. Bonding-curve pools pair their
// custom mint against it implicitly; the address never appears in the account.
const NativeMint = "So11111111111111111111111111111111111111112"

const (
	// NativeDecimals is the decimal precision of SOL.
	NativeDecimals uint8 = 9
	// BondingCurveTokenDecimals is the conventional precision of mints
	// launched on the bonding curve.
	BondingCurveTokenDecimals uint8 = 6
)

// Account is the closed set of decoded pool records. Each protocol package
// produces exactly one implementation, so downstream dispatch can type-switch
// exhaustively instead of poking at untyped fields.
type Account interface {
	// Protocol reports which family produced the record.
	Protocol() Protocol
	// Mints returns the side-A and side-B mint addresses. The two slots are
	// never aliased; the native-vs-custom mapping is fixed per protocol.
	Mints() (mintA, mintB string)
	// FeeBps returns the pool's trade fee in basis points.
	FeeBps() uint32
}
