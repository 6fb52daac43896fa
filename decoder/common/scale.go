package common

import (
	"math"
	"math/big"
)

// Q64Shift is the fractional bit count of the Q64.64 sqrt prices carried by
// the concentrated-liquidity families.
const Q64Shift = 64

var q64One = new(big.Float).SetInt(new(big.Int).Lsh(big.NewInt(1), Q64Shift))

// ScaleAmount converts a raw integer token amount to human units by dividing
// by 10^decimals.
func ScaleAmount(amount uint64, decimals uint8) float64 {
	return float64(amount) / math.Pow(10, float64(decimals))
}

// SqrtPriceX64ToPrice converts a Q64.64 sqrt price to a plain float price:
// price = (sqrtPrice / 2^64)^2. Lossy by construction, good enough for the
// sanity checks that consume it.
func SqrtPriceX64ToPrice(sqrtPrice *big.Int) float64 {
	if sqrtPrice == nil || sqrtPrice.Sign() == 0 {
		return 0
	}
	f := new(big.Float).SetInt(sqrtPrice)
	f.Quo(f, q64One)
	f.Mul(f, f)
	price, _ := f.Float64()
	return price
}
