package number

import (
	"math/big"

	"github.com/shopspring/decimal"
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// ToUnits converts a whole unit amount into base units, truncating below 10^-decimals
func ToUnits(d decimal.Decimal, decimals uint8) *big.Int {
	return d.Shift(int32(decimals)).Truncate(0).BigInt()
}

// FromUnits converts base units into whole units
func FromUnits(v *big.Int, decimals uint8) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v, -int32(decimals))
}

// Format base units as whole units with at most precision digits
func Format(v *big.Int, decimals uint8, precision int32) string {
	return FromUnits(v, decimals).Truncate(precision).String()
}
