package lending

import (
	"errors"
	"fmt"
	"math/big"

	"lendflow/core"

	"github.com/shopspring/decimal"
)

const step = "plan"

var (
	one = decimal.NewFromInt(1)
	ten = big.NewInt(10)
)

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(ten, big.NewInt(n), nil)
}

// SafeBorrowAmount floor(available * margin / price) in borrow asset base units.
//
// available is scaled by 10^availableDecimals, price (reference units per borrow unit) by
// 10^priceDecimals. The computation is done on integers only so identical inputs always
// give identical outputs.
func SafeBorrowAmount(available *big.Int, availableDecimals uint8, price *big.Int, priceDecimals uint8, borrowDecimals uint8, margin decimal.Decimal) (*big.Int, error) {
	if price == nil || price.Sign() <= 0 {
		return nil, core.NewError(core.ErrInvalidPriceOrMargin, step, fmt.Errorf("price %v must be positive", price))
	}

	if !margin.IsPositive() || margin.GreaterThan(one) {
		return nil, core.NewError(core.ErrInvalidPriceOrMargin, step, fmt.Errorf("safety margin %s outside (0, 1]", margin))
	}

	if available == nil || available.Sign() <= 0 {
		return new(big.Int), nil
	}

	// margin = coefficient * 10^exponent
	coefficient := margin.Coefficient()
	exponent := int64(margin.Exponent())

	num := new(big.Int).Mul(available, coefficient)
	num.Mul(num, pow10(int64(priceDecimals)+int64(borrowDecimals)))

	den := new(big.Int).Mul(price, pow10(int64(availableDecimals)))

	if exponent >= 0 {
		num.Mul(num, pow10(exponent))
	} else {
		den.Mul(den, pow10(-exponent))
	}

	// both operands are positive, truncation is floor
	return num.Quo(num, den), nil
}

// Plan borrow plan of asset from a fresh position and price
func Plan(position *core.AccountPosition, price *core.Price, asset core.Asset, margin decimal.Decimal) (*core.BorrowPlan, error) {
	if position == nil {
		return nil, core.NewError(core.ErrPositionReadFailed, step, errors.New("no position"))
	}

	if price == nil {
		return nil, core.NewError(core.ErrInvalidPriceOrMargin, step, errors.New("no price"))
	}

	amount, err := SafeBorrowAmount(position.AvailableBorrows, position.Decimals, price.Answer, price.Decimals, asset.Decimals, margin)
	if err != nil {
		return nil, err
	}

	available := new(big.Int)
	if position.AvailableBorrows != nil {
		available.Set(position.AvailableBorrows)
	}

	return &core.BorrowPlan{
		Asset:     asset,
		Amount:    amount,
		Margin:    margin,
		Price:     price,
		Available: available,
	}, nil
}
