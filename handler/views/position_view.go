package views

import (
	"time"

	"lendflow/core"
	"lendflow/pkg/number"
)

// Position account position in whole units
type Position struct {
	Account              string    `json:"account"`
	TotalCollateral      string    `json:"total_collateral"`
	TotalDebt            string    `json:"total_debt"`
	AvailableBorrows     string    `json:"available_borrows"`
	LiquidationThreshold string    `json:"liquidation_threshold"`
	LTV                  string    `json:"ltv"`
	HealthFactor         string    `json:"health_factor"`
	ReadAt               time.Time `json:"read_at"`
}

// PositionView render position
func PositionView(position *core.AccountPosition) Position {
	return Position{
		Account:          position.Account.Hex(),
		TotalCollateral:  number.Format(position.TotalCollateral, position.Decimals, 8),
		TotalDebt:        number.Format(position.TotalDebt, position.Decimals, 8),
		AvailableBorrows: number.Format(position.AvailableBorrows, position.Decimals, 8),
		// basis points
		LiquidationThreshold: number.Format(position.LiquidationThreshold, 4, 4),
		LTV:                  number.Format(position.LTV, 4, 4),
		HealthFactor:         number.Format(position.HealthFactor, 18, 4),
		ReadAt:               position.ReadAt,
	}
}
