package core

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// AccountPosition aggregate position of a borrower, all values in the reference unit (native wei)
type AccountPosition struct {
	Account              common.Address `json:"account"`
	TotalCollateral      *big.Int       `json:"total_collateral"`
	TotalDebt            *big.Int       `json:"total_debt"`
	AvailableBorrows     *big.Int       `json:"available_borrows"`
	LiquidationThreshold *big.Int       `json:"liquidation_threshold,omitempty"`
	LTV                  *big.Int       `json:"ltv,omitempty"`
	// HealthFactor 18 decimals
	HealthFactor *big.Int  `json:"health_factor,omitempty"`
	Decimals     uint8     `json:"decimals"`
	ReadAt       time.Time `json:"read_at"`
}

// IAccountService reads positions, every call hits the pool
type IAccountService interface {
	GetPosition(ctx context.Context, pool, account common.Address) (*AccountPosition, error)
}
