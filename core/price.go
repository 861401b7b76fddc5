package core

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Price latest round of a price feed, Answer is scaled by 10^Decimals
type Price struct {
	Feed      common.Address `json:"feed"`
	RoundID   *big.Int       `json:"round_id"`
	Answer    *big.Int       `json:"answer"`
	Decimals  uint8          `json:"decimals"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// IPriceOracleService price feed reader
type IPriceOracleService interface {
	GetLatestPrice(ctx context.Context, feed common.Address) (*Price, error)
}
