package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// BorrowPlan amount to borrow, computed once per run
type BorrowPlan struct {
	Asset     Asset           `json:"asset"`
	Amount    *big.Int        `json:"amount"`
	Margin    decimal.Decimal `json:"margin"`
	Price     *Price          `json:"price"`
	Available *big.Int        `json:"available"`
}

// ILendingPoolService lending pool calls
type ILendingPoolService interface {
	// PoolAddress resolves the active pool through the addresses provider
	PoolAddress(ctx context.Context, registry common.Address) (common.Address, error)
	Deposit(ctx context.Context, from *Wallet, pool common.Address, asset Asset, amount *big.Int) (*PendingTransaction, error)
	Borrow(ctx context.Context, from *Wallet, pool common.Address, asset Asset, amount, rateMode *big.Int) (*PendingTransaction, error)
	// Repay rateMode selects the debt tranche to reduce
	Repay(ctx context.Context, from *Wallet, pool common.Address, asset Asset, amount, rateMode *big.Int) (*PendingTransaction, error)
}
