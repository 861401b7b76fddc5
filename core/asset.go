package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Asset an erc20 token configured for one network
type Asset struct {
	Symbol    string         `json:"symbol,omitempty"`
	Address   common.Address `json:"address"`
	Decimals  uint8          `json:"decimals,omitempty"`
	PriceFeed common.Address `json:"price_feed,omitempty"`
}

// HasPriceFeed price feed configured
func (a Asset) HasPriceFeed() bool {
	return a.PriceFeed != (common.Address{})
}

// ITokenService erc20 and wrapped native token calls
type ITokenService interface {
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error)
	Decimals(ctx context.Context, token common.Address) (uint8, error)
	Approve(ctx context.Context, from *Wallet, token, spender common.Address, amount *big.Int) (*PendingTransaction, error)
	// Wrap mints wrapped native token 1:1 against amount of native value
	Wrap(ctx context.Context, from *Wallet, token common.Address, amount *big.Int) (*PendingTransaction, error)
}

// IApprovalGuard makes sure a spender may transfer amount of token from the wallet
type IApprovalGuard interface {
	EnsureAllowance(ctx context.Context, from *Wallet, token, spender common.Address, amount *big.Int) (*PendingTransaction, error)
}
