package pool

import (
	"context"
	"fmt"
	"math/big"

	"lendflow/core"
	"lendflow/pkg/contracts"
	"lendflow/service/chain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	StepDeposit = "deposit"
	StepBorrow  = "borrow"
	StepRepay   = "repay"
)

// Config pool call parameters
type Config struct {
	ReferralCode uint16
}

type poolService struct {
	caller     chain.Caller
	transactor chain.Transactor
	tokens     core.ITokenService
	steps      core.IStepExecutor
	config     Config
}

// New new lending pool service
func New(caller chain.Caller, transactor chain.Transactor, tokens core.ITokenService, steps core.IStepExecutor, cfg Config) core.ILendingPoolService {
	return &poolService{
		caller:     caller,
		transactor: transactor,
		tokens:     tokens,
		steps:      steps,
		config:     cfg,
	}
}

func (s *poolService) PoolAddress(ctx context.Context, registry common.Address) (common.Address, error) {
	out, err := s.caller.Call(ctx, registry, contracts.AddressesProvider, "getLendingPool")
	if err != nil {
		return common.Address{}, core.NewError(core.ErrRegistryLookupFailed, "pool", err)
	}

	if len(out) == 0 {
		return common.Address{}, core.NewError(core.ErrRegistryLookupFailed, "pool", fmt.Errorf("getLendingPool: empty result"))
	}

	address, ok := out[0].(common.Address)
	if !ok || address == (common.Address{}) {
		return common.Address{}, core.NewError(core.ErrRegistryLookupFailed, "pool", fmt.Errorf("getLendingPool: no pool registered at %s", registry.Hex()))
	}

	return address, nil
}

func (s *poolService) Deposit(ctx context.Context, from *core.Wallet, pool common.Address, asset core.Asset, amount *big.Int) (*core.PendingTransaction, error) {
	return s.steps.Execute(ctx, &core.StepCall{
		Name:    StepDeposit,
		Asset:   asset.Address,
		Amount:  amount,
		Account: from.Address,
		Check:   s.allowanceCheck(from, pool, asset, amount),
		Submit: func(ctx context.Context) (*types.Transaction, error) {
			return s.transactor.Transact(ctx, from, pool, nil, contracts.LendingPool, "deposit",
				asset.Address, amount, from.Address, s.config.ReferralCode)
		},
	})
}

func (s *poolService) Borrow(ctx context.Context, from *core.Wallet, pool common.Address, asset core.Asset, amount, rateMode *big.Int) (*core.PendingTransaction, error) {
	return s.steps.Execute(ctx, &core.StepCall{
		Name:    StepBorrow,
		Asset:   asset.Address,
		Amount:  amount,
		Account: from.Address,
		Submit: func(ctx context.Context) (*types.Transaction, error) {
			return s.transactor.Transact(ctx, from, pool, nil, contracts.LendingPool, "borrow",
				asset.Address, amount, rateMode, s.config.ReferralCode, from.Address)
		},
	})
}

func (s *poolService) Repay(ctx context.Context, from *core.Wallet, pool common.Address, asset core.Asset, amount, rateMode *big.Int) (*core.PendingTransaction, error) {
	return s.steps.Execute(ctx, &core.StepCall{
		Name:    StepRepay,
		Asset:   asset.Address,
		Amount:  amount,
		Account: from.Address,
		Check:   s.allowanceCheck(from, pool, asset, amount),
		Submit: func(ctx context.Context) (*types.Transaction, error) {
			return s.transactor.Transact(ctx, from, pool, nil, contracts.LendingPool, "repay",
				asset.Address, amount, rateMode, from.Address)
		},
	})
}

// allowanceCheck the pool pulls amount of asset from the wallet, the allowance must cover it
func (s *poolService) allowanceCheck(from *core.Wallet, pool common.Address, asset core.Asset, amount *big.Int) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		allowance, err := s.tokens.Allowance(ctx, asset.Address, from.Address, pool)
		if err != nil {
			return fmt.Errorf("read allowance: %w", err)
		}

		if allowance.Cmp(amount) < 0 {
			return fmt.Errorf("%w: %s has %s, needs %s", core.ErrInsufficientAllowance, pool.Hex(), allowance, amount)
		}

		return nil
	}
}
