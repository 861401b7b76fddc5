package token

import (
	"context"
	"fmt"
	"math/big"

	"lendflow/core"
	"lendflow/pkg/contracts"
	"lendflow/service/chain"

	"github.com/bluele/gcache"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cast"
	"golang.org/x/sync/singleflight"
)

const (
	StepApprove = "approve"
	StepWrap    = "wrap"
)

type tokenService struct {
	caller     chain.Caller
	transactor chain.Transactor
	steps      core.IStepExecutor
	decimals   gcache.Cache
	sf         *singleflight.Group
}

// New new token service
func New(caller chain.Caller, transactor chain.Transactor, steps core.IStepExecutor) core.ITokenService {
	return &tokenService{
		caller:     caller,
		transactor: transactor,
		steps:      steps,
		decimals:   gcache.New(256).LRU().Build(),
		sf:         &singleflight.Group{},
	}
}

func (s *tokenService) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	return s.readUint(ctx, token, "allowance", owner, spender)
}

func (s *tokenService) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	return s.readUint(ctx, token, "balanceOf", account)
}

// Decimals token decimals never change, they are cached per token
func (s *tokenService) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	if v, err := s.decimals.Get(token); err == nil {
		if d, ok := v.(uint8); ok {
			return d, nil
		}
	}

	v, err, _ := s.sf.Do(token.Hex(), func() (interface{}, error) {
		out, err := s.caller.Call(ctx, token, contracts.ERC20, "decimals")
		if err != nil {
			return nil, err
		}

		if len(out) == 0 {
			return nil, fmt.Errorf("decimals: empty result from %s", token.Hex())
		}

		d, err := cast.ToUint8E(out[0])
		if err != nil {
			return nil, fmt.Errorf("decimals: %w", err)
		}

		_ = s.decimals.Set(token, d)
		return d, nil
	})
	if err != nil {
		return 0, err
	}

	return v.(uint8), nil
}

func (s *tokenService) Approve(ctx context.Context, from *core.Wallet, token, spender common.Address, amount *big.Int) (*core.PendingTransaction, error) {
	return s.steps.Execute(ctx, &core.StepCall{
		Name:      StepApprove,
		Asset:     token,
		Amount:    amount,
		Account:   from.Address,
		AllowZero: true,
		Submit: func(ctx context.Context) (*types.Transaction, error) {
			return s.transactor.Transact(ctx, from, token, nil, contracts.ERC20, "approve", spender, amount)
		},
	})
}

func (s *tokenService) Wrap(ctx context.Context, from *core.Wallet, token common.Address, amount *big.Int) (*core.PendingTransaction, error) {
	return s.steps.Execute(ctx, &core.StepCall{
		Name:    StepWrap,
		Asset:   token,
		Amount:  amount,
		Account: from.Address,
		Submit: func(ctx context.Context) (*types.Transaction, error) {
			return s.transactor.Transact(ctx, from, token, amount, contracts.ERC20, "deposit")
		},
	})
}

func (s *tokenService) readUint(ctx context.Context, token common.Address, method string, args ...interface{}) (*big.Int, error) {
	out, err := s.caller.Call(ctx, token, contracts.ERC20, method, args...)
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty result from %s", method, token.Hex())
	}

	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result %T", method, out[0])
	}

	return v, nil
}
