package account

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"lendflow/core"
	"lendflow/pkg/contracts"
	"lendflow/service/chain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

const step = "position"

type accountService struct {
	caller            chain.Caller
	referenceDecimals uint8
	now               func() time.Time
}

// New new account service
func New(caller chain.Caller, referenceDecimals uint8) core.IAccountService {
	if referenceDecimals == 0 {
		referenceDecimals = core.DefaultReferenceDecimals
	}

	return &accountService{
		caller:            caller,
		referenceDecimals: referenceDecimals,
		now:               time.Now,
	}
}

// GetPosition reads getUserAccountData of account, the result is never cached
func (s *accountService) GetPosition(ctx context.Context, pool, account common.Address) (*core.AccountPosition, error) {
	log := logger.FromContext(ctx).WithField("account", account.Hex())

	out, err := s.caller.Call(ctx, pool, contracts.LendingPool, "getUserAccountData", account)
	if err != nil {
		log.WithError(err).Errorln("getUserAccountData failed")
		return nil, core.NewError(core.ErrPositionReadFailed, step, err)
	}

	if len(out) != 6 {
		return nil, core.NewError(core.ErrPositionReadFailed, step, fmt.Errorf("getUserAccountData: %d fields", len(out)))
	}

	values := make([]*big.Int, len(out))
	for idx, v := range out {
		n, ok := v.(*big.Int)
		if !ok || n == nil {
			return nil, core.NewError(core.ErrPositionReadFailed, step, fmt.Errorf("getUserAccountData: field %d is %T", idx, v))
		}
		values[idx] = n
	}

	position := &core.AccountPosition{
		Account:              account,
		TotalCollateral:      values[0],
		TotalDebt:            values[1],
		AvailableBorrows:     values[2],
		LiquidationThreshold: values[3],
		LTV:                  values[4],
		HealthFactor:         values[5],
		Decimals:             s.referenceDecimals,
		ReadAt:               s.now(),
	}

	log.Debugln("collateral", position.TotalCollateral, "debt", position.TotalDebt, "available", position.AvailableBorrows)
	return position, nil
}
