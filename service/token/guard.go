package token

import (
	"context"
	"errors"
	"math/big"

	"lendflow/core"

	"github.com/ethereum/go-ethereum/common"
)

type approvalGuard struct {
	tokens core.ITokenService
}

// NewApprovalGuard new approval guard
func NewApprovalGuard(tokens core.ITokenService) core.IApprovalGuard {
	return &approvalGuard{tokens: tokens}
}

// EnsureAllowance approves amount for spender and waits for confirmation. Every call
// submits a new approve transaction, failures are reported as core.ErrApprovalFailed.
func (g *approvalGuard) EnsureAllowance(ctx context.Context, from *core.Wallet, token, spender common.Address, amount *big.Int) (*core.PendingTransaction, error) {
	tx, err := g.tokens.Approve(ctx, from, token, spender, amount)
	if err != nil {
		var e *core.Error
		if errors.As(err, &e) {
			return tx, core.NewError(core.ErrApprovalFailed, e.Step, e.Cause)
		}

		return tx, core.NewError(core.ErrApprovalFailed, StepApprove, err)
	}

	return tx, nil
}
