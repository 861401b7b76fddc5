package step

import (
	"context"
	"fmt"
	"time"

	"lendflow/core"

	"github.com/fox-one/pkg/logger"
)

// DefaultTimeout used when Config.Timeout is not set
const DefaultTimeout = 5 * time.Minute

// Config confirmation policy of every step
type Config struct {
	Depth        uint64
	Timeout      time.Duration
	PollInterval time.Duration
}

type executor struct {
	confirmer core.IConfirmer
	config    Config
	now       func() time.Time
}

// New new step executor
func New(confirmer core.IConfirmer, cfg Config) core.IStepExecutor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &executor{
		confirmer: confirmer,
		config:    cfg,
		now:       time.Now,
	}
}

// Execute runs call to Confirmed or Failed. A failure is returned as core.ErrStepFailed
// carrying the step name; the transaction is never resubmitted.
func (e *executor) Execute(ctx context.Context, call *core.StepCall) (*core.PendingTransaction, error) {
	log := logger.FromContext(ctx).WithField("step", call.Name)
	ctx = logger.WithContext(ctx, log)

	tx := core.NewPendingTransaction(call.Name, call.Asset, call.Amount, call.Account)

	fail := func(cause error) (*core.PendingTransaction, error) {
		_ = tx.Transition(core.TransactionStatusFailed)
		log.WithError(cause).Errorln("step failed")
		return tx, core.NewError(core.ErrStepFailed, call.Name, cause)
	}

	// built
	if call.Amount == nil || call.Amount.Sign() < 0 || (call.Amount.Sign() == 0 && !call.AllowZero) {
		return fail(fmt.Errorf("%w: %v", core.ErrInvalidAmount, call.Amount))
	}

	if call.Check != nil {
		if err := call.Check(ctx); err != nil {
			return fail(err)
		}
	}

	signed, err := call.Submit(ctx)
	if err != nil {
		return fail(err)
	}

	tx.Hash = signed.Hash()
	tx.SubmittedAt = e.now()
	if err := tx.Transition(core.TransactionStatusSubmitted); err != nil {
		return fail(err)
	}

	log = log.WithField("tx", tx.Hash.Hex())
	log.Infoln("submitted, waiting for", e.config.Depth, "confirmations")

	// the wait is bounded by the step timeout only, caller cancellation applies between steps
	waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.config.Timeout)
	defer cancel()

	receipt, err := e.confirmer.WaitConfirmed(waitCtx, tx.Hash, e.config.Depth, e.config.PollInterval)
	if err != nil {
		return fail(err)
	}

	if receipt.BlockNumber != nil {
		tx.BlockNumber = receipt.BlockNumber.Uint64()
	}

	tx.ConfirmedAt = e.now()
	if err := tx.Transition(core.TransactionStatusConfirmed); err != nil {
		return fail(err)
	}

	log.WithField("block", tx.BlockNumber).Infoln("confirmed")
	return tx, nil
}
