package workflow

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"lendflow/core"
	"lendflow/pkg/id"
	"lendflow/pkg/lending"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// stage names, in pipeline order
const (
	StagePool              = "pool"
	StageWrap              = "wrap"
	StageApproveCollateral = "approve-collateral"
	StageDeposit           = "deposit"
	StagePosition          = "position"
	StagePrice             = "price"
	StagePlan              = "plan"
	StageApproveBorrow     = "approve-borrow"
	StageBorrow            = "borrow"
	StagePositionBorrowed  = "position-borrowed"
	StageApproveRepay      = "approve-repay"
	StageRepay             = "repay"
	StagePositionRepaid    = "position-repaid"
)

// DefaultSafetyMargin fraction of the available borrows requested
var DefaultSafetyMargin = decimal.NewFromFloat(0.95)

// Config workflow parameters
type Config struct {
	// WrapAmount native wei wrapped and supplied as collateral
	WrapAmount   *big.Int
	SafetyMargin decimal.Decimal
	RateMode     *big.Int
}

// Workflow wrap -> deposit -> borrow -> repay pipeline for one network
type Workflow struct {
	profile  *core.NetworkProfile
	config   Config
	tokens   core.ITokenService
	guard    core.IApprovalGuard
	pools    core.ILendingPoolService
	accounts core.IAccountService
	oracle   core.IPriceOracleService
	newRunID func() string
	now      func() time.Time
}

// New new workflow bound to profile, profile and config errors are core.ErrConfiguration
func New(
	profile *core.NetworkProfile,
	cfg Config,
	tokens core.ITokenService,
	guard core.IApprovalGuard,
	pools core.ILendingPoolService,
	accounts core.IAccountService,
	oracle core.IPriceOracleService,
) (*Workflow, error) {
	if profile == nil {
		return nil, core.NewError(core.ErrConfiguration, "config", errors.New("no network profile"))
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	cfg.SafetyMargin = profile.Margin(cfg.SafetyMargin)
	if cfg.SafetyMargin.IsZero() {
		cfg.SafetyMargin = DefaultSafetyMargin
	}

	if !cfg.SafetyMargin.IsPositive() || cfg.SafetyMargin.GreaterThan(decimal.NewFromInt(1)) {
		return nil, core.NewError(core.ErrConfiguration, "config", fmt.Errorf("safety margin %s outside (0, 1]", cfg.SafetyMargin))
	}

	if cfg.WrapAmount == nil || cfg.WrapAmount.Sign() <= 0 {
		return nil, core.NewError(core.ErrConfiguration, "config", errors.New("wrap amount must be positive"))
	}

	if cfg.RateMode == nil || cfg.RateMode.Sign() <= 0 {
		cfg.RateMode = big.NewInt(1)
	}

	return &Workflow{
		profile:  profile,
		config:   cfg,
		tokens:   tokens,
		guard:    guard,
		pools:    pools,
		accounts: accounts,
		oracle:   oracle,
		newRunID: id.GenTraceID,
		now:      time.Now,
	}, nil
}

// Config effective config after profile overrides
func (w *Workflow) Config() Config {
	return w.config
}

// run state flowing from one stage to the next
type run struct {
	wallet   *core.Wallet
	base     core.Asset
	borrow   core.Asset
	pool     common.Address
	position *core.AccountPosition
	price    *core.Price
	plan     *core.BorrowPlan
	report   *core.Report
}

type stage struct {
	name string
	do   func(ctx context.Context, r *run) (*core.PendingTransaction, error)
}

func (w *Workflow) stages() []stage {
	return []stage{
		{StagePool, w.resolvePool},
		{StageWrap, w.wrap},
		{StageApproveCollateral, w.approveCollateral},
		{StageDeposit, w.deposit},
		{StagePosition, w.readPosition},
		{StagePrice, w.readPrice},
		{StagePlan, w.computePlan},
		{StageApproveBorrow, w.approveBorrow},
		{StageBorrow, w.borrowPlan},
		{StagePositionBorrowed, w.readPosition},
		{StageApproveRepay, w.approveBorrow},
		{StageRepay, w.repayPlan},
		{StagePositionRepaid, w.readPosition},
	}
}

// Run executes every stage in order and stops at the first failure. The failing error
// is reported unchanged. ctx cancellation is observed between stages only.
func (w *Workflow) Run(ctx context.Context, wallet *core.Wallet) *core.Report {
	report := &core.Report{
		RunID:     w.newRunID(),
		Network:   w.profile.Name,
		StartedAt: w.now(),
		Steps:     []*core.StepReport{},
	}

	defer func() {
		report.FinishedAt = w.now()
	}()

	if wallet == nil {
		report.Abort("config", core.NewError(core.ErrConfiguration, "config", errors.New("no wallet")))
		return report
	}

	report.Account = wallet.Address.Hex()

	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"run":     report.RunID,
		"network": report.Network,
		"account": report.Account,
	})
	ctx = logger.WithContext(ctx, log)

	r := &run{wallet: wallet, report: report}

	var err error
	if r.base, err = w.profile.Asset(core.AssetRoleBase); err != nil {
		report.Abort("config", err)
		return report
	}

	if r.borrow, err = w.profile.Asset(core.AssetRoleBorrow); err != nil {
		report.Abort("config", err)
		return report
	}

	for _, s := range w.stages() {
		if err := ctx.Err(); err != nil {
			report.Abort(s.name, core.NewError(core.ErrCanceled, s.name, err))
			log.WithError(err).Warnln("run abandoned before", s.name)
			return report
		}

		step := &core.StepReport{
			Name:      s.name,
			StartedAt: w.now(),
		}

		tx, err := s.do(ctx, r)
		step.FinishedAt = w.now()
		step.Duration = step.FinishedAt.Sub(step.StartedAt)
		if tx != nil && tx.Hash != (common.Hash{}) {
			step.TxHash = tx.Hash.Hex()
		}

		report.Steps = append(report.Steps, step)

		if err != nil {
			step.Status = core.StepStatusFailed
			step.ErrorCode = core.CodeOf(err)
			step.Error = err.Error()
			report.Abort(s.name, err)
			log.WithError(err).Errorln("aborted at", s.name)
			return report
		}

		step.Status = core.StepStatusOK
		log.WithField("stage", s.name).Debugln("done")
	}

	report.Status = core.RunStatusCompleted
	return report
}

func (w *Workflow) resolvePool(ctx context.Context, r *run) (*core.PendingTransaction, error) {
	pool, err := w.pools.PoolAddress(ctx, w.profile.LendingPoolAddressesProvider)
	if err != nil {
		return nil, err
	}

	r.pool = pool
	return nil, nil
}

func (w *Workflow) wrap(ctx context.Context, r *run) (*core.PendingTransaction, error) {
	return w.tokens.Wrap(ctx, r.wallet, r.base.Address, w.config.WrapAmount)
}

func (w *Workflow) approveCollateral(ctx context.Context, r *run) (*core.PendingTransaction, error) {
	return w.guard.EnsureAllowance(ctx, r.wallet, r.base.Address, r.pool, w.config.WrapAmount)
}

func (w *Workflow) deposit(ctx context.Context, r *run) (*core.PendingTransaction, error) {
	return w.pools.Deposit(ctx, r.wallet, r.pool, r.base, w.config.WrapAmount)
}

func (w *Workflow) readPosition(ctx context.Context, r *run) (*core.PendingTransaction, error) {
	position, err := w.accounts.GetPosition(ctx, r.pool, r.wallet.Address)
	if err != nil {
		return nil, err
	}

	r.position = position
	r.report.Positions = append(r.report.Positions, position)
	return nil, nil
}

func (w *Workflow) readPrice(ctx context.Context, r *run) (*core.PendingTransaction, error) {
	price, err := w.oracle.GetLatestPrice(ctx, r.borrow.PriceFeed)
	if err != nil {
		return nil, err
	}

	r.price = price
	return nil, nil
}

func (w *Workflow) computePlan(ctx context.Context, r *run) (*core.PendingTransaction, error) {
	plan, err := lending.Plan(r.position, r.price, r.borrow, w.config.SafetyMargin)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Infoln("borrow plan", plan.Amount, r.borrow.Symbol)
	r.plan = plan
	r.report.Plan = plan
	return nil, nil
}

// approveBorrow approves the planned amount of the borrow asset, once before borrowing and
// once before repaying
func (w *Workflow) approveBorrow(ctx context.Context, r *run) (*core.PendingTransaction, error) {
	return w.guard.EnsureAllowance(ctx, r.wallet, r.borrow.Address, r.pool, r.plan.Amount)
}

func (w *Workflow) borrowPlan(ctx context.Context, r *run) (*core.PendingTransaction, error) {
	return w.pools.Borrow(ctx, r.wallet, r.pool, r.borrow, r.plan.Amount, w.config.RateMode)
}

func (w *Workflow) repayPlan(ctx context.Context, r *run) (*core.PendingTransaction, error) {
	return w.pools.Repay(ctx, r.wallet, r.pool, r.borrow, r.plan.Amount, w.config.RateMode)
}
