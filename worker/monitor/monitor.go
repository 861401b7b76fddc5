package monitor

import (
	"context"
	"errors"
	"time"

	"lendflow/core"
	"lendflow/pkg/number"
	"lendflow/worker"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// DefaultSpec every minute
const DefaultSpec = "@every 1m"

// ErrBelowThreshold health factor under the configured threshold
var ErrBelowThreshold = errors.New("health factor below threshold")

// Config monitor config
type Config struct {
	Spec      string
	Location  string
	Registry  common.Address
	Accounts  []common.Address
	Threshold decimal.Decimal
}

// Monitor periodically reads positions and warns on low health factors
type Monitor struct {
	worker.BaseJob
	config   Config
	pools    core.ILendingPoolService
	accounts core.IAccountService
}

// New new monitor job
func New(ctx context.Context, cfg Config, pools core.ILendingPoolService, accounts core.IAccountService) (*Monitor, error) {
	m := &Monitor{
		config:   cfg,
		pools:    pools,
		accounts: accounts,
	}

	l, err := time.LoadLocation(cfg.Location)
	if err != nil {
		l = time.UTC
	}

	spec := cfg.Spec
	if spec == "" {
		spec = DefaultSpec
	}

	m.Cron = cron.New(cron.WithLocation(l))
	if _, err := m.Cron.AddFunc(spec, m.Run); err != nil {
		return nil, err
	}

	m.OnWork = func() error {
		return m.onWork(ctx)
	}

	return m, nil
}

func (m *Monitor) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "monitor")

	pool, err := m.pools.PoolAddress(ctx, m.config.Registry)
	if err != nil {
		log.WithError(err).Errorln("resolve pool")
		return err
	}

	var last error
	for _, account := range m.config.Accounts {
		if err := m.check(ctx, pool, account); err != nil {
			last = err
		}
	}

	return last
}

func (m *Monitor) check(ctx context.Context, pool, account common.Address) error {
	log := logger.FromContext(ctx).WithField("worker", "monitor").WithField("account", account.Hex())

	position, err := m.accounts.GetPosition(ctx, pool, account)
	if err != nil {
		log.WithError(err).Errorln("read position")
		return err
	}

	health := number.FromUnits(position.HealthFactor, 18)
	entry := log.WithField("health_factor", health.Truncate(4).String()).
		WithField("collateral", number.Format(position.TotalCollateral, position.Decimals, 6)).
		WithField("debt", number.Format(position.TotalDebt, position.Decimals, 6))

	if !HealthBelow(position, m.config.Threshold) {
		entry.Infoln("position healthy")
		return nil
	}

	entry.Warnln("health factor below", m.config.Threshold)
	return ErrBelowThreshold
}

// HealthBelow debt is open and the health factor is under threshold
func HealthBelow(position *core.AccountPosition, threshold decimal.Decimal) bool {
	if position.TotalDebt == nil || position.TotalDebt.Sign() == 0 {
		return false
	}

	if !threshold.IsPositive() {
		return false
	}

	return number.FromUnits(position.HealthFactor, 18).LessThan(threshold)
}
