package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"lendflow/core"
	"lendflow/pkg/contracts"
	"lendflow/service/chain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cast"
)

const step = "price"

// Config price service config
type Config struct {
	// MaxAge rounds older than this are stale, 0 disables the check
	MaxAge time.Duration
}

// PriceService chainlink style aggregator reader
type PriceService struct {
	caller chain.Caller
	config Config
	now    func() time.Time
}

// New new oracle price service
func New(caller chain.Caller, cfg Config) core.IPriceOracleService {
	return &PriceService{
		caller: caller,
		config: cfg,
		now:    time.Now,
	}
}

// GetLatestPrice latest round answer of feed. Errors, non positive answers and stale
// rounds are all core.ErrOracleUnavailable, the price is never propagated in those cases.
func (s *PriceService) GetLatestPrice(ctx context.Context, feed common.Address) (*core.Price, error) {
	log := logger.FromContext(ctx).WithField("feed", feed.Hex())

	unavailable := func(err error) (*core.Price, error) {
		log.WithError(err).Errorln("price unavailable")
		return nil, core.NewError(core.ErrOracleUnavailable, step, err)
	}

	out, err := s.caller.Call(ctx, feed, contracts.Aggregator, "latestRoundData")
	if err != nil {
		return unavailable(err)
	}

	if len(out) < 4 {
		return unavailable(fmt.Errorf("latestRoundData: %d fields", len(out)))
	}

	roundID, _ := out[0].(*big.Int)
	answer, ok := out[1].(*big.Int)
	if !ok || answer == nil {
		return unavailable(fmt.Errorf("latestRoundData: unexpected answer %T", out[1]))
	}

	if answer.Sign() <= 0 {
		return unavailable(fmt.Errorf("non positive answer %s", answer))
	}

	updated, _ := out[3].(*big.Int)
	if updated == nil || updated.Sign() == 0 {
		return unavailable(errors.New("round not complete"))
	}

	updatedAt := time.Unix(updated.Int64(), 0)
	if s.config.MaxAge > 0 {
		if age := s.now().Sub(updatedAt); age > s.config.MaxAge {
			return unavailable(fmt.Errorf("stale price, updated %s ago", age.Truncate(time.Second)))
		}
	}

	out, err = s.caller.Call(ctx, feed, contracts.Aggregator, "decimals")
	if err != nil {
		return unavailable(err)
	}

	if len(out) == 0 {
		return unavailable(errors.New("decimals: empty result"))
	}

	decimals, err := cast.ToUint8E(out[0])
	if err != nil {
		return unavailable(err)
	}

	price := &core.Price{
		Feed:      feed,
		RoundID:   roundID,
		Answer:    answer,
		Decimals:  decimals,
		UpdatedAt: updatedAt,
	}

	log.WithField("round", roundID).Infoln("price", answer, "decimals", decimals)
	return price, nil
}
