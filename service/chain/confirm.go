package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"lendflow/core"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/fox-one/pkg/logger"
)

// DefaultPollInterval receipt polling interval
const DefaultPollInterval = time.Second

// WaitConfirmed polls until hash is included and buried under depth blocks.
//
// A failed receipt returns core.ErrTransactionReverted. The wait ends only when ctx is done,
// a deadline is reported as core.ErrConfirmationTimeout.
func (c *Client) WaitConfirmed(ctx context.Context, hash common.Hash, depth uint64, poll time.Duration) (*types.Receipt, error) {
	log := logger.FromContext(ctx).WithField("tx", hash.Hex())

	if poll <= 0 {
		poll = DefaultPollInterval
	}

	if depth == 0 {
		depth = 1
	}

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s", core.ErrConfirmationTimeout, hash.Hex())
			}
			return nil, ctx.Err()
		case <-time.After(dur):
			dur = poll

			receipt, err := c.backend.TransactionReceipt(ctx, hash)
			if err != nil {
				if errors.Is(err, ethereum.NotFound) {
					continue
				}

				if ctx.Err() != nil {
					// loop again to report the context error
					continue
				}

				log.WithError(err).Errorln("TransactionReceipt failed")
				return nil, err
			}

			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, fmt.Errorf("%w: %s in block %v", core.ErrTransactionReverted, hash.Hex(), receipt.BlockNumber)
			}

			confirmed, err := c.confirmations(ctx, receipt)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}

				return nil, err
			}

			if confirmed >= depth {
				return receipt, nil
			}

			log.Debugf("%d/%d confirmations", confirmed, depth)
		}
	}
}

func (c *Client) confirmations(ctx context.Context, receipt *types.Receipt) (uint64, error) {
	if receipt.BlockNumber == nil {
		return 0, nil
	}

	header, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("fetch head: %w", err)
	}

	if header == nil || header.Number == nil {
		return 0, errors.New("block metadata unavailable")
	}

	if header.Number.Cmp(receipt.BlockNumber) < 0 {
		return 0, nil
	}

	confirmed := new(big.Int).Sub(header.Number, receipt.BlockNumber)
	confirmed.Add(confirmed, big.NewInt(1))
	return confirmed.Uint64(), nil
}
