package oracle

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"lendflow/core"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	outputs map[string][]interface{}
	err     error
}

func (f *fakeCaller) Call(ctx context.Context, contract common.Address, a abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.outputs[method], nil
}

var (
	feed = common.HexToAddress("0x773616E4d11A78F511299002da57A0a94577F1f4")
	now  = time.Unix(1700000000, 0)
)

func round(answer int64, updatedAt time.Time) *fakeCaller {
	return &fakeCaller{outputs: map[string][]interface{}{
		"latestRoundData": {
			big.NewInt(92233720368547),
			big.NewInt(answer),
			big.NewInt(updatedAt.Unix()),
			big.NewInt(updatedAt.Unix()),
			big.NewInt(92233720368547),
		},
		"decimals": {uint8(18)},
	}}
}

func newService(caller *fakeCaller, maxAge time.Duration) *PriceService {
	s := New(caller, Config{MaxAge: maxAge}).(*PriceService)
	s.now = func() time.Time { return now }
	return s
}

func TestGetLatestPrice(t *testing.T) {
	s := newService(round(500000000000000, now.Add(-time.Minute)), time.Hour)

	price, err := s.GetLatestPrice(context.Background(), feed)
	require.NoError(t, err)
	assert.Equal(t, int64(500000000000000), price.Answer.Int64())
	assert.Equal(t, uint8(18), price.Decimals)
	assert.Equal(t, feed, price.Feed)
	assert.Equal(t, now.Add(-time.Minute).Unix(), price.UpdatedAt.Unix())
}

func TestGetLatestPriceUnavailable(t *testing.T) {
	cases := map[string]*fakeCaller{
		"zero":       round(0, now),
		"negative":   round(-1, now),
		"stale":      round(1, now.Add(-2*time.Hour)),
		"incomplete": round(1, time.Unix(0, 0)),
		"call error": {err: errors.New("connection refused")},
		"short":      {outputs: map[string][]interface{}{"latestRoundData": {big.NewInt(1)}}},
	}

	for name, caller := range cases {
		t.Run(name, func(t *testing.T) {
			price, err := newService(caller, time.Hour).GetLatestPrice(context.Background(), feed)
			assert.Nil(t, price)
			assert.True(t, errors.Is(err, core.ErrOracleUnavailable))
			assert.Equal(t, "price", core.StepOf(err))
		})
	}
}

func TestGetLatestPriceNoMaxAge(t *testing.T) {
	s := newService(round(1, now.Add(-30*24*time.Hour)), 0)

	_, err := s.GetLatestPrice(context.Background(), feed)
	assert.NoError(t, err)
}
