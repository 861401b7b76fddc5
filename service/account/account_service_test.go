package account

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"lendflow/core"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	out   []interface{}
	err   error
	calls int
}

func (f *fakeCaller) Call(ctx context.Context, contract common.Address, a abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	f.calls++
	return f.out, f.err
}

func values(vs ...int64) []interface{} {
	out := make([]interface{}, 0, len(vs))
	for _, v := range vs {
		out = append(out, big.NewInt(v))
	}

	return out
}

func TestGetPosition(t *testing.T) {
	caller := &fakeCaller{out: values(100, 20, 55, 8250, 7500, 3)}
	s := New(caller, 0)

	account := common.HexToAddress("0x0a")
	position, err := s.GetPosition(context.Background(), common.HexToAddress("0x0b"), account)
	require.NoError(t, err)

	assert.Equal(t, account, position.Account)
	assert.Equal(t, int64(100), position.TotalCollateral.Int64())
	assert.Equal(t, int64(20), position.TotalDebt.Int64())
	assert.Equal(t, int64(55), position.AvailableBorrows.Int64())
	assert.Equal(t, int64(8250), position.LiquidationThreshold.Int64())
	assert.Equal(t, int64(7500), position.LTV.Int64())
	assert.Equal(t, int64(3), position.HealthFactor.Int64())
	assert.Equal(t, core.DefaultReferenceDecimals, position.Decimals)

	// never cached
	_, err = s.GetPosition(context.Background(), common.HexToAddress("0x0b"), account)
	require.NoError(t, err)
	assert.Equal(t, 2, caller.calls)
}

func TestGetPositionFailed(t *testing.T) {
	cases := map[string]*fakeCaller{
		"call error": {err: errors.New("header not found")},
		"short":      {out: values(1, 2, 3)},
		"wrong type": {out: []interface{}{big.NewInt(1), big.NewInt(1), "x", big.NewInt(1), big.NewInt(1), big.NewInt(1)}},
	}

	for name, caller := range cases {
		t.Run(name, func(t *testing.T) {
			position, err := New(caller, 18).GetPosition(context.Background(), common.Address{}, common.Address{})
			assert.Nil(t, position)
			assert.True(t, errors.Is(err, core.ErrPositionReadFailed))
			assert.Equal(t, "position", core.StepOf(err))
		})
	}
}
