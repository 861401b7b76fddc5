package token

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"lendflow/core"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	out   map[string][]interface{}
	calls map[string]int
}

func (f *fakeCaller) Call(ctx context.Context, contract common.Address, a abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}

	f.calls[method]++
	return f.out[method], nil
}

type transaction struct {
	contract common.Address
	value    *big.Int
	method   string
	args     []interface{}
}

type fakeTransactor struct {
	sent []transaction
}

func (f *fakeTransactor) Transact(ctx context.Context, from *core.Wallet, contract common.Address, value *big.Int, a abi.ABI, method string, args ...interface{}) (*types.Transaction, error) {
	f.sent = append(f.sent, transaction{contract: contract, value: value, method: method, args: args})
	return types.NewTx(&types.LegacyTx{Nonce: uint64(len(f.sent))}), nil
}

// fakeSteps submits and confirms immediately unless err is set
type fakeSteps struct {
	calls []*core.StepCall
	err   error
}

func (f *fakeSteps) Execute(ctx context.Context, call *core.StepCall) (*core.PendingTransaction, error) {
	f.calls = append(f.calls, call)
	tx := core.NewPendingTransaction(call.Name, call.Asset, call.Amount, call.Account)

	signed, err := call.Submit(ctx)
	if err != nil {
		return tx, err
	}

	tx.Hash = signed.Hash()
	_ = tx.Transition(core.TransactionStatusSubmitted)
	if f.err != nil {
		_ = tx.Transition(core.TransactionStatusFailed)
		return tx, core.NewError(core.ErrStepFailed, call.Name, f.err)
	}

	_ = tx.Transition(core.TransactionStatusConfirmed)
	return tx, nil
}

var (
	weth   = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	pool   = common.HexToAddress("0x7d2768dE32b0b80b7a3454c06BdAc94A69DDc7A9")
	wallet = &core.Wallet{Address: common.HexToAddress("0x0c")}
)

func TestDecimalsCached(t *testing.T) {
	caller := &fakeCaller{out: map[string][]interface{}{"decimals": {uint8(6)}}}
	s := New(caller, &fakeTransactor{}, &fakeSteps{})

	for i := 0; i < 3; i++ {
		d, err := s.Decimals(context.Background(), weth)
		require.NoError(t, err)
		assert.Equal(t, uint8(6), d)
	}

	assert.Equal(t, 1, caller.calls["decimals"])
}

func TestAllowanceAndBalance(t *testing.T) {
	caller := &fakeCaller{out: map[string][]interface{}{
		"allowance": {big.NewInt(9)},
		"balanceOf": {big.NewInt(11)},
	}}
	s := New(caller, &fakeTransactor{}, &fakeSteps{})

	allowance, err := s.Allowance(context.Background(), weth, wallet.Address, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(9), allowance.Int64())

	balance, err := s.BalanceOf(context.Background(), weth, wallet.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(11), balance.Int64())

	_, err = New(&fakeCaller{}, &fakeTransactor{}, &fakeSteps{}).BalanceOf(context.Background(), weth, wallet.Address)
	assert.Error(t, err)
}

func TestApprove(t *testing.T) {
	transactor := &fakeTransactor{}
	steps := &fakeSteps{}
	s := New(&fakeCaller{}, transactor, steps)

	tx, err := s.Approve(context.Background(), wallet, weth, pool, big.NewInt(0))
	require.NoError(t, err)
	assert.True(t, tx.Confirmed())

	require.Len(t, steps.calls, 1)
	assert.True(t, steps.calls[0].AllowZero)
	assert.Equal(t, StepApprove, steps.calls[0].Name)

	require.Len(t, transactor.sent, 1)
	assert.Equal(t, "approve", transactor.sent[0].method)
	assert.Equal(t, weth, transactor.sent[0].contract)
	assert.Equal(t, []interface{}{pool, big.NewInt(0)}, transactor.sent[0].args)
}

func TestWrap(t *testing.T) {
	transactor := &fakeTransactor{}
	s := New(&fakeCaller{}, transactor, &fakeSteps{})

	amount := big.NewInt(20000000000000000)
	_, err := s.Wrap(context.Background(), wallet, weth, amount)
	require.NoError(t, err)

	require.Len(t, transactor.sent, 1)
	assert.Equal(t, "deposit", transactor.sent[0].method)
	assert.Equal(t, amount, transactor.sent[0].value)
	assert.Empty(t, transactor.sent[0].args)
}

func TestEnsureAllowance(t *testing.T) {
	guard := NewApprovalGuard(New(&fakeCaller{}, &fakeTransactor{}, &fakeSteps{}))

	tx, err := guard.EnsureAllowance(context.Background(), wallet, weth, pool, big.NewInt(5))
	require.NoError(t, err)
	assert.True(t, tx.Confirmed())
}

func TestEnsureAllowanceFailed(t *testing.T) {
	steps := &fakeSteps{err: core.ErrTransactionReverted}
	guard := NewApprovalGuard(New(&fakeCaller{}, &fakeTransactor{}, steps))

	tx, err := guard.EnsureAllowance(context.Background(), wallet, weth, pool, big.NewInt(5))
	assert.True(t, errors.Is(err, core.ErrApprovalFailed))
	assert.False(t, errors.Is(err, core.ErrStepFailed))
	assert.True(t, errors.Is(err, core.ErrTransactionReverted))
	assert.Equal(t, StepApprove, core.StepOf(err))
	assert.Equal(t, core.TransactionStatusFailed, tx.Status)
}
