package pool

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
	out []interface{}
	err error
}

func (f *fakeCaller) Call(ctx context.Context, contract common.Address, a abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	return f.out, f.err
}

type fakeTransactor struct {
	methods []string
	args    [][]interface{}
}

func (f *fakeTransactor) Transact(ctx context.Context, from *core.Wallet, contract common.Address, value *big.Int, a abi.ABI, method string, args ...interface{}) (*types.Transaction, error) {
	f.methods = append(f.methods, method)
	f.args = append(f.args, args)
	return types.NewTx(&types.LegacyTx{Nonce: uint64(len(f.methods))}), nil
}

type fakeTokens struct {
	core.ITokenService
	allowance *big.Int
}

func (f *fakeTokens) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	return f.allowance, nil
}

// fakeSteps runs the check and the submit, nothing else
type fakeSteps struct{}

func (fakeSteps) Execute(ctx context.Context, call *core.StepCall) (*core.PendingTransaction, error) {
	tx := core.NewPendingTransaction(call.Name, call.Asset, call.Amount, call.Account)
	if call.Check != nil {
		if err := call.Check(ctx); err != nil {
			_ = tx.Transition(core.TransactionStatusFailed)
			return tx, core.NewError(core.ErrStepFailed, call.Name, err)
		}
	}

	if _, err := call.Submit(ctx); err != nil {
		return tx, core.NewError(core.ErrStepFailed, call.Name, err)
	}

	_ = tx.Transition(core.TransactionStatusSubmitted)
	_ = tx.Transition(core.TransactionStatusConfirmed)
	return tx, nil
}

var (
	registry = common.HexToAddress("0xB53C1a33016B2DC2fF3653530bfF1848a515c8c5")
	lending  = common.HexToAddress("0x7d2768dE32b0b80b7a3454c06BdAc94A69DDc7A9")
	dai      = core.Asset{Symbol: "DAI", Address: common.HexToAddress("0x6b175474e89094c44da98b954eedeac495271d0f"), Decimals: 18}
	wallet   = &core.Wallet{Address: common.HexToAddress("0x0d")}
)

func TestPoolAddress(t *testing.T) {
	s := New(&fakeCaller{out: []interface{}{lending}}, &fakeTransactor{}, &fakeTokens{}, fakeSteps{}, Config{})

	address, err := s.PoolAddress(context.Background(), registry)
	require.NoError(t, err)
	assert.Equal(t, lending, address)
}

func TestPoolAddressFailed(t *testing.T) {
	cases := map[string]*fakeCaller{
		"call error": {err: errors.New("no contract code")},
		"zero":       {out: []interface{}{common.Address{}}},
		"empty":      {},
	}

	for name, caller := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(caller, &fakeTransactor{}, &fakeTokens{}, fakeSteps{}, Config{}).PoolAddress(context.Background(), registry)
			assert.True(t, errors.Is(err, core.ErrRegistryLookupFailed))
		})
	}
}

func TestDepositRequiresAllowance(t *testing.T) {
	transactor := &fakeTransactor{}
	s := New(&fakeCaller{}, transactor, &fakeTokens{allowance: big.NewInt(4)}, fakeSteps{}, Config{})

	_, err := s.Deposit(context.Background(), wallet, lending, dai, big.NewInt(5))
	assert.True(t, errors.Is(err, core.ErrInsufficientAllowance))
	assert.Empty(t, transactor.methods)

	_, err = s.Deposit(context.Background(), wallet, lending, dai, big.NewInt(4))
	require.NoError(t, err)
	assert.Equal(t, []string{"deposit"}, transactor.methods)
	assert.Equal(t, []interface{}{dai.Address, big.NewInt(4), wallet.Address, uint16(0)}, transactor.args[0])
}

func TestBorrowAndRepay(t *testing.T) {
	transactor := &fakeTransactor{}
	s := New(&fakeCaller{}, transactor, &fakeTokens{allowance: big.NewInt(100)}, fakeSteps{}, Config{ReferralCode: 7})

	rateMode := big.NewInt(1)
	_, err := s.Borrow(context.Background(), wallet, lending, dai, big.NewInt(100), rateMode)
	require.NoError(t, err)

	tx, err := s.Repay(context.Background(), wallet, lending, dai, big.NewInt(100), rateMode)
	require.NoError(t, err)
	assert.Equal(t, StepRepay, tx.Step)

	assert.Equal(t, []string{"borrow", "repay"}, transactor.methods)
	assert.Equal(t, []interface{}{dai.Address, big.NewInt(100), rateMode, uint16(7), wallet.Address}, transactor.args[0])
	assert.Equal(t, []interface{}{dai.Address, big.NewInt(100), rateMode, wallet.Address}, transactor.args[1])
}
