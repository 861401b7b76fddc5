package chain

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"lendflow/core"
	"lendflow/pkg/contracts"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu sync.Mutex

	chainID    *big.Int
	callOutput []byte
	callErr    error
	estimate   error
	sent       []*types.Transaction

	// receipts returned in order, nil means not found yet
	receipts []*types.Receipt
	head     int64
}

func (f *fakeBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return f.chainID, nil
}

func (f *fakeBackend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return f.callOutput, f.callErr
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1e9), nil
}

func (f *fakeBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	if f.estimate != nil {
		return 0, f.estimate
	}

	return 50000, nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.receipts) == 0 {
		return nil, ethereum.NotFound
	}

	r := f.receipts[0]
	if len(f.receipts) > 1 {
		f.receipts = f.receipts[1:]
	}

	if r == nil {
		return nil, ethereum.NotFound
	}

	return r, nil
}

// HeaderByNumber every call mines one block
func (f *fakeBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.head++
	return &types.Header{Number: big.NewInt(f.head)}, nil
}

func newClient(t *testing.T, backend *fakeBackend) *Client {
	if backend.chainID == nil {
		backend.chainID = big.NewInt(31337)
	}

	c, err := New(context.Background(), backend)
	require.NoError(t, err)
	return c
}

func TestWaitConfirmedDepth(t *testing.T) {
	backend := &fakeBackend{
		receipts: []*types.Receipt{nil, nil, {Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(10)}},
		head:     9,
	}
	c := newClient(t, backend)

	receipt, err := c.WaitConfirmed(context.Background(), common.HexToHash("0x01"), 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(10), receipt.BlockNumber.Int64())
	// head 10, 11, 12 gives 1, 2, 3 confirmations
	assert.Equal(t, int64(12), backend.head)
}

func TestWaitConfirmedReverted(t *testing.T) {
	backend := &fakeBackend{
		receipts: []*types.Receipt{{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(3)}},
	}
	c := newClient(t, backend)

	_, err := c.WaitConfirmed(context.Background(), common.HexToHash("0x02"), 1, time.Millisecond)
	assert.True(t, errors.Is(err, core.ErrTransactionReverted))
}

func TestWaitConfirmedTimeout(t *testing.T) {
	c := newClient(t, &fakeBackend{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.WaitConfirmed(ctx, common.HexToHash("0x03"), 1, time.Millisecond)
	assert.True(t, errors.Is(err, core.ErrConfirmationTimeout))
}

func TestWaitConfirmedCanceled(t *testing.T) {
	c := newClient(t, &fakeBackend{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.WaitConfirmed(ctx, common.HexToHash("0x04"), 1, time.Millisecond)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCall(t *testing.T) {
	output, err := contracts.ERC20.Methods["balanceOf"].Outputs.Pack(big.NewInt(123))
	require.NoError(t, err)

	c := newClient(t, &fakeBackend{callOutput: output})
	out, err := c.Call(context.Background(), common.HexToAddress("0x05"), contracts.ERC20, "balanceOf", common.HexToAddress("0x06"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(123), out[0].(*big.Int).Int64())
}

func TestCallEmptyResult(t *testing.T) {
	c := newClient(t, &fakeBackend{})
	_, err := c.Call(context.Background(), common.HexToAddress("0x05"), contracts.ERC20, "decimals")
	assert.Error(t, err)
}

func TestTransact(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	wallet := &core.Wallet{Address: crypto.PubkeyToAddress(key.PublicKey), PrivateKey: key}
	backend := &fakeBackend{}
	c := newClient(t, backend)

	token := common.HexToAddress("0x07")
	tx, err := c.Transact(context.Background(), wallet, token, big.NewInt(5), contracts.ERC20, "deposit")
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)

	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, uint64(50000), tx.Gas())
	assert.Equal(t, token, *tx.To())
	assert.Equal(t, int64(5), tx.Value().Int64())

	sender, err := types.Sender(types.LatestSignerForChainID(c.ChainID()), tx)
	require.NoError(t, err)
	assert.Equal(t, wallet.Address, sender)
}

func TestTransactEstimateRevert(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	wallet := &core.Wallet{Address: crypto.PubkeyToAddress(key.PublicKey), PrivateKey: key}
	cause := errors.New("execution reverted: 11")
	backend := &fakeBackend{estimate: cause}
	c := newClient(t, backend)

	_, err = c.Transact(context.Background(), wallet, common.HexToAddress("0x08"), nil, contracts.ERC20, "approve", common.HexToAddress("0x09"), big.NewInt(1))
	assert.Equal(t, cause, err)
	assert.Empty(t, backend.sent)
}

func TestTransactLockedWallet(t *testing.T) {
	c := newClient(t, &fakeBackend{})
	_, err := c.Transact(context.Background(), &core.Wallet{}, common.HexToAddress("0x08"), nil, contracts.ERC20, "deposit")
	assert.Error(t, err)
}
