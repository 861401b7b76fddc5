package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"lendflow/core"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/fox-one/pkg/logger"
)

// Backend the subset of the ethereum rpc used by lendflow, satisfied by *ethclient.Client
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// Dial connects to the node rpc endpoint
func Dial(ctx context.Context, endpoint string) (*ethclient.Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, errors.New("node endpoint required")
	}

	return ethclient.DialContext(ctx, trimmed)
}

// Client contract calls and signed transactions over a Backend
type Client struct {
	backend Backend
	chainID *big.Int
}

// New new chain client, chainID is read from the node once
func New(ctx context.Context, backend Backend) (*Client, error) {
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read chain id: %w", err)
	}

	return &Client{
		backend: backend,
		chainID: chainID,
	}, nil
}

// ChainID chain id of the node
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Call executes a read only method against the latest block
func (c *Client) Call(ctx context.Context, contract common.Address, a abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := a.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty result from %s", method, contract.Hex())
	}

	return a.Unpack(method, out)
}

// Transact signs and sends a method call from wallet, it does not wait for the receipt
func (c *Client) Transact(ctx context.Context, from *core.Wallet, contract common.Address, value *big.Int, a abi.ABI, method string, args ...interface{}) (*types.Transaction, error) {
	if from == nil || from.PrivateKey == nil {
		return nil, errors.New("wallet not unlocked")
	}

	data, err := a.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	if value == nil {
		value = new(big.Int)
	}

	log := logger.FromContext(ctx).WithField("method", method)

	nonce, err := c.backend.PendingNonceAt(ctx, from.Address)
	if err != nil {
		return nil, fmt.Errorf("read nonce: %w", err)
	}

	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}

	// estimation runs the call, a revert surfaces here with the contract's reason
	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  from.Address,
		To:    &contract,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, err
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &contract,
		Value:    value,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), from.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("sign %s: %w", method, err)
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, err
	}

	log.WithField("tx", signed.Hash().Hex()).Debugln("transaction sent")
	return signed, nil
}

// Caller read only contract calls, implemented by Client
type Caller interface {
	Call(ctx context.Context, contract common.Address, a abi.ABI, method string, args ...interface{}) ([]interface{}, error)
}

// Transactor signed contract calls, implemented by Client
type Transactor interface {
	Transact(ctx context.Context, from *core.Wallet, contract common.Address, value *big.Int, a abi.ABI, method string, args ...interface{}) (*types.Transaction, error)
}
