package core

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TransactionStatus step state
type TransactionStatus int

const (
	TransactionStatusBuilt TransactionStatus = iota
	TransactionStatusSubmitted
	TransactionStatusConfirmed
	TransactionStatusFailed
)

func (s TransactionStatus) String() string {
	switch s {
	case TransactionStatusBuilt:
		return "built"
	case TransactionStatusSubmitted:
		return "submitted"
	case TransactionStatusConfirmed:
		return "confirmed"
	case TransactionStatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// PendingTransaction a state changing call owned by the step that submitted it
type PendingTransaction struct {
	Step        string              `json:"step"`
	Asset       common.Address      `json:"asset"`
	Amount      *big.Int            `json:"amount"`
	Account     common.Address      `json:"account"`
	Hash        common.Hash         `json:"hash,omitempty"`
	Status      TransactionStatus   `json:"status"`
	History     []TransactionStatus `json:"history"`
	BlockNumber uint64              `json:"block_number,omitempty"`
	SubmittedAt time.Time           `json:"submitted_at,omitempty"`
	ConfirmedAt time.Time           `json:"confirmed_at,omitempty"`
}

// NewPendingTransaction a transaction in Built state
func NewPendingTransaction(step string, asset common.Address, amount *big.Int, account common.Address) *PendingTransaction {
	return &PendingTransaction{
		Step:    step,
		Asset:   asset,
		Amount:  amount,
		Account: account,
		Status:  TransactionStatusBuilt,
		History: []TransactionStatus{TransactionStatusBuilt},
	}
}

var transitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusBuilt:     {TransactionStatusSubmitted, TransactionStatusFailed},
	TransactionStatusSubmitted: {TransactionStatusConfirmed, TransactionStatusFailed},
}

// Transition moves to next, rejecting transitions the state machine does not have
func (t *PendingTransaction) Transition(next TransactionStatus) error {
	for _, s := range transitions[t.Status] {
		if s == next {
			t.Status = next
			t.History = append(t.History, next)
			return nil
		}
	}

	return fmt.Errorf("%s: invalid transition %s -> %s", t.Step, t.Status, next)
}

// Confirmed reached Confirmed
func (t *PendingTransaction) Confirmed() bool {
	return t.Status == TransactionStatusConfirmed
}

// SubmitFunc signs and sends the transaction of a step
type SubmitFunc func(ctx context.Context) (*types.Transaction, error)

// StepCall one state changing call
type StepCall struct {
	Name    string
	Asset   common.Address
	Amount  *big.Int
	Account common.Address
	// AllowZero accepts a zero amount, approve(0) is a valid reset
	AllowZero bool
	// Check optional precondition evaluated in Built state
	Check  func(ctx context.Context) error
	Submit SubmitFunc
}

// IStepExecutor runs a StepCall through Built -> Submitted -> Confirmed | Failed
type IStepExecutor interface {
	Execute(ctx context.Context, call *StepCall) (*PendingTransaction, error)
}

// IConfirmer waits until a transaction is buried under depth blocks
type IConfirmer interface {
	WaitConfirmed(ctx context.Context, hash common.Hash, depth uint64, poll time.Duration) (*types.Receipt, error)
}
