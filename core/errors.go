package core

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 200000
	// ErrConfiguration missing or invalid network profile field
	ErrConfiguration ErrorCode = 200001
	// ErrApprovalFailed approve reverted or timed out
	ErrApprovalFailed ErrorCode = 200002
	// ErrOracleUnavailable price feed errored or returned an unusable price
	ErrOracleUnavailable ErrorCode = 200003
	// ErrPositionReadFailed account data read failed
	ErrPositionReadFailed ErrorCode = 200004
	// ErrInvalidPriceOrMargin price <= 0 or margin outside (0, 1]
	ErrInvalidPriceOrMargin ErrorCode = 200005
	// ErrStepFailed state changing call reverted or timed out
	ErrStepFailed ErrorCode = 200006
	// ErrRegistryLookupFailed lending pool could not be resolved
	ErrRegistryLookupFailed ErrorCode = 200007
	// ErrCanceled run abandoned between steps
	ErrCanceled ErrorCode = 200008
)

var codeNames = map[ErrorCode]string{
	ErrUnknown:              "Unknown",
	ErrConfiguration:        "ConfigurationError",
	ErrApprovalFailed:       "ApprovalFailed",
	ErrOracleUnavailable:    "OracleUnavailable",
	ErrPositionReadFailed:   "PositionReadFailed",
	ErrInvalidPriceOrMargin: "InvalidPriceOrMargin",
	ErrStepFailed:           "StepFailed",
	ErrRegistryLookupFailed: "RegistryLookupFailed",
	ErrCanceled:             "Canceled",
}

func (e ErrorCode) String() string {
	if name, ok := codeNames[e]; ok {
		return name
	}

	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

var (
	// ErrTransactionReverted receipt status is failed
	ErrTransactionReverted = errors.New("transaction reverted")
	// ErrConfirmationTimeout confirmation depth not reached in time
	ErrConfirmationTimeout = errors.New("confirmation timed out")
	// ErrInvalidAmount amount must be positive
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientAllowance spender allowance below amount
	ErrInsufficientAllowance = errors.New("insufficient allowance")
)

// Error a failure of one workflow step, the cause is kept as returned by the node or contract
type Error struct {
	Code  ErrorCode
	Step  string
	Cause error
}

// NewError new error of kind code raised by step
func NewError(code ErrorCode, step string, cause error) *Error {
	return &Error{
		Code:  code,
		Step:  step,
		Cause: cause,
	}
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Step != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Step)
	}

	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}

	return msg
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches an ErrorCode target
func (e *Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

// CodeOf error kind of err, ErrUnknown if err carries none
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}

// StepOf step name carried by err
func StepOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Step
	}

	return ""
}
