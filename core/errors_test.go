package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	cause := errors.New("execution reverted")
	err := fmt.Errorf("run: %w", NewError(ErrStepFailed, "deposit", cause))

	assert.True(t, errors.Is(err, ErrStepFailed))
	assert.False(t, errors.Is(err, ErrApprovalFailed))
	assert.True(t, errors.Is(err, cause), "cause must stay reachable")

	var e *Error
	if assert.True(t, errors.As(err, &e)) {
		assert.Equal(t, "deposit", e.Step)
	}
}

func TestCodeOfAndStepOf(t *testing.T) {
	assert.Equal(t, ErrOracleUnavailable, CodeOf(NewError(ErrOracleUnavailable, "price", nil)))
	assert.Equal(t, "price", StepOf(NewError(ErrOracleUnavailable, "price", nil)))

	assert.Equal(t, ErrCanceled, CodeOf(fmt.Errorf("wrapped: %w", ErrCanceled)))
	assert.Equal(t, ErrUnknown, CodeOf(errors.New("boom")))
	assert.Equal(t, "", StepOf(errors.New("boom")))
}

func TestErrorMessage(t *testing.T) {
	err := NewError(ErrStepFailed, "borrow", ErrTransactionReverted)
	assert.Equal(t, "StepFailed [borrow]: transaction reverted", err.Error())

	assert.Equal(t, "ConfigurationError", NewError(ErrConfiguration, "", nil).Error())
	assert.Equal(t, "12", ErrorCode(12).String())
}
