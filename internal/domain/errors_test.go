package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadError(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&ReadError{Op: "proposal", Index: 3, Err: cause})

	assert.ErrorIs(t, err, ErrReadFailure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to read proposal for proposal 3: connection refused", err.Error())

	err = &ReadError{Op: "proposal count", Index: -1, Err: cause}
	assert.Equal(t, "failed to read proposal count: connection refused", err.Error())
}

func TestTransactionError(t *testing.T) {
	cause := errors.New("execution reverted: Governor: vote not currently active")
	err := &TransactionError{Stage: TxStageSend, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause.Error(), err.Message())
	assert.Contains(t, err.Error(), "during send")

	reverted := &TransactionError{Stage: TxStageConfirm, TxHash: "0xabc", Err: ErrTransactionReverted}
	assert.ErrorIs(t, reverted, ErrTransactionReverted)
	assert.Contains(t, reverted.Error(), "0xabc")
}

func TestInputErrorsShareInvalidInput(t *testing.T) {
	for _, err := range []error{ErrInvalidAddress, ErrMissingAddress, ErrNoSelectionMade} {
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.NotErrorIs(t, ErrVotingClosed, ErrInvalidInput)
}
