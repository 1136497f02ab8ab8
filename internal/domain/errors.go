package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for governance operations
var (
	// ErrNotFound is returned when a requested proposal doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrNotConnected is returned when an operation requires a wallet and none is configured
	ErrNotConnected = errors.New("wallet not connected")

	// ErrInvalidInput is returned for malformed or missing user input
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAddress is returned when an Ethereum address is malformed
	ErrInvalidAddress = fmt.Errorf("%w: please enter a valid Ethereum address", ErrInvalidInput)

	// ErrMissingAddress is returned when delegating to another account without an address
	ErrMissingAddress = fmt.Errorf("%w: please enter a delegatee address", ErrInvalidInput)

	// ErrNoSelectionMade is returned when no proposal or vote option was chosen
	ErrNoSelectionMade = fmt.Errorf("%w: no selection made", ErrInvalidInput)

	// ErrVotingClosed is returned when voting is attempted outside the active window
	ErrVotingClosed = errors.New("voting is closed for this proposal")

	// ErrAlreadyVoted is returned when the connected account already has a receipt
	ErrAlreadyVoted = errors.New("already voted on this proposal")

	// ErrInvalidState is returned when a lifecycle action doesn't match the proposal status
	ErrInvalidState = errors.New("invalid proposal state")

	// ErrSubmissionInFlight is returned while a previous transaction of the same flow is pending
	ErrSubmissionInFlight = errors.New("a transaction is already pending")

	// ErrTransactionRejected is returned when the signer declined the transaction
	ErrTransactionRejected = errors.New("transaction rejected")

	// ErrTransactionReverted is returned when the transaction was mined with a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrReadFailure is returned when a contract read fails
	ErrReadFailure = errors.New("read failure")

	// ErrSuperseded is returned when a newer aggregation run replaced this one
	ErrSuperseded = errors.New("superseded by a newer fetch")
)

// ReadError describes the contract read that aborted an aggregation batch.
// Index is -1 for reads that don't target a single proposal.
type ReadError struct {
	Op    string
	Index int64
	Err   error
}

func (e *ReadError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("failed to read %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to read %s for proposal %d: %v", e.Op, e.Index, e.Err)
}

func (e *ReadError) Unwrap() []error {
	return []error{ErrReadFailure, e.Err}
}

// TxStage is the point in the write path where a transaction failed
type TxStage string

const (
	TxStageBuild   TxStage = "build"
	TxStageSign    TxStage = "sign"
	TxStageSend    TxStage = "send"
	TxStageConfirm TxStage = "confirm"
)

// TransactionError wraps a failed write, keeping the underlying message intact.
type TransactionError struct {
	Stage  TxStage
	TxHash string
	Err    error
}

func (e *TransactionError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("transaction %s failed during %s: %v", e.TxHash, e.Stage, e.Err)
	}
	return fmt.Sprintf("transaction failed during %s: %v", e.Stage, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Message returns the underlying error message verbatim
func (e *TransactionError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
