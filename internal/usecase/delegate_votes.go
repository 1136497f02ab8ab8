package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// DelegateVotesParams contains parameters for delegating voting power
type DelegateVotesParams struct {
	Self      bool
	Delegatee string
}

// DelegateVotesResult records the delegation outcome
type DelegateVotesResult struct {
	Delegatee   common.Address
	TxHash      common.Hash
	Receipt     *models.TxReceipt
	State       SubmissionState
	Transitions []SubmissionState

	// Account is the refreshed position. RefreshErr is set if that read failed.
	Account    *models.Account
	RefreshErr error
}

// DelegateVotes assigns the connected account's voting power to itself or
// another address. Only one delegation runs at a time.
type DelegateVotes struct {
	token     TokenGateway
	waiter    TransactionWaiter
	wallet    Wallet
	confirmer TransactionConfirmer
	book      *ProposalBook
	progress  ProgressSink
	log       *slog.Logger

	inFlight atomic.Bool
}

// NewDelegateVotes creates a new DelegateVotes use case
func NewDelegateVotes(
	token TokenGateway,
	waiter TransactionWaiter,
	wallet Wallet,
	confirmer TransactionConfirmer,
	book *ProposalBook,
	progress ProgressSink,
	log *slog.Logger,
) *DelegateVotes {
	return &DelegateVotes{
		token:     token,
		waiter:    waiter,
		wallet:    wallet,
		confirmer: confirmer,
		book:      book,
		progress:  progress,
		log:       log.With("component", "DelegateVotes"),
	}
}

// Run executes the delegation flow
func (uc *DelegateVotes) Run(ctx context.Context, params DelegateVotesParams) (*DelegateVotesResult, error) {
	result := &DelegateVotesResult{State: StateIdle}
	uc.enter(ctx, result, StateValidating, "Validating delegation")

	// the address is checked before the wallet so input errors show first
	var delegatee common.Address
	if !params.Self {
		addr, err := domain.ParseAddress(params.Delegatee)
		if err != nil {
			return uc.fail(ctx, result, err)
		}
		delegatee = addr
	}

	account, err := uc.wallet.Account(ctx)
	if err != nil {
		return uc.fail(ctx, result, err)
	}
	if !uc.wallet.CanSign() {
		return uc.fail(ctx, result, fmt.Errorf("%w: wallet is watch-only", domain.ErrNotConnected))
	}
	if params.Self {
		delegatee = account
	}
	result.Delegatee = delegatee

	if !uc.inFlight.CompareAndSwap(false, true) {
		return uc.fail(ctx, result, fmt.Errorf("%w: delegation", domain.ErrSubmissionInFlight))
	}
	defer uc.inFlight.Store(false)

	target := delegatee.Hex()
	if delegatee == account {
		target += " (self)"
	}
	ok, err := uc.confirmer.ConfirmTransaction(ctx, TransactionSummary{
		Action:  "Delegate votes",
		Target:  target,
		Details: []string{fmt.Sprintf("From: %s", account.Hex())},
	})
	if err != nil {
		return uc.fail(ctx, result, err)
	}
	if !ok {
		return uc.fail(ctx, result, &domain.TransactionError{Stage: domain.TxStageSign, Err: domain.ErrTransactionRejected})
	}

	uc.enter(ctx, result, StateSubmitting, "Submitting delegation")
	hash, err := uc.token.Delegate(ctx, delegatee)
	if err != nil {
		return uc.fail(ctx, result, asTransactionError(err, domain.TxStageSend, ""))
	}
	result.TxHash = hash

	uc.enter(ctx, result, StateConfirming, fmt.Sprintf("Waiting for %s", hash.Hex()))
	receipt, err := uc.waiter.WaitForConfirmation(ctx, hash)
	if err != nil {
		return uc.fail(ctx, result, asTransactionError(err, domain.TxStageConfirm, hash.Hex()))
	}
	result.Receipt = receipt

	// voting power moved, so cached receipts and weights are suspect
	uc.book.Invalidate()
	uc.enter(ctx, result, StateSucceeded, "Delegation confirmed")

	result.Account, result.RefreshErr = readAccount(ctx, uc.token, account)
	if result.RefreshErr != nil {
		uc.log.Debug("refresh after delegation failed", "error", result.RefreshErr)
	}

	return result, nil
}

func (uc *DelegateVotes) enter(ctx context.Context, result *DelegateVotesResult, state SubmissionState, message string) {
	result.State = state
	result.Transitions = append(result.Transitions, state)
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(state),
		Message: message,
		Spinner: state == StateSubmitting || state == StateConfirming,
	})
}

func (uc *DelegateVotes) fail(ctx context.Context, result *DelegateVotesResult, err error) (*DelegateVotesResult, error) {
	uc.enter(ctx, result, StateFailed, err.Error())
	return result, err
}
