package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// LifecycleParams identifies the proposal to queue or execute. The governor
// matches proposals by their actions and description hash, so both must
// equal what was proposed.
type LifecycleParams struct {
	ID      uint64
	Actions []models.ProposalAction
	// Call is encoded into the single action when Actions is empty.
	Call CallInput
	// Description overrides the stored description when hashing.
	Description string
}

// LifecycleResult contains the result of queueing or executing a proposal
type LifecycleResult struct {
	ProposalID      uint64            `json:"proposalId" yaml:"proposalId"`
	DescriptionHash common.Hash       `json:"descriptionHash" yaml:"descriptionHash"`
	TxHash          common.Hash       `json:"txHash" yaml:"txHash"`
	Receipt         *models.TxReceipt `json:"receipt,omitempty" yaml:"receipt,omitempty"`
}

type lifecycleWrite func(ctx context.Context, actions []models.ProposalAction, descriptionHash common.Hash) (common.Hash, error)

// lifecycle holds what queue and execute share
type lifecycle struct {
	governor  GovernorGateway
	waiter    TransactionWaiter
	wallet    Wallet
	encoder   ActionEncoder
	confirmer TransactionConfirmer
	book      *ProposalBook
	clock     Clock
	progress  ProgressSink
	log       *slog.Logger
}

// QueueProposal queues a succeeded proposal in the timelock
type QueueProposal struct {
	lifecycle
}

// NewQueueProposal creates a new QueueProposal use case
func NewQueueProposal(
	governor GovernorGateway,
	waiter TransactionWaiter,
	wallet Wallet,
	encoder ActionEncoder,
	confirmer TransactionConfirmer,
	book *ProposalBook,
	clock Clock,
	progress ProgressSink,
	log *slog.Logger,
) *QueueProposal {
	return &QueueProposal{lifecycle{
		governor:  governor,
		waiter:    waiter,
		wallet:    wallet,
		encoder:   encoder,
		confirmer: confirmer,
		book:      book,
		clock:     clock,
		progress:  progress,
		log:       log.With("component", "QueueProposal"),
	}}
}

// Run executes the queue use case
func (uc *QueueProposal) Run(ctx context.Context, params LifecycleParams) (*LifecycleResult, error) {
	return uc.run(ctx, params, "Queue proposal", func(p *models.Proposal, status models.ProposalStatus) error {
		if status != models.ProposalStatusSucceeded {
			return fmt.Errorf("%w: proposal %d is %s, only succeeded proposals can be queued", domain.ErrInvalidState, p.ID, status)
		}
		return nil
	}, uc.governor.Queue)
}

// ExecuteProposal executes a queued proposal
type ExecuteProposal struct {
	lifecycle
}

// NewExecuteProposal creates a new ExecuteProposal use case
func NewExecuteProposal(
	governor GovernorGateway,
	waiter TransactionWaiter,
	wallet Wallet,
	encoder ActionEncoder,
	confirmer TransactionConfirmer,
	book *ProposalBook,
	clock Clock,
	progress ProgressSink,
	log *slog.Logger,
) *ExecuteProposal {
	return &ExecuteProposal{lifecycle{
		governor:  governor,
		waiter:    waiter,
		wallet:    wallet,
		encoder:   encoder,
		confirmer: confirmer,
		book:      book,
		clock:     clock,
		progress:  progress,
		log:       log.With("component", "ExecuteProposal"),
	}}
}

// Run executes the execute use case
func (uc *ExecuteProposal) Run(ctx context.Context, params LifecycleParams) (*LifecycleResult, error) {
	return uc.run(ctx, params, "Execute proposal", func(p *models.Proposal, status models.ProposalStatus) error {
		if p.Executed {
			return fmt.Errorf("%w: proposal %d was already executed", domain.ErrInvalidState, p.ID)
		}
		if status != models.ProposalStatusSucceeded {
			return fmt.Errorf("%w: proposal %d is %s, only succeeded proposals can be executed", domain.ErrInvalidState, p.ID, status)
		}
		return nil
	}, uc.governor.Execute)
}

func (uc *lifecycle) run(
	ctx context.Context,
	params LifecycleParams,
	action string,
	check func(*models.Proposal, models.ProposalStatus) error,
	write lifecycleWrite,
) (*LifecycleResult, error) {
	if _, err := uc.wallet.Account(ctx); err != nil {
		return nil, err
	}
	if !uc.wallet.CanSign() {
		return nil, fmt.Errorf("%w: wallet is watch-only", domain.ErrNotConnected)
	}

	p, err := uc.governor.Proposal(ctx, params.ID)
	if err != nil {
		return nil, &domain.ReadError{Op: "proposal", Index: int64(params.ID), Err: err}
	}
	if err := check(p, domain.DeriveStatus(p, uc.clock())); err != nil {
		return nil, err
	}

	actions := params.Actions
	if len(actions) == 0 {
		action := models.TextProposalAction()
		if params.Call.IsSet() {
			if action, err = encodeCall(uc.encoder, params.Call); err != nil {
				return nil, err
			}
		}
		actions = []models.ProposalAction{action}
	}
	description := params.Description
	if description == "" {
		description = p.Description
	}

	result := &LifecycleResult{
		ProposalID:      params.ID,
		DescriptionHash: crypto.Keccak256Hash([]byte(description)),
	}

	ok, err := uc.confirmer.ConfirmTransaction(ctx, TransactionSummary{
		Action: action,
		Target: fmt.Sprintf("proposal #%d", params.ID),
		Details: []string{
			fmt.Sprintf("Actions: %d", len(actions)),
			fmt.Sprintf("Description hash: %s", result.DescriptionHash.Hex()),
		},
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.TransactionError{Stage: domain.TxStageSign, Err: domain.ErrTransactionRejected}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StateSubmitting), Message: action, Spinner: true})
	hash, err := write(ctx, actions, result.DescriptionHash)
	if err != nil {
		return nil, asTransactionError(err, domain.TxStageSend, "")
	}
	result.TxHash = hash

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StateConfirming), Message: fmt.Sprintf("Waiting for %s", hash.Hex()), Spinner: true})
	receipt, err := uc.waiter.WaitForConfirmation(ctx, hash)
	if err != nil {
		return result, asTransactionError(err, domain.TxStageConfirm, hash.Hex())
	}
	result.Receipt = receipt
	uc.log.Debug("lifecycle transaction confirmed", "action", action, "proposal", params.ID, "tx", hash.Hex())

	uc.book.Invalidate()
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StateSucceeded), Message: "Confirmed"})

	return result, nil
}
