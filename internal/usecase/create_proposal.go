package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// etherDecimals is the precision of native value sent with an action
const etherDecimals = 18

// CreateProposalParams contains parameters for creating a proposal.
// Leaving Target and Signature empty creates a text-only proposal.
type CreateProposalParams struct {
	Title       string
	Description string

	Target    string
	Signature string
	Args      string
	Value     string
}

// Advanced reports whether the proposal carries an on-chain call
func (p CreateProposalParams) Advanced() bool {
	return strings.TrimSpace(p.Target) != "" || strings.TrimSpace(p.Signature) != ""
}

// CreateProposalResult contains the result of creating a proposal
type CreateProposalResult struct {
	ProposalID  uint64                  `json:"proposalId" yaml:"proposalId"`
	HasID       bool                    `json:"hasId" yaml:"hasId"`
	TxHash      common.Hash             `json:"txHash" yaml:"txHash"`
	Receipt     *models.TxReceipt       `json:"receipt,omitempty" yaml:"receipt,omitempty"`
	Description string                  `json:"description" yaml:"description"`
	Actions     []models.ProposalAction `json:"actions" yaml:"actions"`
}

// CreateProposal submits a new proposal to the governor
type CreateProposal struct {
	governor  GovernorGateway
	waiter    TransactionWaiter
	wallet    Wallet
	encoder   ActionEncoder
	confirmer TransactionConfirmer
	book      *ProposalBook
	progress  ProgressSink
	log       *slog.Logger
}

// NewCreateProposal creates a new CreateProposal use case
func NewCreateProposal(
	governor GovernorGateway,
	waiter TransactionWaiter,
	wallet Wallet,
	encoder ActionEncoder,
	confirmer TransactionConfirmer,
	book *ProposalBook,
	progress ProgressSink,
	log *slog.Logger,
) *CreateProposal {
	return &CreateProposal{
		governor:  governor,
		waiter:    waiter,
		wallet:    wallet,
		encoder:   encoder,
		confirmer: confirmer,
		book:      book,
		progress:  progress,
		log:       log.With("component", "CreateProposal"),
	}
}

// Run executes the create proposal use case
func (uc *CreateProposal) Run(ctx context.Context, params CreateProposalParams) (*CreateProposalResult, error) {
	if _, err := uc.wallet.Account(ctx); err != nil {
		return nil, err
	}
	if !uc.wallet.CanSign() {
		return nil, fmt.Errorf("%w: wallet is watch-only", domain.ErrNotConnected)
	}

	if strings.TrimSpace(params.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(params.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}

	action := models.TextProposalAction()
	if params.Advanced() {
		var err error
		action, err = uc.buildAction(params)
		if err != nil {
			return nil, err
		}
	}

	result := &CreateProposalResult{
		Description: models.FormatDescription(params.Title, params.Description),
		Actions:     []models.ProposalAction{action},
	}

	details := []string{fmt.Sprintf("Title: %s", strings.TrimSpace(params.Title))}
	if action.Signature != "" {
		details = append(details, fmt.Sprintf("Call: %s on %s", action.Signature, action.Target))
	}
	if action.Value.Sign() > 0 {
		details = append(details, fmt.Sprintf("Value: %s ETH", domain.FormatTokenAmount(action.Value, etherDecimals)))
	}
	ok, err := uc.confirmer.ConfirmTransaction(ctx, TransactionSummary{
		Action:  "Create proposal",
		Target:  "governor",
		Details: details,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.TransactionError{Stage: domain.TxStageSign, Err: domain.ErrTransactionRejected}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StateSubmitting), Message: "Submitting proposal", Spinner: true})
	hash, err := uc.governor.Propose(ctx, result.Actions, result.Description)
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
	result.ProposalID, result.HasID = uc.governor.ProposalIDFromReceipt(receipt)
	uc.log.Debug("proposal created", "tx", hash.Hex(), "id", result.ProposalID, "decoded", result.HasID)

	uc.book.Invalidate()
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StateSucceeded), Message: "Proposal created"})

	return result, nil
}

func (uc *CreateProposal) buildAction(params CreateProposalParams) (models.ProposalAction, error) {
	return encodeCall(uc.encoder, CallInput{
		Target:    params.Target,
		Signature: params.Signature,
		Args:      params.Args,
		Value:     params.Value,
	})
}

// CallInput is an on-chain call as entered by the user
type CallInput struct {
	Target    string
	Signature string
	Args      string
	Value     string
}

// IsSet reports whether any part of the call was given
func (c CallInput) IsSet() bool {
	return strings.TrimSpace(c.Target) != "" || strings.TrimSpace(c.Signature) != ""
}

func encodeCall(encoder ActionEncoder, in CallInput) (models.ProposalAction, error) {
	target, err := domain.ParseAddress(in.Target)
	if err != nil {
		return models.ProposalAction{}, err
	}

	signature := strings.TrimSpace(in.Signature)
	if signature == "" {
		return models.ProposalAction{}, fmt.Errorf("%w: function signature is required for a call", domain.ErrInvalidInput)
	}
	calldata, err := encoder.EncodeCall(signature, in.Args)
	if err != nil {
		return models.ProposalAction{}, err
	}

	value, err := domain.ParseTokenAmount(in.Value, etherDecimals)
	if err != nil {
		return models.ProposalAction{}, err
	}

	return models.ProposalAction{
		Target:    target.Hex(),
		Value:     value,
		Calldata:  calldata,
		Signature: signature,
	}, nil
}
