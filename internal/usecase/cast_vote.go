package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// SubmissionState is a step of a transaction submission flow
type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateValidating SubmissionState = "validating"
	StateSubmitting SubmissionState = "submitting"
	StateConfirming SubmissionState = "confirming"
	StateSucceeded  SubmissionState = "succeeded"
	StateFailed     SubmissionState = "failed"
)

// CastVoteParams contains parameters for casting a vote. A nil field is
// resolved through the proposal selector.
type CastVoteParams struct {
	ProposalID *uint64
	Support    *models.VoteType
}

// CastVoteResult records how far a vote got. It is returned on failure too.
type CastVoteResult struct {
	ProposalID  uint64
	Support     models.VoteType
	Weight      *big.Int
	TxHash      common.Hash
	Receipt     *models.TxReceipt
	State       SubmissionState
	Transitions []SubmissionState

	// Snapshot is the refreshed proposal list after a successful vote.
	// RefreshErr is set when that refresh failed; the vote itself stands.
	Snapshot   *ProposalSnapshot
	RefreshErr error
}

func (r *CastVoteResult) transition(state SubmissionState) {
	r.State = state
	r.Transitions = append(r.Transitions, state)
}

// CastVote submits a single vote: validate, sign and send once, wait for
// the receipt, then reconcile the proposal book.
type CastVote struct {
	governor  GovernorGateway
	token     TokenGateway
	waiter    TransactionWaiter
	wallet    Wallet
	selector  ProposalSelector
	confirmer TransactionConfirmer
	proposals *ListProposals
	book      *ProposalBook
	clock     Clock
	progress  ProgressSink
	log       *slog.Logger

	inFlight mapset.Set[uint64]
}

// NewCastVote creates a new CastVote use case
func NewCastVote(
	governor GovernorGateway,
	token TokenGateway,
	waiter TransactionWaiter,
	wallet Wallet,
	selector ProposalSelector,
	confirmer TransactionConfirmer,
	proposals *ListProposals,
	book *ProposalBook,
	clock Clock,
	progress ProgressSink,
	log *slog.Logger,
) *CastVote {
	return &CastVote{
		governor:  governor,
		token:     token,
		waiter:    waiter,
		wallet:    wallet,
		selector:  selector,
		confirmer: confirmer,
		proposals: proposals,
		book:      book,
		clock:     clock,
		progress:  progress,
		log:       log.With("component", "CastVote"),
		inFlight:  mapset.NewSet[uint64](),
	}
}

// Run executes the vote flow
func (uc *CastVote) Run(ctx context.Context, params CastVoteParams) (*CastVoteResult, error) {
	result := &CastVoteResult{State: StateIdle}
	uc.enter(ctx, result, StateValidating, "Validating vote")

	voter, err := uc.validate(ctx, &params, result)
	if err != nil {
		return uc.fail(ctx, result, err)
	}

	if !uc.inFlight.Add(result.ProposalID) {
		return uc.fail(ctx, result, fmt.Errorf("%w for proposal %d", domain.ErrSubmissionInFlight, result.ProposalID))
	}
	defer uc.inFlight.Remove(result.ProposalID)

	ok, err := uc.confirmer.ConfirmTransaction(ctx, TransactionSummary{
		Action: "Cast vote",
		Target: fmt.Sprintf("proposal #%d", result.ProposalID),
		Details: []string{
			fmt.Sprintf("Vote: %s", result.Support),
			fmt.Sprintf("Voter: %s", voter.Hex()),
			fmt.Sprintf("Weight: %s", result.Weight),
		},
	})
	if err != nil {
		return uc.fail(ctx, result, err)
	}
	if !ok {
		return uc.fail(ctx, result, &domain.TransactionError{Stage: domain.TxStageSign, Err: domain.ErrTransactionRejected})
	}

	uc.enter(ctx, result, StateSubmitting, "Submitting vote")
	hash, err := uc.governor.CastVote(ctx, result.ProposalID, result.Support)
	if err != nil {
		return uc.fail(ctx, result, asTransactionError(err, domain.TxStageSend, ""))
	}
	result.TxHash = hash
	uc.log.Debug("vote broadcast", "proposal", result.ProposalID, "tx", hash.Hex())

	uc.enter(ctx, result, StateConfirming, fmt.Sprintf("Waiting for %s", hash.Hex()))
	receipt, err := uc.waiter.WaitForConfirmation(ctx, hash)
	if err != nil {
		return uc.fail(ctx, result, asTransactionError(err, domain.TxStageConfirm, hash.Hex()))
	}
	result.Receipt = receipt

	uc.book.MarkVoted(result.ProposalID, result.Support, result.Weight)
	uc.book.Invalidate()
	uc.enter(ctx, result, StateSucceeded, "Vote confirmed")

	snapshot, err := uc.proposals.Run(ctx, ListProposalsParams{})
	if err != nil {
		// the overlay keeps showing the vote until a later fetch succeeds
		uc.log.Debug("refresh after vote failed", "error", err)
		result.RefreshErr = err
		result.Snapshot = uc.book.View(uc.clock())
	} else {
		result.Snapshot = snapshot
	}

	return result, nil
}

// validate runs every check that must pass before anything is written
func (uc *CastVote) validate(ctx context.Context, params *CastVoteParams, result *CastVoteResult) (common.Address, error) {
	voter, err := uc.wallet.Account(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if !uc.wallet.CanSign() {
		return common.Address{}, fmt.Errorf("%w: wallet is watch-only", domain.ErrNotConnected)
	}

	if params.ProposalID == nil {
		view, err := uc.selectOpenProposal(ctx)
		if err != nil {
			return common.Address{}, err
		}
		params.ProposalID = &view.Proposal.ID
	}
	result.ProposalID = *params.ProposalID

	if params.Support == nil {
		support, err := uc.selector.SelectVoteType(ctx, fmt.Sprintf("Vote on proposal #%d", result.ProposalID))
		if err != nil {
			return common.Address{}, err
		}
		params.Support = &support
	}
	if !params.Support.Valid() {
		return common.Address{}, domain.ErrNoSelectionMade
	}
	result.Support = *params.Support

	count, err := uc.governor.ProposalCount(ctx)
	if err != nil {
		return common.Address{}, &domain.ReadError{Op: "proposal count", Index: -1, Err: err}
	}
	if result.ProposalID >= count {
		return common.Address{}, fmt.Errorf("%w: proposal %d", domain.ErrNotFound, result.ProposalID)
	}

	p, err := uc.governor.Proposal(ctx, result.ProposalID)
	if err != nil {
		return common.Address{}, &domain.ReadError{Op: "proposal", Index: int64(result.ProposalID), Err: err}
	}
	if !domain.CanVote(p, uc.clock()) {
		return common.Address{}, fmt.Errorf("%w: proposal %d (%s)", domain.ErrVotingClosed, result.ProposalID, domain.DeriveStatus(p, uc.clock()))
	}

	voted, err := uc.governor.HasVoted(ctx, result.ProposalID, voter)
	if err != nil {
		return common.Address{}, &domain.ReadError{Op: "vote status", Index: int64(result.ProposalID), Err: err}
	}
	if voted {
		return common.Address{}, fmt.Errorf("%w: proposal %d", domain.ErrAlreadyVoted, result.ProposalID)
	}

	weight, err := uc.token.GetVotes(ctx, voter)
	if err != nil {
		return common.Address{}, &domain.ReadError{Op: "voting power", Index: -1, Err: err}
	}
	result.Weight = weight

	return voter, nil
}

func (uc *CastVote) selectOpenProposal(ctx context.Context) (*models.ProposalView, error) {
	snapshot, err := uc.proposals.Latest(ctx)
	if err != nil {
		return nil, err
	}

	open := lo.Filter(snapshot.Proposals, func(v *models.ProposalView, _ int) bool {
		return domain.CanVote(v.Proposal, uc.clock()) && !v.HasVoted
	})
	if len(open) == 0 {
		return nil, fmt.Errorf("%w: no proposals are open for voting", domain.ErrNoSelectionMade)
	}
	return uc.selector.SelectProposal(ctx, open, "Select a proposal to vote on")
}

func (uc *CastVote) enter(ctx context.Context, result *CastVoteResult, state SubmissionState, message string) {
	result.transition(state)
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(state),
		Message: message,
		Spinner: state == StateSubmitting || state == StateConfirming,
	})
}

func (uc *CastVote) fail(ctx context.Context, result *CastVoteResult, err error) (*CastVoteResult, error) {
	uc.enter(ctx, result, StateFailed, err.Error())
	return result, err
}

// asTransactionError makes sure a write failure carries its stage
func asTransactionError(err error, stage domain.TxStage, hash string) error {
	var txErr *domain.TransactionError
	if errors.As(err, &txErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.TransactionError{Stage: stage, TxHash: hash, Err: err}
}
