package usecase

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

type castVoteFixture struct {
	gov       *mockGovernor
	token     *mockToken
	waiter    *mockWaiter
	wallet    *fakeWallet
	selector  *mockSelector
	confirmer *fakeConfirmer
	book      *ProposalBook
	progress  *recordingProgress
}

func newCastVoteFixture() *castVoteFixture {
	return &castVoteFixture{
		gov:       &mockGovernor{},
		token:     &mockToken{},
		waiter:    &mockWaiter{},
		wallet:    connectedWallet(),
		selector:  &mockSelector{},
		confirmer: &fakeConfirmer{},
		book:      NewProposalBook(),
		progress:  &recordingProgress{},
	}
}

func (f *castVoteFixture) useCase() *CastVote {
	lister := NewListProposals(f.gov, f.wallet, f.book, testClock(), NopProgress{}, testLogger())
	return NewCastVote(f.gov, f.token, f.waiter, f.wallet, f.selector, f.confirmer, lister, f.book, testClock(), f.progress, testLogger())
}

func ptr[T any](v T) *T { return &v }

var voteTx = common.HexToHash("0xabc1")

func TestCastVote_Success(t *testing.T) {
	f := newCastVoteFixture()
	proposal := activeProposal(0, 100, 40, 0)

	f.gov.On("ProposalCount", mock.Anything).Return(uint64(1), nil)
	f.gov.On("Proposal", mock.Anything, uint64(0)).Return(proposal, nil).Once()
	f.gov.On("HasVoted", mock.Anything, uint64(0), testVoter).Return(false, nil).Once()
	f.token.On("GetVotes", mock.Anything, testVoter).Return(big.NewInt(25), nil)
	f.gov.On("CastVote", mock.Anything, uint64(0), models.VoteAgainst).Return(voteTx, nil).Once()
	f.waiter.On("WaitForConfirmation", mock.Anything, voteTx).Return(&models.TxReceipt{Hash: voteTx, Status: models.TransactionStatusExecuted}, nil)

	// the refresh after confirmation sees the vote on chain
	onChain := activeProposal(0, 100, 65, 0)
	f.gov.On("Proposal", mock.Anything, uint64(0)).Return(onChain, nil)
	f.gov.On("HasVoted", mock.Anything, uint64(0), testVoter).Return(true, nil)
	f.gov.On("VoteReceipt", mock.Anything, uint64(0), testVoter).Return(&models.VoteReceipt{
		HasVoted: true, Support: models.VoteAgainst, Weight: big.NewInt(25),
	}, nil)

	result, err := f.useCase().Run(context.Background(), CastVoteParams{
		ProposalID: ptr(uint64(0)),
		Support:    ptr(models.VoteAgainst),
	})
	require.NoError(t, err)

	assert.Equal(t, StateSucceeded, result.State)
	assert.Equal(t, []SubmissionState{StateValidating, StateSubmitting, StateConfirming, StateSucceeded}, result.Transitions)
	assert.Equal(t, voteTx, result.TxHash)
	assert.Equal(t, int64(25), result.Weight.Int64())
	assert.NoError(t, result.RefreshErr)

	require.NotNil(t, result.Snapshot)
	view := result.Snapshot.Proposals[0]
	assert.True(t, view.HasVoted)
	assert.False(t, view.Optimistic)
	assert.Equal(t, int64(65), view.Proposal.VotesAgainst.Int64())

	require.Len(t, f.confirmer.seen, 1)
	assert.Equal(t, "Cast vote", f.confirmer.seen[0].Action)
	assert.Equal(t, []string{"validating", "submitting", "confirming", "succeeded"}, f.progress.stages())

	f.gov.AssertNumberOfCalls(t, "CastVote", 1)
}

func TestCastVote_RefreshFailureKeepsOverlay(t *testing.T) {
	f := newCastVoteFixture()

	f.gov.On("ProposalCount", mock.Anything).Return(uint64(1), nil).Once()
	f.gov.On("ProposalCount", mock.Anything).Return(uint64(0), errors.New("rpc unavailable"))
	f.gov.On("Proposal", mock.Anything, uint64(0)).Return(activeProposal(0, 10, 0, 0), nil)
	f.gov.On("HasVoted", mock.Anything, uint64(0), testVoter).Return(false, nil)
	f.token.On("GetVotes", mock.Anything, testVoter).Return(big.NewInt(5), nil)
	f.gov.On("CastVote", mock.Anything, uint64(0), models.VoteFor).Return(voteTx, nil)
	f.waiter.On("WaitForConfirmation", mock.Anything, voteTx).Return(&models.TxReceipt{Hash: voteTx}, nil)

	// an earlier listing exists in the book
	f.book.Publish(&ProposalSnapshot{
		Proposals: []*models.ProposalView{domain.NewProposalView(activeProposal(0, 10, 0, 0), nil, testNow)},
		Stats:     models.NewAggregatedStats(),
	})

	result, err := f.useCase().Run(context.Background(), CastVoteParams{
		ProposalID: ptr(uint64(0)),
		Support:    ptr(models.VoteFor),
	})
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, result.State)
	assert.ErrorIs(t, result.RefreshErr, domain.ErrReadFailure)

	require.NotNil(t, result.Snapshot)
	view := result.Snapshot.Proposals[0]
	assert.True(t, view.Optimistic)
	assert.True(t, view.HasVoted)
	assert.Equal(t, int64(15), view.Proposal.VotesFor.Int64())
	assert.True(t, result.Snapshot.Stale)
}

func TestCastVote_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("not connected", func(t *testing.T) {
		f := newCastVoteFixture()
		f.wallet = &fakeWallet{}

		result, err := f.useCase().Run(ctx, CastVoteParams{ProposalID: ptr(uint64(0)), Support: ptr(models.VoteFor)})
		assert.ErrorIs(t, err, domain.ErrNotConnected)
		assert.Equal(t, StateFailed, result.State)
		f.gov.AssertNotCalled(t, "ProposalCount", mock.Anything)
	})

	t.Run("watch-only wallet cannot vote", func(t *testing.T) {
		f := newCastVoteFixture()
		f.wallet.watchOnly = true

		_, err := f.useCase().Run(ctx, CastVoteParams{ProposalID: ptr(uint64(0)), Support: ptr(models.VoteFor)})
		assert.ErrorIs(t, err, domain.ErrNotConnected)
	})

	t.Run("no vote option selected", func(t *testing.T) {
		f := newCastVoteFixture()
		f.selector.On("SelectVoteType", mock.Anything, mock.Anything).Return(models.VoteType(0), domain.ErrNoSelectionMade)

		_, err := f.useCase().Run(ctx, CastVoteParams{ProposalID: ptr(uint64(0))})
		assert.ErrorIs(t, err, domain.ErrNoSelectionMade)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		f.gov.AssertNotCalled(t, "ProposalCount", mock.Anything)
	})

	t.Run("out of range vote type", func(t *testing.T) {
		f := newCastVoteFixture()

		_, err := f.useCase().Run(ctx, CastVoteParams{ProposalID: ptr(uint64(0)), Support: ptr(models.VoteType(7))})
		assert.ErrorIs(t, err, domain.ErrNoSelectionMade)
	})

	t.Run("voting closed", func(t *testing.T) {
		f := newCastVoteFixture()
		f.gov.On("ProposalCount", mock.Anything).Return(uint64(1), nil)
		f.gov.On("Proposal", mock.Anything, uint64(0)).Return(closedProposal(0, 1, 0), nil)

		result, err := f.useCase().Run(ctx, CastVoteParams{ProposalID: ptr(uint64(0)), Support: ptr(models.VoteFor)})
		assert.ErrorIs(t, err, domain.ErrVotingClosed)
		assert.Equal(t, []SubmissionState{StateValidating, StateFailed}, result.Transitions)
		f.gov.AssertNotCalled(t, "CastVote", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("executed proposal is closed", func(t *testing.T) {
		f := newCastVoteFixture()
		p := activeProposal(0, 1, 0, 0)
		p.Executed = true
		f.gov.On("ProposalCount", mock.Anything).Return(uint64(1), nil)
		f.gov.On("Proposal", mock.Anything, uint64(0)).Return(p, nil)

		_, err := f.useCase().Run(ctx, CastVoteParams{ProposalID: ptr(uint64(0)), Support: ptr(models.VoteFor)})
		assert.ErrorIs(t, err, domain.ErrVotingClosed)
	})

	t.Run("already voted", func(t *testing.T) {
		f := newCastVoteFixture()
		f.gov.On("ProposalCount", mock.Anything).Return(uint64(1), nil)
		f.gov.On("Proposal", mock.Anything, uint64(0)).Return(activeProposal(0, 1, 0, 0), nil)
		f.gov.On("HasVoted", mock.Anything, uint64(0), testVoter).Return(true, nil)

		_, err := f.useCase().Run(ctx, CastVoteParams{ProposalID: ptr(uint64(0)), Support: ptr(models.VoteFor)})
		assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
	})

	t.Run("unknown proposal", func(t *testing.T) {
		f := newCastVoteFixture()
		f.gov.On("ProposalCount", mock.Anything).Return(uint64(2), nil)

		_, err := f.useCase().Run(ctx, CastVoteParams{ProposalID: ptr(uint64(5)), Support: ptr(models.VoteFor)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCastVote_Selection(t *testing.T) {
	f := newCastVoteFixture()
	open := activeProposal(1, 0, 0, 0)

	f.gov.On("ProposalCount", mock.Anything).Return(uint64(2), nil)
	f.gov.On("Proposal", mock.Anything, uint64(0)).Return(closedProposal(0, 1, 0), nil)
	f.gov.On("Proposal", mock.Anything, uint64(1)).Return(open, nil)
	f.gov.On("HasVoted", mock.Anything, mock.Anything, testVoter).Return(false, nil)
	f.selector.On("SelectProposal", mock.Anything, mock.MatchedBy(func(views []*models.ProposalView) bool {
		return len(views) == 1 && views[0].Proposal.ID == 1
	}), mock.Anything).Return(domain.NewProposalView(open, nil, testNow), nil)
	f.selector.On("SelectVoteType", mock.Anything, "Vote on proposal #1").Return(models.VoteAbstain, nil)
	f.token.On("GetVotes", mock.Anything, testVoter).Return(big.NewInt(1), nil)
	f.confirmer.decline = true

	result, err := f.useCase().Run(context.Background(), CastVoteParams{})
	require.Error(t, err)

	assert.Equal(t, uint64(1), result.ProposalID)
	assert.Equal(t, models.VoteAbstain, result.Support)
	assert.ErrorIs(t, err, domain.ErrTransactionRejected)
	f.selector.AssertExpectations(t)
	f.gov.AssertNotCalled(t, "CastVote", mock.Anything, mock.Anything, mock.Anything)
}

func TestCastVote_TransactionFailures(t *testing.T) {
	ctx := context.Background()

	setup := func() *castVoteFixture {
		f := newCastVoteFixture()
		f.gov.On("ProposalCount", mock.Anything).Return(uint64(1), nil)
		f.gov.On("Proposal", mock.Anything, uint64(0)).Return(activeProposal(0, 0, 0, 0), nil)
		f.gov.On("HasVoted", mock.Anything, uint64(0), testVoter).Return(false, nil)
		f.token.On("GetVotes", mock.Anything, testVoter).Return(big.NewInt(1), nil)
		return f
	}

	t.Run("send error surfaces the node's message", func(t *testing.T) {
		f := setup()
		cause := errors.New("insufficient funds for gas * price + value")
		f.gov.On("CastVote", mock.Anything, uint64(0), models.VoteFor).Return(common.Hash{}, cause)

		result, err := f.useCase().Run(ctx, CastVoteParams{ProposalID: ptr(uint64(0)), Support: ptr(models.VoteFor)})
		var txErr *domain.TransactionError
		require.True(t, errors.As(err, &txErr))
		assert.Equal(t, domain.TxStageSend, txErr.Stage)
		assert.Equal(t, cause.Error(), txErr.Message())
		assert.Equal(t, []SubmissionState{StateValidating, StateSubmitting, StateFailed}, result.Transitions)
		assert.True(t, f.book.IsStale())
		assert.Nil(t, f.book.View(testNow))
	})

	t.Run("reverted receipt fails without a retry", func(t *testing.T) {
		f := setup()
		f.gov.On("CastVote", mock.Anything, uint64(0), models.VoteFor).Return(voteTx, nil)
		f.waiter.On("WaitForConfirmation", mock.Anything, voteTx).Return(nil, &domain.TransactionError{
			Stage: domain.TxStageConfirm, TxHash: voteTx.Hex(), Err: domain.ErrTransactionReverted,
		})

		result, err := f.useCase().Run(ctx, CastVoteParams{ProposalID: ptr(uint64(0)), Support: ptr(models.VoteFor)})
		assert.ErrorIs(t, err, domain.ErrTransactionReverted)
		assert.Equal(t, StateFailed, result.State)
		assert.Equal(t, voteTx, result.TxHash)
		f.gov.AssertNumberOfCalls(t, "CastVote", 1)
	})

	t.Run("declined confirmation", func(t *testing.T) {
		f := setup()
		f.confirmer.decline = true

		_, err := f.useCase().Run(ctx, CastVoteParams{ProposalID: ptr(uint64(0)), Support: ptr(models.VoteFor)})
		assert.ErrorIs(t, err, domain.ErrTransactionRejected)
	})
}

func TestCastVote_InFlightGuard(t *testing.T) {
	f := newCastVoteFixture()
	uc := f.useCase()

	f.gov.On("ProposalCount", mock.Anything).Return(uint64(1), nil)
	f.gov.On("Proposal", mock.Anything, uint64(0)).Return(activeProposal(0, 0, 0, 0), nil)
	f.gov.On("HasVoted", mock.Anything, uint64(0), testVoter).Return(false, nil)
	f.token.On("GetVotes", mock.Anything, testVoter).Return(big.NewInt(1), nil)

	// while the first vote is being broadcast a second one for the same proposal arrives
	var secondErr error
	f.gov.On("CastVote", mock.Anything, uint64(0), models.VoteFor).Return(common.Hash{}, errors.New("nonce too low")).Run(func(mock.Arguments) {
		_, secondErr = uc.Run(context.Background(), CastVoteParams{ProposalID: ptr(uint64(0)), Support: ptr(models.VoteFor)})
	})

	_, err := uc.Run(context.Background(), CastVoteParams{ProposalID: ptr(uint64(0)), Support: ptr(models.VoteFor)})
	require.Error(t, err)
	assert.ErrorIs(t, secondErr, domain.ErrSubmissionInFlight)
	f.gov.AssertNumberOfCalls(t, "CastVote", 1)

	// the guard is released once the first submission finished
	assert.False(t, uc.inFlight.Contains(0))
}
