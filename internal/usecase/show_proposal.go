package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// ShowProposalParams contains parameters for showing a single proposal
type ShowProposalParams struct {
	ID uint64
}

// ShowProposalResult is a proposal with its derived display values
type ShowProposalResult struct {
	View          *models.ProposalView
	TimeRemaining string
	CanVote       bool
	Title         string
	Body          string
}

// ShowProposal reads a single proposal fresh from the governor
type ShowProposal struct {
	governor GovernorReader
	wallet   Wallet
	clock    Clock
}

// NewShowProposal creates a new ShowProposal use case
func NewShowProposal(governor GovernorReader, wallet Wallet, clock Clock) *ShowProposal {
	return &ShowProposal{
		governor: governor,
		wallet:   wallet,
		clock:    clock,
	}
}

// Run executes the show proposal use case
func (uc *ShowProposal) Run(ctx context.Context, params ShowProposalParams) (*ShowProposalResult, error) {
	count, err := uc.governor.ProposalCount(ctx)
	if err != nil {
		return nil, &domain.ReadError{Op: "proposal count", Index: -1, Err: err}
	}
	if params.ID >= count {
		return nil, fmt.Errorf("%w: proposal %d (there are %d proposals)", domain.ErrNotFound, params.ID, count)
	}

	p, err := uc.governor.Proposal(ctx, params.ID)
	if err != nil {
		return nil, &domain.ReadError{Op: "proposal", Index: int64(params.ID), Err: err}
	}

	var receipt *models.VoteReceipt
	voter, err := uc.wallet.Account(ctx)
	switch {
	case err == nil:
		receipt, err = uc.governor.VoteReceipt(ctx, params.ID, voter)
		if err != nil {
			return nil, &domain.ReadError{Op: "vote receipt", Index: int64(params.ID), Err: err}
		}
	case !errors.Is(err, domain.ErrNotConnected):
		return nil, err
	}

	now := uc.clock()
	view := domain.NewProposalView(p, receipt, now)
	title, body := p.Title, p.Description
	if parsed, rest := models.ParseDescription(p.Description); parsed != "" && title == "" {
		title, body = parsed, rest
	}

	return &ShowProposalResult{
		View:          view,
		TimeRemaining: domain.TimeRemaining(p.EndTime, now),
		CanVote:       domain.CanVote(p, now) && !view.HasVoted,
		Title:         title,
		Body:          body,
	}, nil
}
