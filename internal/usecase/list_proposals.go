package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// ListProposalsParams contains parameters for listing proposals
type ListProposalsParams struct {
	// Voter overrides the connected account for receipt lookups.
	Voter string
	// Quiet suppresses progress events, for callers that own the terminal
	Quiet bool
}

// ListProposals aggregates every proposal on the governor into a snapshot.
// Reads are sequential and any failure aborts the batch. Runs are numbered;
// a run that finishes after a newer one started is discarded.
type ListProposals struct {
	governor GovernorReader
	wallet   Wallet
	book     *ProposalBook
	clock    Clock
	progress ProgressSink
	log      *slog.Logger

	generation atomic.Uint64
}

// NewListProposals creates a new ListProposals use case
func NewListProposals(
	governor GovernorReader,
	wallet Wallet,
	book *ProposalBook,
	clock Clock,
	progress ProgressSink,
	log *slog.Logger,
) *ListProposals {
	return &ListProposals{
		governor: governor,
		wallet:   wallet,
		book:     book,
		clock:    clock,
		progress: progress,
		log:      log.With("component", "ListProposals"),
	}
}

// Run performs one aggregation and publishes it to the proposal book
func (uc *ListProposals) Run(ctx context.Context, params ListProposalsParams) (*ProposalSnapshot, error) {
	gen := uc.generation.Add(1)

	voter, err := uc.resolveVoter(ctx, params.Voter)
	if err != nil {
		return nil, err
	}

	count, err := uc.governor.ProposalCount(ctx)
	if err != nil {
		return nil, &domain.ReadError{Op: "proposal count", Index: -1, Err: err}
	}
	uc.log.Debug("aggregating proposals", "count", count, "generation", gen)

	views := make([]*models.ProposalView, 0, count)
	for i := uint64(0); i < count; i++ {
		if uc.superseded(gen) {
			return nil, domain.ErrSuperseded
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !params.Quiet {
			uc.progress.OnProgress(ctx, ProgressEvent{
				Stage:   "fetching",
				Current: int(i + 1),
				Total:   int(count),
				Message: fmt.Sprintf("Reading proposal %d of %d", i+1, count),
				Spinner: true,
			})
		}

		view, err := uc.readProposal(ctx, i, voter)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	var account common.Address
	if voter != nil {
		account = *voter
	}
	snapshot := &ProposalSnapshot{
		Account:   voter,
		Proposals: views,
		Stats:     computeStats(views, account),
		FetchedAt: uc.clock(),
	}

	if uc.superseded(gen) {
		return nil, domain.ErrSuperseded
	}
	if err := uc.book.PublishIf(gen, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Latest returns the book's view, aggregating first when it is stale
func (uc *ListProposals) Latest(ctx context.Context) (*ProposalSnapshot, error) {
	if !uc.book.IsStale() {
		return uc.book.View(uc.clock()), nil
	}
	if _, err := uc.Run(ctx, ListProposalsParams{}); err != nil {
		return nil, err
	}
	return uc.book.View(uc.clock()), nil
}

func (uc *ListProposals) superseded(gen uint64) bool {
	return uc.generation.Load() != gen
}

func (uc *ListProposals) resolveVoter(ctx context.Context, override string) (*common.Address, error) {
	if override != "" {
		addr, err := domain.ParseAddress(override)
		if err != nil {
			return nil, err
		}
		return &addr, nil
	}

	addr, err := uc.wallet.Account(ctx)
	if errors.Is(err, domain.ErrNotConnected) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (uc *ListProposals) readProposal(ctx context.Context, id uint64, voter *common.Address) (*models.ProposalView, error) {
	p, err := uc.governor.Proposal(ctx, id)
	if err != nil {
		return nil, &domain.ReadError{Op: "proposal", Index: int64(id), Err: err}
	}

	var receipt *models.VoteReceipt
	if voter != nil {
		voted, err := uc.governor.HasVoted(ctx, id, *voter)
		if err != nil {
			return nil, &domain.ReadError{Op: "vote status", Index: int64(id), Err: err}
		}
		if voted {
			receipt, err = uc.governor.VoteReceipt(ctx, id, *voter)
			if err != nil {
				return nil, &domain.ReadError{Op: "vote receipt", Index: int64(id), Err: err}
			}
		}
	}

	uc.log.Debug("read proposal", "id", id, "executed", p.Executed, "voted", receipt != nil)
	return domain.NewProposalView(p, receipt, uc.clock()), nil
}
