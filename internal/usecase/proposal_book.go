package usecase

import (
	"math/big"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// ProposalSnapshot is the result of one complete aggregation run
type ProposalSnapshot struct {
	Account   *common.Address         `json:"account,omitempty" yaml:"account,omitempty"`
	Proposals []*models.ProposalView  `json:"proposals" yaml:"proposals"`
	Stats     *models.AggregatedStats `json:"stats" yaml:"stats"`
	FetchedAt time.Time               `json:"fetchedAt" yaml:"fetchedAt"`
	Stale     bool                    `json:"stale,omitempty" yaml:"stale,omitempty"`
}

// ProposalBook holds the last authoritative snapshot and an optimistic
// overlay of votes confirmed since. Publishing a new snapshot discards
// the overlay as a whole.
type ProposalBook struct {
	mu       sync.RWMutex
	snapshot *ProposalSnapshot
	overlay  map[uint64]*models.VoteReceipt
	stale    bool

	// highest aggregation generation published through PublishIf
	generation uint64
}

// NewProposalBook creates an empty proposal book
func NewProposalBook() *ProposalBook {
	return &ProposalBook{
		overlay: make(map[uint64]*models.VoteReceipt),
	}
}

// Publish replaces the snapshot and clears the overlay
func (b *ProposalBook) Publish(snapshot *ProposalSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.snapshot = snapshot
	b.overlay = make(map[uint64]*models.VoteReceipt)
	b.stale = false
}

// PublishIf publishes snapshot unless a run with a higher generation
// already did. The check and the replacement happen under one lock.
func (b *ProposalBook) PublishIf(gen uint64, snapshot *ProposalSnapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen < b.generation {
		return domain.ErrSuperseded
	}
	b.generation = gen
	b.snapshot = snapshot
	b.overlay = make(map[uint64]*models.VoteReceipt)
	b.stale = false
	return nil
}

// MarkVoted records a confirmed vote that the snapshot doesn't reflect yet
func (b *ProposalBook) MarkVoted(id uint64, support models.VoteType, weight *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if weight == nil {
		weight = new(big.Int)
	}
	b.overlay[id] = &models.VoteReceipt{
		HasVoted: true,
		Support:  support,
		Weight:   new(big.Int).Set(weight),
	}
}

// Invalidate marks the snapshot stale so the next read re-aggregates
func (b *ProposalBook) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stale = true
}

// IsStale reports whether there is no snapshot or it was invalidated
func (b *ProposalBook) IsStale() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot == nil || b.stale
}

// View returns the snapshot with overlay records substituted. The stored
// snapshot is never modified. Returns nil before the first publish.
func (b *ProposalBook) View(now time.Time) *ProposalSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.snapshot == nil {
		return nil
	}

	out := *b.snapshot
	out.Stale = b.stale
	if len(b.overlay) == 0 {
		return &out
	}

	out.Proposals = make([]*models.ProposalView, len(b.snapshot.Proposals))
	for i, view := range b.snapshot.Proposals {
		receipt, ok := b.overlay[view.Proposal.ID]
		if !ok || view.HasVoted {
			out.Proposals[i] = view
			continue
		}
		p := view.Proposal.Clone()
		p.AddVote(receipt.Support, receipt.Weight)
		overlaid := domain.NewProposalView(p, receipt, now)
		overlaid.Optimistic = true
		out.Proposals[i] = overlaid
	}

	var voter common.Address
	if out.Account != nil {
		voter = *out.Account
	}
	out.Stats = computeStats(out.Proposals, voter)
	return &out
}

// computeStats sums tallies across views. Distinct voters are collected
// from the receipts we could observe, which is only ever voter's.
func computeStats(views []*models.ProposalView, voter common.Address) *models.AggregatedStats {
	stats := models.NewAggregatedStats()
	voters := mapset.NewSet[common.Address]()
	for _, view := range views {
		stats.Add(view.Proposal)
		if view.Active {
			stats.ActiveProposals++
		}
		if view.HasVoted {
			voters.Add(voter)
		}
	}
	stats.ActiveVoters = voters.Cardinality()
	return stats
}
