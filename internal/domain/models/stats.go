package models

import "math/big"

// AggregatedStats is recomputed from every full proposal fetch
type AggregatedStats struct {
	TotalVotesFor     *big.Int `json:"totalVotesFor" yaml:"totalVotesFor"`
	TotalVotesAgainst *big.Int `json:"totalVotesAgainst" yaml:"totalVotesAgainst"`
	TotalVotesAbstain *big.Int `json:"totalVotesAbstain" yaml:"totalVotesAbstain"`
	TotalProposals    int      `json:"totalProposals" yaml:"totalProposals"`
	ActiveProposals   int      `json:"activeProposals" yaml:"activeProposals"`

	// ActiveVoters counts distinct addresses observed voting. Only the
	// connected account is observable, so this is a lower bound.
	ActiveVoters int `json:"activeVoters" yaml:"activeVoters"`
}

// NewAggregatedStats returns zeroed stats
func NewAggregatedStats() *AggregatedStats {
	return &AggregatedStats{
		TotalVotesFor:     new(big.Int),
		TotalVotesAgainst: new(big.Int),
		TotalVotesAbstain: new(big.Int),
	}
}

// Add accumulates one proposal's tallies
func (s *AggregatedStats) Add(p *Proposal) {
	s.TotalProposals++
	s.TotalVotesFor.Add(s.TotalVotesFor, orZero(p.VotesFor))
	s.TotalVotesAgainst.Add(s.TotalVotesAgainst, orZero(p.VotesAgainst))
	s.TotalVotesAbstain.Add(s.TotalVotesAbstain, orZero(p.VotesAbstain))
}

// TotalVotes sums all three tallies
func (s *AggregatedStats) TotalVotes() *big.Int {
	total := new(big.Int).Add(s.TotalVotesFor, s.TotalVotesAgainst)
	return total.Add(total, s.TotalVotesAbstain)
}
