package models

import (
	"math/big"
	"strings"
	"time"
)

// ProposalStatus is the lifecycle state derived from a proposal's tallies and voting window
type ProposalStatus string

const (
	ProposalStatusPending   ProposalStatus = "pending"
	ProposalStatusActive    ProposalStatus = "active"
	ProposalStatusDefeated  ProposalStatus = "defeated"
	ProposalStatusSucceeded ProposalStatus = "succeeded"
	ProposalStatusExecuted  ProposalStatus = "executed"
)

// Proposal is a read-only snapshot of a proposal as stored by the governor contract.
type Proposal struct {
	ID           uint64    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Description  string    `json:"description" yaml:"description"`
	VotesFor     *big.Int  `json:"votesFor" yaml:"votesFor"`
	VotesAgainst *big.Int  `json:"votesAgainst" yaml:"votesAgainst"`
	VotesAbstain *big.Int  `json:"votesAbstain" yaml:"votesAbstain"`
	StartTime    time.Time `json:"startTime" yaml:"startTime"`
	EndTime      time.Time `json:"endTime" yaml:"endTime"`
	Executed     bool      `json:"executed" yaml:"executed"`
}

// TotalVotes returns the sum of all three tallies
func (p *Proposal) TotalVotes() *big.Int {
	total := new(big.Int)
	for _, v := range []*big.Int{p.VotesFor, p.VotesAgainst, p.VotesAbstain} {
		if v != nil {
			total.Add(total, v)
		}
	}
	return total
}

// Clone returns a deep copy so overlays never alias snapshot tallies
func (p *Proposal) Clone() *Proposal {
	if p == nil {
		return nil
	}
	c := *p
	c.VotesFor = cloneInt(p.VotesFor)
	c.VotesAgainst = cloneInt(p.VotesAgainst)
	c.VotesAbstain = cloneInt(p.VotesAbstain)
	return &c
}

// AddVote adds weight to the tally of the given vote type
func (p *Proposal) AddVote(voteType VoteType, weight *big.Int) {
	if weight == nil {
		return
	}
	switch voteType {
	case VoteFor:
		p.VotesFor = new(big.Int).Add(orZero(p.VotesFor), weight)
	case VoteAgainst:
		p.VotesAgainst = new(big.Int).Add(orZero(p.VotesAgainst), weight)
	case VoteAbstain:
		p.VotesAbstain = new(big.Int).Add(orZero(p.VotesAbstain), weight)
	}
}

// Percentages holds the rounded share of each vote type
type Percentages struct {
	For     int `json:"for" yaml:"for"`
	Against int `json:"against" yaml:"against"`
	Abstain int `json:"abstain" yaml:"abstain"`
}

// ProposalView is a proposal joined with the caller's receipt and derived display values.
type ProposalView struct {
	Proposal    *Proposal      `json:"proposal" yaml:"proposal"`
	Status      ProposalStatus `json:"status" yaml:"status"`
	Active      bool           `json:"active" yaml:"active"`
	Percentages Percentages    `json:"percentages" yaml:"percentages"`
	HasVoted    bool           `json:"hasVoted" yaml:"hasVoted"`
	Receipt     *VoteReceipt   `json:"receipt,omitempty" yaml:"receipt,omitempty"`

	// Optimistic is set when the record comes from a local overlay
	// rather than an authoritative fetch.
	Optimistic bool `json:"optimistic,omitempty" yaml:"optimistic,omitempty"`
}

// ProposalAction is a single call executed by the timelock when a proposal passes.
type ProposalAction struct {
	Target   string   `json:"target" yaml:"target"`
	Value    *big.Int `json:"value" yaml:"value"`
	Calldata []byte   `json:"calldata" yaml:"calldata"`
	// Signature is informational, e.g. "transfer(address,uint256)"
	Signature string `json:"signature,omitempty" yaml:"signature,omitempty"`
}

// ZeroAddress is the target of text-only proposals
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// TextProposalAction returns the no-op action used by proposals without on-chain effects
func TextProposalAction() ProposalAction {
	return ProposalAction{
		Target:   ZeroAddress,
		Value:    new(big.Int),
		Calldata: []byte{},
	}
}

const titlePrefix = "# "

// FormatDescription builds the stored description with a markdown title line
func FormatDescription(title, body string) string {
	return titlePrefix + strings.TrimSpace(title) + "\n\n" + strings.TrimSpace(body)
}

// ParseDescription splits a stored description into its title and body.
// Descriptions without a markdown title prefix return an empty title.
func ParseDescription(description string) (title, body string) {
	if !strings.HasPrefix(description, titlePrefix) {
		return "", description
	}
	rest := strings.TrimPrefix(description, titlePrefix)
	title, body, _ = strings.Cut(rest, "\n")
	return strings.TrimSpace(title), strings.TrimSpace(body)
}

func cloneInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
