package models

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// VoteType is the support value passed to castVote.
// Against=0, For=1, Abstain=2 matches GovernorCountingSimple.
type VoteType uint8

const (
	VoteAgainst VoteType = 0
	VoteFor     VoteType = 1
	VoteAbstain VoteType = 2
)

// VoteTypes lists the options in display order
var VoteTypes = []VoteType{VoteFor, VoteAgainst, VoteAbstain}

func (v VoteType) String() string {
	switch v {
	case VoteAgainst:
		return "against"
	case VoteFor:
		return "for"
	case VoteAbstain:
		return "abstain"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(v))
	}
}

// Valid reports whether v is one of the three supported options
func (v VoteType) Valid() bool {
	return v <= VoteAbstain
}

// ParseVoteType accepts "for", "against", "abstain" or the numeric encoding.
func ParseVoteType(s string) (VoteType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "for", "yes", "y":
		return VoteFor, nil
	case "against", "no", "n":
		return VoteAgainst, nil
	case "abstain":
		return VoteAbstain, nil
	}

	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil || !VoteType(n).Valid() {
		return 0, fmt.Errorf("unknown vote option %q (valid: for, against, abstain)", s)
	}
	return VoteType(n), nil
}

// VoteReceipt is the immutable record of one address's vote on one proposal.
type VoteReceipt struct {
	HasVoted bool     `json:"hasVoted" yaml:"hasVoted"`
	Support  VoteType `json:"support" yaml:"support"`
	Weight   *big.Int `json:"weight" yaml:"weight"`
}

// MarshalText lets receipts serialize vote types by name
func (v VoteType) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText parses names or numbers
func (v *VoteType) UnmarshalText(data []byte) error {
	parsed, err := ParseVoteType(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
