package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/devote-org/devote-cli/internal/domain/models"
)

// VotingEnded is shown once a proposal's deadline has passed
const VotingEnded = "Voting ended"

var hundred = big.NewInt(100)

// Percent returns part/total as a whole percentage rounded to the nearest
// integer (halves round up). A zero or nil total yields 0.
func Percent(part, total *big.Int) int {
	if total == nil || total.Sign() <= 0 || part == nil || part.Sign() <= 0 {
		return 0
	}
	// (part*100*2 + total) / (total*2)
	num := new(big.Int).Mul(part, hundred)
	num.Lsh(num, 1)
	num.Add(num, total)
	den := new(big.Int).Lsh(total, 1)
	return int(num.Quo(num, den).Int64())
}

// Percentages computes the share of each tally. When no votes were cast all
// three shares are 0; otherwise they sum to 100 give or take rounding.
func Percentages(p *models.Proposal) models.Percentages {
	total := p.TotalVotes()
	if total.Sign() == 0 {
		return models.Percentages{}
	}
	return models.Percentages{
		For:     Percent(p.VotesFor, total),
		Against: Percent(p.VotesAgainst, total),
		Abstain: Percent(p.VotesAbstain, total),
	}
}

// TimeRemaining renders the time left until end as "Xd Yh remaining",
// "Xh Ym remaining" or "Xm remaining", and VotingEnded once end has passed.
func TimeRemaining(end, now time.Time) string {
	diff := end.Sub(now)
	if diff <= 0 {
		return VotingEnded
	}

	days := int(diff / (24 * time.Hour))
	hours := int((diff % (24 * time.Hour)) / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh remaining", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm remaining", hours, minutes)
	default:
		return fmt.Sprintf("%dm remaining", minutes)
	}
}

// IsOpen is the active/closed badge: strictly before the end time.
func IsOpen(end, now time.Time) bool {
	return now.Before(end)
}

// CanVote reports whether the voting window is currently open for p
func CanVote(p *models.Proposal, now time.Time) bool {
	if p.Executed {
		return false
	}
	return !now.Before(p.StartTime) && IsOpen(p.EndTime, now)
}

// DeriveStatus computes a proposal's status purely from its tallies,
// timestamps and executed flag.
func DeriveStatus(p *models.Proposal, now time.Time) models.ProposalStatus {
	switch {
	case p.Executed:
		return models.ProposalStatusExecuted
	case now.Before(p.StartTime):
		return models.ProposalStatusPending
	case IsOpen(p.EndTime, now):
		return models.ProposalStatusActive
	}

	forVotes := p.VotesFor
	if forVotes == nil {
		forVotes = new(big.Int)
	}
	against := p.VotesAgainst
	if against == nil {
		against = new(big.Int)
	}
	if forVotes.Cmp(against) > 0 {
		return models.ProposalStatusSucceeded
	}
	return models.ProposalStatusDefeated
}

// NewProposalView joins a proposal with an optional receipt
func NewProposalView(p *models.Proposal, receipt *models.VoteReceipt, now time.Time) *models.ProposalView {
	view := &models.ProposalView{
		Proposal:    p,
		Status:      DeriveStatus(p, now),
		Active:      IsOpen(p.EndTime, now),
		Percentages: Percentages(p),
	}
	if receipt != nil && receipt.HasVoted {
		view.HasVoted = true
		view.Receipt = receipt
	}
	return view
}

// FormatTokenAmount renders a base-unit amount with the given decimals,
// trimming trailing zeros ("1500000000000000000", 18 -> "1.5").
func FormatTokenAmount(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	neg := amount.Sign() < 0
	abs := new(big.Int).Abs(amount)

	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, unit, new(big.Int))

	out := whole.String()
	if frac.Sign() > 0 {
		fs := frac.String()
		fs = strings.Repeat("0", int(decimals)-len(fs)) + fs
		out += "." + strings.TrimRight(fs, "0")
	}
	if neg {
		out = "-" + out
	}
	return out
}

// ParseTokenAmount parses a decimal string ("0.25") into base units
func ParseTokenAmount(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidInput, s, decimals)
	}
	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	if digits == "" {
		digits = "0"
	}

	v, ok := new(big.Int).SetString(digits, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: invalid amount %q", ErrInvalidInput, s)
	}
	return v, nil
}
