package render

import (
	"math/big"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// voteDecimals is the precision of governance token weights
const voteDecimals = 18

var (
	titleCaser = cases.Title(language.English)

	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	labelStyle         = color.New(color.Faint)
	addressStyle       = color.New(color.FgWhite)
	hashStyle          = color.New(color.FgHiBlack)
	forStyle           = color.New(color.FgGreen)
	againstStyle       = color.New(color.FgRed)
	abstainStyle       = color.New(color.FgYellow)
	optimisticStyle    = color.New(color.FgYellow, color.Faint)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon. Only the
// outermost part of a wrapped chain is capitalized.
func FormatError(message string) string {
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// FormatStatus title-cases and colors a proposal status
func FormatStatus(status models.ProposalStatus) string {
	label := titleCaser.String(string(status))
	switch status {
	case models.ProposalStatusActive:
		return color.New(color.FgCyan, color.Bold).Sprint(label)
	case models.ProposalStatusSucceeded:
		return forStyle.Sprint(label)
	case models.ProposalStatusExecuted:
		return color.New(color.FgGreen, color.Bold).Sprint(label)
	case models.ProposalStatusDefeated:
		return againstStyle.Sprint(label)
	default:
		return labelStyle.Sprint(label)
	}
}

// FormatVoteType title-cases and colors a vote option
func FormatVoteType(v models.VoteType) string {
	label := titleCaser.String(v.String())
	switch v {
	case models.VoteFor:
		return forStyle.Sprint(label)
	case models.VoteAgainst:
		return againstStyle.Sprint(label)
	default:
		return abstainStyle.Sprint(label)
	}
}

// FormatVotes renders a vote weight in whole tokens
func FormatVotes(weight *big.Int) string {
	if weight == nil {
		return "0"
	}
	return domain.FormatTokenAmount(weight, voteDecimals)
}

// proposalTitle falls back to the first line of the description
func proposalTitle(p *models.Proposal) string {
	if p.Title != "" {
		return p.Title
	}
	title, body := models.ParseDescription(p.Description)
	if title != "" {
		return title
	}
	line, _, _ := strings.Cut(strings.TrimSpace(body), "\n")
	return line
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
