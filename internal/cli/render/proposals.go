package render

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
	"github.com/devote-org/devote-cli/internal/usecase"
)

const (
	titleWidth = 40
	barWidth   = 20
)

// ProposalsRenderer renders proposal lists, details and stats
type ProposalsRenderer struct {
	out io.Writer
}

// NewProposalsRenderer creates a new proposals renderer
func NewProposalsRenderer(out io.Writer) *ProposalsRenderer {
	return &ProposalsRenderer{out: out}
}

// RenderList prints one row per proposal in index order
func (r *ProposalsRenderer) RenderList(snapshot *usecase.ProposalSnapshot, now time.Time) error {
	if snapshot == nil || len(snapshot.Proposals) == 0 {
		fmt.Fprintln(r.out, "No proposals found")
		return nil
	}

	fmt.Fprint(r.out, ProposalTable(snapshot.Proposals, now, snapshot.Account != nil))

	if snapshot.Stale {
		fmt.Fprintln(r.out, FormatWarning("showing cached results, a refresh is pending"))
	}
	return nil
}

// ProposalTable formats views as a table. The "Your vote" column is only
// shown when an account was connected.
func ProposalTable(views []*models.ProposalView, now time.Time, withVotes bool) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Format.Header = text.FormatDefault

	header := table.Row{"ID", "Title", "Status", "For", "Against", "Abstain", "Ends"}
	if withVotes {
		header = append(header, "Your vote")
	}
	t.AppendHeader(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	for _, view := range views {
		p := view.Proposal
		row := table.Row{
			fmt.Sprintf("#%d", p.ID),
			truncate(proposalTitle(p), titleWidth),
			FormatStatus(view.Status),
			forStyle.Sprintf("%d%%", view.Percentages.For),
			againstStyle.Sprintf("%d%%", view.Percentages.Against),
			abstainStyle.Sprintf("%d%%", view.Percentages.Abstain),
			domain.TimeRemaining(p.EndTime, now),
		}
		if withVotes {
			row = append(row, formatReceipt(view))
		}
		t.AppendRow(row)
	}
	return t.Render() + "\n"
}

// RenderDetail prints a single proposal
func (r *ProposalsRenderer) RenderDetail(result *usecase.ShowProposalResult) error {
	view := result.View
	p := view.Proposal

	sectionHeaderStyle.Fprintf(r.out, "Proposal #%d: %s\n", p.ID, result.Title)
	fmt.Fprintln(r.out, strings.Repeat("─", 60))

	r.field("Status", FormatStatus(view.Status))
	r.field("Voting", result.TimeRemaining)
	r.field("Starts", p.StartTime.UTC().Format(time.RFC1123))
	r.field("Ends", p.EndTime.UTC().Format(time.RFC1123))
	fmt.Fprintln(r.out)

	sectionHeaderStyle.Fprintln(r.out, "Votes")
	r.tally("For", forStyle, p.VotesFor, view.Percentages.For)
	r.tally("Against", againstStyle, p.VotesAgainst, view.Percentages.Against)
	r.tally("Abstain", abstainStyle, p.VotesAbstain, view.Percentages.Abstain)
	r.field("Total", FormatVotes(p.TotalVotes()))
	fmt.Fprintln(r.out)

	switch {
	case view.HasVoted:
		r.field("Your vote", formatReceipt(view))
	case result.CanVote:
		r.field("Your vote", fmt.Sprintf("not cast yet, run: devote vote %d", p.ID))
	}

	if body := strings.TrimSpace(result.Body); body != "" {
		fmt.Fprintln(r.out)
		sectionHeaderStyle.Fprintln(r.out, "Description")
		fmt.Fprintln(r.out, body)
	}
	return nil
}

// RenderStats prints governance-wide totals
func (r *ProposalsRenderer) RenderStats(stats *models.AggregatedStats) error {
	total := stats.TotalVotes()
	sectionHeaderStyle.Fprintln(r.out, "Governance stats")
	r.field("Proposals", fmt.Sprintf("%d (%d active)", stats.TotalProposals, stats.ActiveProposals))
	r.tally("For", forStyle, stats.TotalVotesFor, domain.Percent(stats.TotalVotesFor, total))
	r.tally("Against", againstStyle, stats.TotalVotesAgainst, domain.Percent(stats.TotalVotesAgainst, total))
	r.tally("Abstain", abstainStyle, stats.TotalVotesAbstain, domain.Percent(stats.TotalVotesAbstain, total))
	r.field("Total votes", FormatVotes(total))
	r.field("Voters seen", fmt.Sprintf("%d", stats.ActiveVoters))
	return nil
}

func (r *ProposalsRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprintf("%-12s", label+":"), value)
}

func (r *ProposalsRenderer) tally(label string, style *color.Color, votes *big.Int, percent int) {
	r.field(label, fmt.Sprintf("%s %s %s", style.Sprint(Bar(percent, barWidth)), style.Sprintf("%3d%%", percent), FormatVotes(votes)))
}

// Bar draws a fixed-width share bar for a percentage
func Bar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := (percent*width + 50) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func formatReceipt(view *models.ProposalView) string {
	if !view.HasVoted || view.Receipt == nil {
		return ""
	}
	s := FormatVoteType(view.Receipt.Support)
	if view.Optimistic {
		s += optimisticStyle.Sprint(" (pending)")
	}
	return s
}
