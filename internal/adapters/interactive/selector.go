package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/domain/models"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// SelectFunc runs a select prompt and returns the chosen index
type SelectFunc func(prompt promptui.Select) (int, error)

func runSelect(prompt promptui.Select) (int, error) {
	index, _, err := prompt.Run()
	return index, err
}

// SelectorAdapter handles interactive selection of proposals and vote options
type SelectorAdapter struct {
	nonInteractive bool
	clock          usecase.Clock
	run            SelectFunc
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig, clock usecase.Clock) *SelectorAdapter {
	return &SelectorAdapter{
		nonInteractive: cfg.NonInteractive,
		clock:          clock,
		run:            runSelect,
	}
}

// SelectProposal picks one of the open proposals
func (s *SelectorAdapter) SelectProposal(ctx context.Context, proposals []*models.ProposalView, prompt string) (*models.ProposalView, error) {
	if s.nonInteractive {
		return nil, fmt.Errorf("%w: pass a proposal id in non-interactive mode", domain.ErrNoSelectionMade)
	}
	if len(proposals) == 0 {
		return nil, domain.ErrNoSelectionMade
	}

	options := formatProposalOptions(proposals, s.clock())
	index, err := s.run(promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         selectTemplates(),
		Size:              10,
		StartInSearchMode: len(options) > 10,
		Searcher:          createFuzzySearchFunc(options),
	})
	if err != nil {
		return nil, selectionError(err)
	}
	return proposals[index], nil
}

// SelectVoteType picks For, Against or Abstain
func (s *SelectorAdapter) SelectVoteType(ctx context.Context, prompt string) (models.VoteType, error) {
	if s.nonInteractive {
		return 0, fmt.Errorf("%w: pass a vote option (for, against, abstain) in non-interactive mode", domain.ErrNoSelectionMade)
	}

	options := make([]string, len(models.VoteTypes))
	for i, v := range models.VoteTypes {
		options[i] = voteLabel(v)
	}

	index, err := s.run(promptui.Select{
		Label:     prompt,
		Items:     options,
		Templates: selectTemplates(),
	})
	if err != nil {
		return 0, selectionError(err)
	}
	return models.VoteTypes[index], nil
}

func selectTemplates() *promptui.SelectTemplates {
	return &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}
}

// selectionError maps a cancelled prompt to ErrNoSelectionMade
func selectionError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return domain.ErrNoSelectionMade
	}
	return fmt.Errorf("selection failed: %w", err)
}

// formatProposalOptions renders "#3 Treasury top-up (2d 4h remaining, 67% for)"
func formatProposalOptions(proposals []*models.ProposalView, now time.Time) []string {
	options := make([]string, len(proposals))
	for i, view := range proposals {
		p := view.Proposal
		title, _ := models.ParseDescription(p.Description)
		if p.Title != "" {
			title = strings.TrimSpace(strings.TrimPrefix(p.Title, "# "))
		}
		if title == "" {
			title = "(untitled)"
		}
		remaining := domain.TimeRemaining(p.EndTime, now)
		options[i] = fmt.Sprintf("#%d %s (%s, %d%% for)",
			p.ID,
			color.New(color.Bold).Sprint(title),
			remaining,
			view.Percentages.For,
		)
	}
	return options
}

func voteLabel(v models.VoteType) string {
	switch v {
	case models.VoteFor:
		return color.GreenString("For")
	case models.VoteAgainst:
		return color.RedString("Against")
	default:
		return color.YellowString("Abstain")
	}
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.ProposalSelector = (*SelectorAdapter)(nil)
