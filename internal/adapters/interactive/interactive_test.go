package interactive

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/domain/models"
	"github.com/devote-org/devote-cli/internal/usecase"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func init() {
	color.NoColor = true
}

func testClock() time.Time { return testNow }

func openView(id uint64, title string) *models.ProposalView {
	return &models.ProposalView{
		Proposal: &models.Proposal{
			ID:           id,
			Description:  models.FormatDescription(title, "body"),
			VotesFor:     big.NewInt(2),
			VotesAgainst: big.NewInt(1),
			VotesAbstain: big.NewInt(0),
			EndTime:      testNow.Add(50 * time.Hour),
		},
		Percentages: models.Percentages{For: 67, Against: 33},
	}
}

func TestSelectProposal(t *testing.T) {
	ctx := context.Background()
	proposals := []*models.ProposalView{openView(0, "First"), openView(1, "Second")}

	t.Run("returns chosen proposal", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{}, testClock)
		var label string
		s.run = func(p promptui.Select) (int, error) {
			label = p.Items.([]string)[1]
			return 1, nil
		}

		got, err := s.SelectProposal(ctx, proposals, "Select a proposal")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), got.Proposal.ID)
		assert.Equal(t, "#1 Second (2d 2h remaining, 67% for)", label)
	})

	t.Run("interrupt is no selection", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{}, testClock)
		s.run = func(promptui.Select) (int, error) { return -1, promptui.ErrInterrupt }

		_, err := s.SelectProposal(ctx, proposals, "Select a proposal")
		assert.ErrorIs(t, err, domain.ErrNoSelectionMade)
	})

	t.Run("non-interactive", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true}, testClock)
		s.run = func(promptui.Select) (int, error) {
			t.Fatal("prompt must not run")
			return 0, nil
		}

		_, err := s.SelectProposal(ctx, proposals, "Select a proposal")
		assert.ErrorIs(t, err, domain.ErrNoSelectionMade)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty list", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{}, testClock)
		_, err := s.SelectProposal(ctx, nil, "Select a proposal")
		assert.ErrorIs(t, err, domain.ErrNoSelectionMade)
	})
}

func TestSelectVoteType(t *testing.T) {
	ctx := context.Background()

	s := NewSelectorAdapter(&config.RuntimeConfig{}, testClock)
	s.run = func(p promptui.Select) (int, error) {
		assert.Equal(t, []string{"For", "Against", "Abstain"}, p.Items)
		return 2, nil
	}
	v, err := s.SelectVoteType(ctx, "Vote on proposal #1")
	require.NoError(t, err)
	assert.Equal(t, models.VoteAbstain, v)

	s.run = func(promptui.Select) (int, error) { return -1, errors.New("tty gone") }
	_, err = s.SelectVoteType(ctx, "Vote on proposal #1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoSelectionMade)
}

func TestFuzzySearch(t *testing.T) {
	search := createFuzzySearchFunc([]string{"#0 Treasury top-up", "#1 Fee switch"})
	assert.True(t, search("", 0))
	assert.True(t, search("treas", 0))
	assert.True(t, search("fsw", 1))
	assert.False(t, search("treas", 1))
}

func TestConfirmTransaction(t *testing.T) {
	ctx := context.Background()
	summary := usecase.TransactionSummary{
		Action:  "Cast vote",
		Target:  "0x1111111111111111111111111111111111111111",
		Details: []string{"Proposal: #1", "Support: for"},
	}

	t.Run("approved", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConfirmerAdapter(&config.RuntimeConfig{})
		c.out = &out
		c.run = func(p promptui.Prompt) (string, error) {
			assert.True(t, p.IsConfirm)
			return "y", nil
		}

		ok, err := c.ConfirmTransaction(ctx, summary)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Cast vote → 0x1111111111111111111111111111111111111111\n  Proposal: #1\n  Support: for\n", out.String())
	})

	t.Run("declined", func(t *testing.T) {
		c := NewConfirmerAdapter(&config.RuntimeConfig{})
		c.out = &bytes.Buffer{}
		c.run = func(promptui.Prompt) (string, error) { return "", promptui.ErrAbort }

		ok, err := c.ConfirmTransaction(ctx, summary)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-interactive approves", func(t *testing.T) {
		c := NewConfirmerAdapter(&config.RuntimeConfig{NonInteractive: true})
		c.run = func(promptui.Prompt) (string, error) {
			t.Fatal("prompt must not run")
			return "", nil
		}

		ok, err := c.ConfirmTransaction(ctx, summary)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
