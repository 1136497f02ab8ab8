package cli

import (
	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/cli/render"
	"github.com/devote-org/devote-cli/internal/domain/models"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// NewProposalsCmd creates the proposals command
func NewProposalsCmd() *cobra.Command {
	var voter string

	cmd := &cobra.Command{
		Use:     "proposals",
		Aliases: []string{"list", "ls"},
		Short:   "List every proposal on the governor",
		Long: `List every proposal with its status, vote shares and time remaining.

When a wallet is connected (or --voter is given) the list also shows how
that address voted. Any failed read aborts the whole listing.

Examples:
  devote proposals
  devote proposals --voter 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266
  devote proposals --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			snapshot, err := app.ListProposals.Run(cmd.Context(), usecase.ListProposalsParams{Voter: voter})
			if err != nil {
				return err
			}

			return output(cmd, app, snapshot, func() error {
				return render.NewProposalsRenderer(cmd.OutOrStdout()).RenderList(snapshot, app.Clock())
			})
		},
	}

	cmd.Flags().StringVar(&voter, "voter", "", "Show receipts for this address instead of the connected wallet")

	return cmd
}

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show vote totals across all proposals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			snapshot, err := app.ListProposals.Run(cmd.Context(), usecase.ListProposalsParams{})
			if err != nil {
				return err
			}

			return output(cmd, app, snapshot.Stats, func() error {
				return render.NewProposalsRenderer(cmd.OutOrStdout()).RenderStats(snapshot.Stats)
			})
		},
	}
}

// proposalOutput is the structured form of a single proposal
type proposalOutput struct {
	models.ProposalView `yaml:",inline"`
	TimeRemaining        string `json:"timeRemaining" yaml:"timeRemaining"`
	CanVote              bool   `json:"canVote" yaml:"canVote"`
	Title                string `json:"title" yaml:"title"`
	Body                 string `json:"body" yaml:"body"`
}

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single proposal",
		Long: `Show one proposal read fresh from the governor, with its full
description, tallies and your vote.

Examples:
  devote show 3
  devote show 3 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowProposal.Run(cmd.Context(), usecase.ShowProposalParams{ID: id})
			if err != nil {
				return err
			}

			out := proposalOutput{
				ProposalView:  *result.View,
				TimeRemaining: result.TimeRemaining,
				CanVote:       result.CanVote,
				Title:         result.Title,
				Body:          result.Body,
			}
			return output(cmd, app, out, func() error {
				return render.NewProposalsRenderer(cmd.OutOrStdout()).RenderDetail(result)
			})
		},
	}
}
