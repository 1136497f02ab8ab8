package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/cli/watch"
	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var (
		interval time.Duration
		voter    string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live proposal dashboard",
		Long: `Show the proposal table and refresh it on an interval. A failed refresh
keeps the last results on screen and is retried on the next tick.

Keys: r refreshes now, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if app.Config.Output.IsStructured() {
				return fmt.Errorf("%w: watch only renders tables", domain.ErrInvalidInput)
			}

			network := ""
			if app.Config.Network != nil {
				network = app.Config.Network.Name
			}

			// the command timeout bounds each refresh, not the session
			model := watch.New(context.WithoutCancel(cmd.Context()), watch.Options{
				Fetch: func(ctx context.Context) (*usecase.ProposalSnapshot, error) {
					return app.ListProposals.Run(ctx, usecase.ListProposalsParams{Voter: voter, Quiet: true})
				},
				Interval: interval,
				Timeout:  app.Config.Timeout,
				Network:  network,
				Now:      app.Clock,
			})

			_, err = tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", watch.DefaultInterval, "Refresh interval")
	cmd.Flags().StringVar(&voter, "voter", "", "Show receipts for this address instead of the wallet")

	return cmd
}
