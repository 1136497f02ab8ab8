package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/app"
	"github.com/devote-org/devote-cli/internal/usecase"
)

type lifecycleRunner interface {
	Run(ctx context.Context, params usecase.LifecycleParams) (*usecase.LifecycleResult, error)
}

// NewQueueCmd creates the queue command
func NewQueueCmd() *cobra.Command {
	return newLifecycleCmd("queue", "Queued", "Queue a succeeded proposal in the timelock", func(a *app.App) lifecycleRunner {
		return a.QueueProposal
	})
}

// NewExecuteCmd creates the execute command
func NewExecuteCmd() *cobra.Command {
	return newLifecycleCmd("execute", "Executed", "Execute a queued proposal", func(a *app.App) lifecycleRunner {
		return a.ExecuteProposal
	})
}

func newLifecycleCmd(name, verb, short string, runner func(*app.App) lifecycleRunner) *cobra.Command {
	var params usecase.LifecycleParams

	cmd := &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Long: short + `.

The governor identifies a proposal by its actions and description hash,
so the call flags must repeat what was proposed. Text-only proposals need
no flags. The description defaults to the one stored on chain.

Examples:
  devote ` + name + ` 3
  devote ` + name + ` 4 --target 0x5FbDB2315678afecb367f032d93F642f64180aa3 \
    --signature "transfer(address,uint256)" --args '"0x7099…79C8", 1000'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}
			params.ID = id

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := runner(app).Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return newTransactionRenderer(cmd, app).RenderLifecycle(verb, result)
			})
		},
	}

	cmd.Flags().StringVar(&params.Description, "description", "", "Full description used when proposing, if it differs from the stored one")
	cmd.Flags().StringVar(&params.Call.Target, "target", "", "Contract called by the proposal")
	cmd.Flags().StringVar(&params.Call.Signature, "signature", "", "Function signature of the call")
	cmd.Flags().StringVar(&params.Call.Args, "args", "", "Comma separated JSON arguments of the call")
	cmd.Flags().StringVar(&params.Call.Value, "value", "", "Ether sent with the call, in ETH")

	return cmd
}
