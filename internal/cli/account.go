package cli

import (
	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/cli/render"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// NewAccountCmd creates the account command
func NewAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account [address]",
		Short: "Show token balance, voting power and delegate",
		Long: `Show the governance token position of the connected wallet or of
any address. Warns when tokens are held but not delegated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var params usecase.ShowAccountParams
			if len(args) == 1 {
				params.Address = args[0]
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			account, err := app.ShowAccount.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, account, func() error {
				return render.NewAccountRenderer(cmd.OutOrStdout()).Render(account)
			})
		},
	}
}
