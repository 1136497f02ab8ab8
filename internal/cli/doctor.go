package cli

import (
	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/cli/render"
)

// NewDoctorCmd creates the doctor command
func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the RPC endpoint, contracts and wallet",
		Long: `Run the setup checks: the RPC endpoint answers with the expected chain ID,
the governor and token addresses hold code and a signer is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CheckSetup.Run(cmd.Context())
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return render.NewChecksRenderer(cmd.OutOrStdout()).Render(result)
			})
		},
	}
}
