package cli

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/cli/render"
	"github.com/devote-org/devote-cli/internal/usecase"
)

type networkOutput struct {
	Name    string `json:"name" yaml:"name"`
	ChainID uint64 `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	RPCURL  string `json:"rpcUrl,omitempty" yaml:"rpcUrl,omitempty"`
	Current bool   `json:"current" yaml:"current"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks from devote.toml",
		Long: `List the networks configured in the [networks] section of devote.toml.
The selected network is marked with *. Pass --probe to dial each RPC
endpoint and compare its chain ID with the configured one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Probe: probe})
			if err != nil {
				return err
			}

			out := lo.Map(result.Networks, func(n usecase.NetworkStatus, _ int) networkOutput {
				o := networkOutput{
					Name:    n.Name,
					ChainID: n.ChainID,
					RPCURL:  n.RPCURL,
					Current: n.Name == result.Current,
				}
				if n.Error != nil {
					o.Error = n.Error.Error()
				}
				return o
			})

			return output(cmd, app, out, func() error {
				return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
			})
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "Dial each RPC endpoint and check its chain ID")

	return cmd
}
