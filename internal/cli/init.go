package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/app"
	"github.com/devote-org/devote-cli/internal/cli/render"
	domainconfig "github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var (
		chainID  uint64
		timelock string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create devote.toml in the current directory",
		Long: `Create devote.toml with a single network, the .devote directory for
local settings and an .env.example listing the signer variables.

The network, RPC URL, governor and token come from the global flags:

  devote init --network sepolia --rpc-url https://rpc.sepolia.org \
    --governor 0x... --token 0x...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := initRoot(cmd)
			if err != nil {
				return err
			}

			params := usecase.InitProjectParams{
				Network:  flagString(cmd, "network"),
				RPCURL:   flagString(cmd, "rpc-url"),
				ChainID:  chainID,
				Governor: flagString(cmd, "governor"),
				Token:    flagString(cmd, "token"),
				Timelock: timelock,
				Force:    force,
			}

			initProject := app.InitProjectUseCase(&domainconfig.RuntimeConfig{ProjectRoot: root})
			result, err := initProject.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewInitRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().Uint64Var(&chainID, "chain-id", 0, "Chain ID of the network")
	cmd.Flags().StringVar(&timelock, "timelock", "", "Timelock contract address")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing devote.toml")

	return cmd
}

// initRoot is the --config directory when given, the working directory otherwise.
// The project file doesn't exist yet, so there is nothing to walk up to.
func initRoot(cmd *cobra.Command) (string, error) {
	if flagString(cmd, "config") != "" {
		if info, err := os.Stat(flagString(cmd, "config")); err == nil && info.IsDir() {
			return resolveProjectRoot(cmd)
		}
	}
	return os.Getwd()
}

func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}
