package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/app"
	"github.com/devote-org/devote-cli/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// commands that run without building the app
var skipAppInit = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"init":       true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devote",
		Short: "Vote on and manage on-chain governance proposals",
		Long: `devote is a command line client for token governance: a votes token,
a governor contract and a timelock.

Browse proposals, vote, delegate voting power, create proposals and
queue or execute the ones that passed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipAppInit[cmd.Name()] {
				return nil
			}

			projectRoot, err := resolveProjectRoot(cmd)
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}
			cmd.SetContext(ctx)

			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("network", "n", "", "Network from devote.toml [networks]")
	flags.StringP("wallet", "w", "", "Wallet from devote.toml [wallets]")
	flags.StringP("output", "o", "table", "Output format: table, json or yaml")
	flags.Bool("json", false, "Shorthand for --output json")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Bool("non-interactive", false, "Disable prompts; selections must be passed as arguments")
	flags.Duration("timeout", 0, "Abort the command after this long (default 5m)")
	flags.String("rpc-url", "", "RPC endpoint, overrides the selected network")
	flags.String("governor", "", "Governor contract address")
	flags.String("token", "", "Governance token address")
	flags.String("config", "", "Path to devote.toml or its directory")

	rootCmd.AddGroup(&cobra.Group{ID: "governance", Title: "Governance Commands"})
	rootCmd.AddGroup(&cobra.Group{ID: "account", Title: "Account Commands"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands"})

	addToGroup(rootCmd, "governance",
		NewProposalsCmd(),
		NewShowCmd(),
		NewVoteCmd(),
		NewProposeCmd(),
		NewQueueCmd(),
		NewExecuteCmd(),
		NewStatsCmd(),
		NewWatchCmd(),
	)
	addToGroup(rootCmd, "account",
		NewAccountCmd(),
		NewDelegateCmd(),
	)
	addToGroup(rootCmd, "management",
		NewInitCmd(),
		NewDoctorCmd(),
		NewNetworksCmd(),
		NewConfigCmd(),
	)
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func addToGroup(root *cobra.Command, group string, cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.GroupID = group
		root.AddCommand(c)
	}
}

// resolveProjectRoot honors --config, then walks up to devote.toml and falls
// back to the working directory
func resolveProjectRoot(cmd *cobra.Command) (string, error) {
	if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
		path, err := filepath.Abs(f.Value.String())
		if err != nil {
			return "", err
		}
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("config path %s: %w", f.Value.String(), err)
		}
		if !info.IsDir() {
			path = filepath.Dir(path)
		}
		return path, nil
	}

	projectRoot, err := config.FindProjectRoot()
	if errors.Is(err, config.ErrNoProjectFile) {
		return os.Getwd()
	}
	return projectRoot, err
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}
