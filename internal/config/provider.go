package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/devote-org/devote-cli/internal/domain/config"
)

// DataDirName holds local state such as config.local.json
const DataDirName = config.DataDirName

// ErrNoProjectFile is returned when no devote.toml is found up the directory tree
var ErrNoProjectFile = errors.New("not in a devote project (devote.toml not found)")

// defaultPollInterval is used when neither --poll-interval nor a network block_time is set
const defaultPollInterval = 2 * time.Second

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			// Running without a project file is allowed, everything can come from env
			if projectRoot, err = os.Getwd(); err != nil {
				return nil, err
			}
		}
	}

	output, err := parseOutput(v)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Output:         output,
		Timeout:        v.GetDuration("timeout"),
		PollInterval:   v.GetDuration("poll_interval"),
		ConfirmTimeout: v.GetDuration("confirm_timeout"),
	}

	devoteFile, err := LoadDevoteFile(projectRoot)
	if err != nil {
		return nil, err
	}
	if devoteFile != nil {
		cfg.ConfigSource = ProjectFileName
		cfg.Contracts = devoteFile.Contracts
	} else {
		devoteFile = &config.DevoteFileConfig{}
	}
	cfg.DevoteConfig = devoteFile

	if err := resolveNetwork(v, cfg); err != nil {
		return nil, err
	}

	// Explicit contract overrides (flags or DEVOTE_GOVERNOR / DEVOTE_TOKEN / DEVOTE_TIMELOCK)
	cfg.Contracts = mergeContracts(cfg.Contracts, config.Contracts{
		Governor: v.GetString("governor"),
		Token:    v.GetString("token"),
		Timelock: v.GetString("timelock"),
	})

	if err := resolveWallet(v, cfg); err != nil {
		return nil, err
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
		if cfg.Network != nil && cfg.Network.BlockTime > 0 {
			cfg.PollInterval = cfg.Network.BlockTime
		}
	}

	return cfg, nil
}

func parseOutput(v *viper.Viper) (config.OutputFormat, error) {
	if v.GetBool("json") {
		return config.OutputJSON, nil
	}
	switch out := config.OutputFormat(strings.ToLower(v.GetString("output"))); out {
	case "", config.OutputTable:
		return config.OutputTable, nil
	case config.OutputJSON, config.OutputYAML:
		return out, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: table, json, yaml)", out)
	}
}

// resolveNetwork picks the network from --network, local config or [defaults].
// A bare DEVOTE_RPC_URL defines an ad-hoc network.
func resolveNetwork(v *viper.Viper, cfg *config.RuntimeConfig) error {
	file := cfg.DevoteConfig
	networkName := firstNonEmpty(v.GetString("network"), file.Defaults.Network)
	if networkName == "" && len(file.Networks) == 1 {
		for name := range file.Networks {
			networkName = name
		}
	}

	if rpcURL := v.GetString("rpc_url"); rpcURL != "" {
		cfg.Network = &config.Network{
			Name:    firstNonEmpty(networkName, "custom"),
			RPCURL:  rpcURL,
			ChainID: v.GetUint64("chain_id"),
		}
		return nil
	}

	if networkName == "" {
		return nil
	}

	network, contracts, err := NewNetworkResolver(file).Resolve(networkName)
	if err != nil {
		return fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	cfg.Network = network
	cfg.Contracts = contracts
	return nil
}

// resolveWallet picks the signing wallet from DEVOTE_PRIVATE_KEY, --wallet,
// local config or [defaults].
func resolveWallet(v *viper.Viper, cfg *config.RuntimeConfig) error {
	if pk := v.GetString("private_key"); pk != "" {
		cfg.WalletName = "env"
		cfg.Wallet = &config.WalletConfig{Type: config.WalletTypePrivateKey, PrivateKey: pk}
		return nil
	}

	walletName := firstNonEmpty(v.GetString("wallet"), cfg.DevoteConfig.Defaults.Wallet)
	if walletName == "" {
		return nil
	}

	wallet, ok := cfg.DevoteConfig.Wallets[walletName]
	if !ok {
		return fmt.Errorf("wallet '%s' not found in %s [wallets]", walletName, ProjectFileName)
	}
	cfg.WalletName = walletName
	cfg.Wallet = &wallet
	return nil
}

// FindProjectRoot walks up from current directory to find devote.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProjectFile
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("DEVOTE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("confirm_timeout", "3m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("output", string(config.OutputTable))
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}
