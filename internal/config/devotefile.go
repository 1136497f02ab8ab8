package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/devote-org/devote-cli/internal/domain/config"
)

// ProjectFileName is the project configuration file looked up from the working directory
const ProjectFileName = config.ProjectFileName

// loadEnvFiles loads .env and .env.local so ${VAR} references in devote.toml can be expanded.
// Variables already present in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadDevoteFile loads and parses devote.toml.
// Returns (nil, nil) if the project has no devote.toml.
func LoadDevoteFile(projectRoot string) (*config.DevoteFileConfig, error) {
	path := filepath.Join(projectRoot, ProjectFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	loadEnvFiles(projectRoot)

	var cfg config.DevoteFileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	if cfg.Wallets == nil {
		cfg.Wallets = make(map[string]config.WalletConfig)
	}

	expandContracts(&cfg.Contracts)

	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		if network.Contracts != nil {
			expandContracts(network.Contracts)
		}
		cfg.Networks[name] = network
	}

	for name, wallet := range cfg.Wallets {
		wallet.PrivateKey = os.ExpandEnv(wallet.PrivateKey)
		wallet.Keystore = os.ExpandEnv(wallet.Keystore)
		wallet.Address = os.ExpandEnv(wallet.Address)
		if wallet.Type == "" {
			wallet.Type = inferWalletType(wallet)
		}
		if wallet.Keystore != "" && !filepath.IsAbs(wallet.Keystore) {
			wallet.Keystore = filepath.Join(projectRoot, wallet.Keystore)
		}
		cfg.Wallets[name] = wallet
	}

	return &cfg, nil
}

func expandContracts(c *config.Contracts) {
	c.Governor = os.ExpandEnv(c.Governor)
	c.Token = os.ExpandEnv(c.Token)
	c.Timelock = os.ExpandEnv(c.Timelock)
}

func inferWalletType(w config.WalletConfig) config.WalletType {
	switch {
	case w.PrivateKey != "":
		return config.WalletTypePrivateKey
	case w.Keystore != "":
		return config.WalletTypeKeystore
	default:
		return config.WalletTypeAddress
	}
}
