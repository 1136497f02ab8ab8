package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Network    *Network // nil if not specified
	Contracts  Contracts
	WalletName string
	Wallet     *WalletConfig // nil when no wallet is configured

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         OutputFormat
	Timeout        time.Duration
	PollInterval   time.Duration
	ConfirmTimeout time.Duration

	// Config source tracking
	ConfigSource string // "devote.toml" or "" when running without a project file

	// Resolved project file
	DevoteConfig *DevoteFileConfig
}

// Network represents network configuration
type Network struct {
	ChainID     uint64        `json:"chainId"`
	Name        string        `json:"name"`
	RPCURL      string        `json:"rpcUrl"`
	ExplorerURL string        `json:"explorerUrl,omitempty"`
	BlockTime   time.Duration `json:"blockTime,omitempty"`
}

// Contracts holds the addresses of the governance contracts
type Contracts struct {
	Governor string `json:"governor" toml:"governor,omitempty"`
	Token    string `json:"token" toml:"token,omitempty"`
	Timelock string `json:"timelock,omitempty" toml:"timelock,omitempty"`
}

// OutputFormat selects how command results are printed
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// IsStructured reports whether the output is machine readable
func (o OutputFormat) IsStructured() bool {
	return o == OutputJSON || o == OutputYAML
}
