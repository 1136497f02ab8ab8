package render

import (
	"fmt"
	"io"

	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// RenderConfig renders the local config together with what was resolved for this run
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult, configSource string) error {
	if result.Exists {
		fmt.Fprintln(r.out, "📋 Current config:")
		fmt.Fprintf(r.out, "Network:   %s\n", orNotSet(result.Config.Network))
		fmt.Fprintf(r.out, "Wallet:    %s\n", orNotSet(result.Config.Wallet))
		fmt.Fprintf(r.out, "📁 config file: %s\n", result.ConfigPath)
	} else {
		fmt.Fprintf(r.out, "No %s file found\n", result.ConfigPath)
	}

	fmt.Fprintln(r.out)
	sectionHeaderStyle.Fprintln(r.out, "Resolved:")
	if configSource != "" {
		fmt.Fprintf(r.out, "📦 Config source: %s\n", configSource)
	} else {
		fmt.Fprintf(r.out, "📦 Config source: environment only\n")
	}
	if result.Network != nil {
		fmt.Fprintf(r.out, "Network:   %s (%s)\n", result.Network.Name, result.Network.RPCURL)
	} else {
		fmt.Fprintf(r.out, "Network:   %s\n", orNotSet(""))
	}
	fmt.Fprintf(r.out, "Wallet:    %s\n", orNotSet(result.WalletName))
	fmt.Fprintf(r.out, "Governor:  %s\n", orNotSet(result.Contracts.Governor))
	fmt.Fprintf(r.out, "Token:     %s\n", orNotSet(result.Contracts.Token))
	if result.Contracts.Timelock != "" {
		fmt.Fprintf(r.out, "Timelock:  %s\n", result.Contracts.Timelock)
	}
	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to: %s", result.Key, result.Value)))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", result.ConfigPath)
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyNetwork:
		fmt.Fprintln(r.out, FormatSuccess("Removed network from config (falls back to devote.toml defaults)"))
	case config.ConfigKeyWallet:
		fmt.Fprintln(r.out, FormatSuccess("Removed wallet from config (falls back to devote.toml defaults)"))
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", result.ConfigPath)
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
