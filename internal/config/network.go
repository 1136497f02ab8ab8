package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/devote-org/devote-cli/internal/domain/config"
)

// NetworkResolver resolves network names declared in devote.toml
type NetworkResolver struct {
	file *config.DevoteFileConfig
}

// NewNetworkResolver creates a new network resolver. A nil file resolves nothing.
func NewNetworkResolver(file *config.DevoteFileConfig) *NetworkResolver {
	if file == nil {
		file = &config.DevoteFileConfig{}
	}
	return &NetworkResolver{file: file}
}

// Names returns the configured network names in sorted order
func (r *NetworkResolver) Names() []string {
	names := lo.Keys(r.file.Networks)
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration and the contract
// addresses that apply on it.
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, config.Contracts, error) {
	nc, exists := r.file.Networks[networkName]
	if !exists {
		return nil, config.Contracts{}, fmt.Errorf("network '%s' not found in %s [networks]", networkName, ProjectFileName)
	}
	if nc.RPCURL == "" {
		return nil, config.Contracts{}, fmt.Errorf("network '%s' has no rpc_url", networkName)
	}

	var blockTime time.Duration
	if nc.BlockTime != "" {
		d, err := time.ParseDuration(nc.BlockTime)
		if err != nil {
			return nil, config.Contracts{}, fmt.Errorf("network '%s' has invalid block_time %q: %w", networkName, nc.BlockTime, err)
		}
		blockTime = d
	}

	explorer := nc.ExplorerURL
	if explorer == "" {
		explorer = defaultExplorerURL(nc.ChainID)
	}

	contracts := r.file.Contracts
	if nc.Contracts != nil {
		contracts = mergeContracts(contracts, *nc.Contracts)
	}

	return &config.Network{
		Name:        networkName,
		RPCURL:      nc.RPCURL,
		ChainID:     nc.ChainID,
		ExplorerURL: explorer,
		BlockTime:   blockTime,
	}, contracts, nil
}

// mergeContracts overlays non-empty addresses from override onto base
func mergeContracts(base, override config.Contracts) config.Contracts {
	if override.Governor != "" {
		base.Governor = override.Governor
	}
	if override.Token != "" {
		base.Token = override.Token
	}
	if override.Timelock != "" {
		base.Timelock = override.Timelock
	}
	return base
}

// defaultExplorerURL returns a well-known block explorer for the chain
func defaultExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 17000:
		return "https://holesky.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 84532:
		return "https://sepolia.basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 43114:
		return "https://snowtrace.io"
	case 56:
		return "https://bscscan.com"
	default:
		return ""
	}
}
