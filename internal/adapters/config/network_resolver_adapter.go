package config

import (
	"context"

	"github.com/devote-org/devote-cli/internal/config"
	domainconfig "github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// NetworkResolverAdapter adapts config.NetworkResolver to usecase.NetworkResolver
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
}

// NewNetworkResolverAdapter creates a resolver over the loaded devote.toml
func NewNetworkResolverAdapter(cfg *domainconfig.RuntimeConfig) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: config.NewNetworkResolver(cfg.DevoteConfig),
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.Names()
}

// ResolveNetwork resolves a network name to its configuration
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	network, _, err := a.resolver.Resolve(networkName)
	return network, err
}

var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
