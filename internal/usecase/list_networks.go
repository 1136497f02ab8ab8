package usecase

import (
	"context"
	"fmt"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Probe dials each RPC endpoint and compares chain ids
	Probe bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Current  string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	ChainID uint64
	RPCURL  string
	Error   error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver  NetworkResolver
	inspector ChainInspector
	current   string
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, inspector ChainInspector, current CurrentNetwork) *ListNetworks {
	return &ListNetworks{
		resolver:  resolver,
		inspector: inspector,
		current:   string(current),
	}
}

// CurrentNetwork is the name of the network selected for this run
type CurrentNetwork string

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{
			Name: name,
		}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
			networks = append(networks, status)
			continue
		}
		status.ChainID = info.ChainID
		status.RPCURL = info.RPCURL

		if params.Probe {
			chainID, err := uc.inspector.ChainID(ctx, info.RPCURL)
			switch {
			case err != nil:
				status.Error = err
			case info.ChainID != 0 && chainID != info.ChainID:
				status.Error = fmt.Errorf("chain ID mismatch: expected %d, got %d", info.ChainID, chainID)
			default:
				status.ChainID = chainID
			}
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
		Current:  uc.current,
	}, nil
}
