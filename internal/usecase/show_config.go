package usecase

import (
	"context"

	"github.com/devote-org/devote-cli/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool
	Network    *config.Network
	Contracts  config.Contracts
	WalletName string
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	cfg   *config.RuntimeConfig
	store LocalConfigStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, store LocalConfigStore) *ShowConfig {
	return &ShowConfig{
		cfg:   cfg,
		store: store,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	exists := uc.store.Exists()

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Config:     local,
		ConfigPath: uc.store.GetPath(),
		Exists:     exists,
		Network:    uc.cfg.Network,
		Contracts:  uc.cfg.Contracts,
		WalletName: uc.cfg.WalletName,
	}, nil
}
