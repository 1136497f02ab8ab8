package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/config"
)

// CheckStatus is the outcome of a single setup check
type CheckStatus string

const (
	CheckOK   CheckStatus = "ok"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// SetupCheck is one line of the doctor report
type SetupCheck struct {
	Name   string      `json:"name" yaml:"name"`
	Status CheckStatus `json:"status" yaml:"status"`
	Detail string      `json:"detail" yaml:"detail"`
}

// CheckSetupResult contains every check that ran
type CheckSetupResult struct {
	Checks  []SetupCheck `json:"checks" yaml:"checks"`
	Healthy bool         `json:"healthy" yaml:"healthy"`
}

// CheckSetup verifies configuration, connectivity, deployed contracts and wallet
type CheckSetup struct {
	cfg       *config.RuntimeConfig
	inspector ChainInspector
	wallet    Wallet
}

// NewCheckSetup creates a new CheckSetup use case
func NewCheckSetup(cfg *config.RuntimeConfig, inspector ChainInspector, wallet Wallet) *CheckSetup {
	return &CheckSetup{
		cfg:       cfg,
		inspector: inspector,
		wallet:    wallet,
	}
}

// Run executes every check. Failures are reported in the result, not returned.
func (uc *CheckSetup) Run(ctx context.Context) (*CheckSetupResult, error) {
	result := &CheckSetupResult{}
	add := func(name string, status CheckStatus, detail string) {
		result.Checks = append(result.Checks, SetupCheck{Name: name, Status: status, Detail: detail})
	}

	if uc.cfg.ConfigSource != "" {
		add("Project file", CheckOK, uc.cfg.ConfigSource)
	} else {
		add("Project file", CheckWarn, "no devote.toml found, using flags and environment only")
	}

	network := uc.cfg.Network
	if network == nil {
		add("Network", CheckFail, "no network selected (use --network or set one in devote.toml)")
	} else if chainID, err := uc.inspector.ChainID(ctx, network.RPCURL); err != nil {
		add("Network", CheckFail, fmt.Sprintf("%s: %v", network.Name, err))
		network = nil
	} else if network.ChainID != 0 && chainID != network.ChainID {
		add("Network", CheckFail, fmt.Sprintf("chain ID mismatch: expected %d, got %d", network.ChainID, chainID))
		network = nil
	} else {
		add("Network", CheckOK, fmt.Sprintf("%s (chain %d)", network.Name, chainID))
	}

	contracts := []struct {
		name     string
		address  string
		optional bool
	}{
		{"Governor", uc.cfg.Contracts.Governor, false},
		{"Token", uc.cfg.Contracts.Token, false},
		{"Timelock", uc.cfg.Contracts.Timelock, true},
	}
	for _, c := range contracts {
		uc.checkContract(ctx, network, c.name, c.address, c.optional, add)
	}

	addr, err := uc.wallet.Account(ctx)
	switch {
	case errors.Is(err, domain.ErrNotConnected):
		add("Wallet", CheckWarn, "no wallet configured, read-only mode")
	case err != nil:
		add("Wallet", CheckFail, err.Error())
	case !uc.wallet.CanSign():
		add("Wallet", CheckWarn, fmt.Sprintf("%s is watch-only", addr.Hex()))
	default:
		add("Wallet", CheckOK, fmt.Sprintf("%s (%s)", addr.Hex(), uc.cfg.WalletName))
	}

	result.Healthy = !lo.ContainsBy(result.Checks, func(c SetupCheck) bool {
		return c.Status == CheckFail
	})
	return result, nil
}

func (uc *CheckSetup) checkContract(
	ctx context.Context,
	network *config.Network,
	name, address string,
	optional bool,
	add func(string, CheckStatus, string),
) {
	if address == "" {
		if optional {
			add(name, CheckWarn, "not configured")
		} else {
			add(name, CheckFail, "address not configured")
		}
		return
	}

	addr, err := domain.ParseAddress(address)
	if err != nil {
		add(name, CheckFail, err.Error())
		return
	}
	if network == nil {
		add(name, CheckWarn, fmt.Sprintf("%s (not checked, network unavailable)", addr.Hex()))
		return
	}

	hasCode, err := uc.inspector.HasCode(ctx, network.RPCURL, addr)
	switch {
	case err != nil:
		add(name, CheckFail, err.Error())
	case !hasCode:
		add(name, CheckFail, fmt.Sprintf("no code at address %s", addr.Hex()))
	default:
		add(name, CheckOK, addr.Hex())
	}
}
