package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/bindings"
	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// TokenAdapter implements usecase.TokenGateway against the governance token
type TokenAdapter struct {
	address string
	client  *Client
	tx      *Transactor
	binding *bindings.GovernanceToken
	log     *slog.Logger

	infoMu   sync.Mutex
	infoRead bool
	symbol   string
	decimals uint8
}

// NewTokenAdapter creates a new token adapter
func NewTokenAdapter(cfg *config.RuntimeConfig, client *Client, tx *Transactor, log *slog.Logger) *TokenAdapter {
	return &TokenAdapter{
		address: cfg.Contracts.Token,
		client:  client,
		tx:      tx,
		binding: bindings.NewGovernanceToken(),
		log:     log.With("component", "TokenAdapter"),
	}
}

func (t *TokenAdapter) contract() (common.Address, error) {
	if t.address == "" {
		return common.Address{}, fmt.Errorf("token address not configured (set [contracts] token in devote.toml or use --token)")
	}
	addr, err := domain.ParseAddress(t.address)
	if err != nil {
		return common.Address{}, fmt.Errorf("token address: %w", err)
	}
	return addr, nil
}

func (t *TokenAdapter) call(ctx context.Context, data []byte) ([]byte, error) {
	addr, err := t.contract()
	if err != nil {
		return nil, err
	}
	return t.client.Call(ctx, addr, data)
}

// BalanceOf returns the token balance of account
func (t *TokenAdapter) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	out, err := t.call(ctx, t.binding.PackBalanceOf(account))
	if err != nil {
		return nil, err
	}
	return t.binding.UnpackBalanceOf(out)
}

// GetVotes returns the current voting power of account
func (t *TokenAdapter) GetVotes(ctx context.Context, account common.Address) (*big.Int, error) {
	out, err := t.call(ctx, t.binding.PackGetVotes(account))
	if err != nil {
		return nil, err
	}
	return t.binding.UnpackGetVotes(out)
}

// Delegates returns the delegatee of account, the zero address if none
func (t *TokenAdapter) Delegates(ctx context.Context, account common.Address) (common.Address, error) {
	out, err := t.call(ctx, t.binding.PackDelegates(account))
	if err != nil {
		return common.Address{}, err
	}
	return t.binding.UnpackDelegates(out)
}

// TokenInfo returns symbol and decimals. Both are immutable so they are
// cached after the first successful read.
func (t *TokenAdapter) TokenInfo(ctx context.Context) (string, uint8, error) {
	t.infoMu.Lock()
	defer t.infoMu.Unlock()

	if t.infoRead {
		return t.symbol, t.decimals, nil
	}

	out, err := t.call(ctx, t.binding.PackSymbol())
	if err != nil {
		return "", 0, err
	}
	symbol, err := t.binding.UnpackSymbol(out)
	if err != nil {
		return "", 0, err
	}
	out, err = t.call(ctx, t.binding.PackDecimals())
	if err != nil {
		return "", 0, err
	}
	decimals, err := t.binding.UnpackDecimals(out)
	if err != nil {
		return "", 0, err
	}

	t.symbol, t.decimals, t.infoRead = symbol, decimals, true
	return symbol, decimals, nil
}

// Delegate broadcasts a delegate transaction
func (t *TokenAdapter) Delegate(ctx context.Context, delegatee common.Address) (common.Hash, error) {
	data, err := t.binding.TryPackDelegate(delegatee)
	if err != nil {
		return common.Hash{}, &domain.TransactionError{Stage: domain.TxStageBuild, Err: err}
	}
	addr, err := t.contract()
	if err != nil {
		return common.Hash{}, err
	}
	return t.tx.Send(ctx, addr, nil, data)
}

var _ usecase.TokenGateway = (*TokenAdapter)(nil)
