package blockchain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/devote-org/devote-cli/internal/usecase"
)

const checkTimeout = 5 * time.Second

// DialFunc opens a backend for an RPC URL
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

func dialEthclient(ctx context.Context, rpcURL string) (Backend, error) {
	return ethclient.DialContext(ctx, rpcURL)
}

// CheckerAdapter implements usecase.ChainInspector. It can probe any RPC
// endpoint, not only the selected network.
type CheckerAdapter struct {
	dial DialFunc

	mu      sync.Mutex
	clients map[string]Backend
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return NewCheckerAdapterWithDialer(dialEthclient)
}

// NewCheckerAdapterWithDialer creates a checker with a custom dialer
func NewCheckerAdapterWithDialer(dial DialFunc) *CheckerAdapter {
	return &CheckerAdapter{
		dial:    dial,
		clients: make(map[string]Backend),
	}
}

func (c *CheckerAdapter) backend(ctx context.Context, rpcURL string) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.clients[rpcURL]; ok {
		return b, nil
	}
	b, err := c.dial(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	c.clients[rpcURL] = b
	return b, nil
}

// ChainID returns the chain id reported by the node at rpcURL
func (c *CheckerAdapter) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	b, err := c.backend(ctx, rpcURL)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	chainID, err := b.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// HasCode reports whether a contract is deployed at address
func (c *CheckerAdapter) HasCode(ctx context.Context, rpcURL string, address common.Address) (bool, error) {
	b, err := c.backend(ctx, rpcURL)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	code, err := b.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return len(code) > 0, nil
}

// Ensure the adapter implements the interface
var _ usecase.ChainInspector = (*CheckerAdapter)(nil)
