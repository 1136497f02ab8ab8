package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/devote-org/devote-cli/internal/domain/config"
)

// Backend is the subset of the JSON-RPC API the gateways use.
// *ethclient.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

var _ Backend = (*ethclient.Client)(nil)

// Client dials the configured network on first use and checks its chain id
type Client struct {
	network *config.Network
	log     *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

// NewClient creates a lazily connected client for the selected network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		network: cfg.Network,
		log:     log.With("component", "Client"),
	}
}

// NewClientWithBackend wraps an existing backend. chainID may be nil.
func NewClientWithBackend(backend Backend, chainID *big.Int, log *slog.Logger) *Client {
	return &Client{
		backend: backend,
		chainID: chainID,
		log:     log.With("component", "Client"),
	}
}

// Backend returns the connected backend, dialing if necessary
func (c *Client) Backend(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, nil
	}
	if c.network == nil || c.network.RPCURL == "" {
		return nil, fmt.Errorf("no network configured (use --network or --rpc-url)")
	}

	c.log.Debug("dialing rpc", "network", c.network.Name, "url", c.network.RPCURL)
	client, err := ethclient.DialContext(ctx, c.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if c.network.ChainID != 0 && chainID.Uint64() != c.network.ChainID {
		client.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.network.ChainID, chainID.Uint64())
	}

	c.backend = client
	c.chainID = chainID
	return c.backend, nil
}

// ChainID returns the chain id of the connected network. A client wrapped
// without one asks the backend on first use.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	backend, err := c.Backend(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID == nil {
		chainID, err := backend.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get chain ID: %w", err)
		}
		c.chainID = chainID
	}
	return new(big.Int).Set(c.chainID), nil
}

// Call runs a read-only call against the latest block
func (c *Client) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	backend, err := c.Backend(ctx)
	if err != nil {
		return nil, err
	}
	return backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}
