package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/devote-org/devote-cli/internal/domain"
)

var (
	governorAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
	tokenAddr    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testChainID  = big.NewInt(31337)
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBackend answers contract calls from a table keyed by method selector
type fakeBackend struct {
	mu sync.Mutex

	calls    map[string][]byte
	callErr  error
	code     map[common.Address][]byte
	nonce    uint64
	tip      *big.Int
	baseFee  *big.Int
	gas      uint64
	gasErr   error
	sendErr  error
	sent     []*types.Transaction
	receipts []receiptResult

	chainIDErr error
}

type receiptResult struct {
	receipt *types.Receipt
	err     error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		calls:   make(map[string][]byte),
		code:    make(map[common.Address][]byte),
		tip:     big.NewInt(1_000_000_000),
		baseFee: big.NewInt(10_000_000_000),
		gas:     100_000,
	}
}

// respond registers the packed outputs of method for every call to it
func (b *fakeBackend) respond(t *testing.T, parsed *abi.ABI, method string, outputs ...interface{}) {
	t.Helper()
	data, err := parsed.Methods[method].Outputs.Pack(outputs...)
	require.NoError(t, err)
	b.calls[string(parsed.Methods[method].ID)] = data
}

func (b *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if b.callErr != nil {
		return nil, b.callErr
	}
	if len(msg.Data) < 4 {
		return nil, errors.New("short calldata")
	}
	out, ok := b.calls[string(msg.Data[:4])]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	return out, nil
}

func (b *fakeBackend) CodeAt(_ context.Context, account common.Address, _ *big.Int) ([]byte, error) {
	return b.code[account], nil
}

func (b *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return b.nonce, nil
}

func (b *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return b.tip, nil
}

func (b *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(100), BaseFee: b.baseFee}, nil
}

func (b *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return b.gas, b.gasErr
}

func (b *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sendErr != nil {
		return b.sendErr
	}
	b.sent = append(b.sent, tx)
	return nil
}

// TransactionReceipt pops the queued results, repeating the last one
func (b *fakeBackend) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.receipts) == 0 {
		return nil, ethereum.NotFound
	}
	r := b.receipts[0]
	if len(b.receipts) > 1 {
		b.receipts = b.receipts[1:]
	}
	return r.receipt, r.err
}

func (b *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	if b.chainIDErr != nil {
		return nil, b.chainIDErr
	}
	return testChainID, nil
}

// keySigner signs with a raw key
type keySigner struct {
	key     *ecdsa.PrivateKey
	signErr error
}

func newKeySigner(t *testing.T) *keySigner {
	t.Helper()
	key, err := crypto.HexToECDSA("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)
	return &keySigner{key: key}
}

func (s *keySigner) Account(context.Context) (common.Address, error) {
	if s.key == nil {
		return common.Address{}, domain.ErrNotConnected
	}
	return crypto.PubkeyToAddress(s.key.PublicKey), nil
}

func (s *keySigner) SignTx(_ context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if s.signErr != nil {
		return nil, s.signErr
	}
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
}

// rpcDataError mimics a JSON-RPC error that carries revert data
type rpcDataError struct {
	msg  string
	data any
}

func (e *rpcDataError) Error() string  { return e.msg }
func (e *rpcDataError) ErrorData() any { return e.data }
