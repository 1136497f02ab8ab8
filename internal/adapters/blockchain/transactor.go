package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/domain/models"
	"github.com/devote-org/devote-cli/internal/usecase"
)

const defaultPollInterval = 2 * time.Second

// Signer signs transactions for the connected account
type Signer interface {
	Account(ctx context.Context) (common.Address, error)
	SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// EventDecoder turns receipt logs into governance events
type EventDecoder interface {
	DecodeLogs(logs []*types.Log) []models.ReceiptEvent
}

// Transactor builds, signs and broadcasts EIP-1559 transactions and polls
// for their receipts. It never retries a write.
type Transactor struct {
	client         *Client
	signer         Signer
	decoder        EventDecoder
	pollInterval   time.Duration
	confirmTimeout time.Duration
	log            *slog.Logger
}

// NewTransactor creates a new transactor
func NewTransactor(cfg *config.RuntimeConfig, client *Client, signer Signer, decoder EventDecoder, log *slog.Logger) *Transactor {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	return &Transactor{
		client:         client,
		signer:         signer,
		decoder:        decoder,
		pollInterval:   poll,
		confirmTimeout: cfg.ConfirmTimeout,
		log:            log.With("component", "Transactor"),
	}
}

// Send signs and broadcasts a call to `to` and returns the transaction hash
func (t *Transactor) Send(ctx context.Context, to common.Address, value *big.Int, data []byte) (common.Hash, error) {
	from, err := t.signer.Account(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	if value == nil {
		value = new(big.Int)
	}

	backend, err := t.client.Backend(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	chainID, err := t.client.ChainID(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	tx, err := t.build(ctx, backend, chainID, from, to, value, data)
	if err != nil {
		return common.Hash{}, &domain.TransactionError{Stage: domain.TxStageBuild, Err: err}
	}

	signed, err := t.signer.SignTx(ctx, tx, chainID)
	if err != nil {
		if errors.Is(err, domain.ErrNotConnected) || errors.Is(err, domain.ErrTransactionRejected) {
			return common.Hash{}, &domain.TransactionError{Stage: domain.TxStageSign, Err: err}
		}
		return common.Hash{}, &domain.TransactionError{Stage: domain.TxStageSign, Err: fmt.Errorf("%w: %w", domain.ErrTransactionRejected, err)}
	}

	if err := backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, &domain.TransactionError{Stage: domain.TxStageSend, TxHash: signed.Hash().Hex(), Err: err}
	}

	t.log.Debug("transaction sent", "hash", signed.Hash().Hex(), "to", to.Hex(), "nonce", signed.Nonce(), "gas", signed.Gas())
	return signed.Hash(), nil
}

func (t *Transactor) build(
	ctx context.Context,
	backend Backend,
	chainID *big.Int,
	from, to common.Address,
	value *big.Int,
	data []byte,
) (*types.Transaction, error) {
	nonce, err := backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	tip, err := backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas tip: %w", err)
	}
	head, err := backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	// estimation runs the call, so reverts surface here with the contract's reason
	gas, err := backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		if isRevert(err) {
			return nil, &revertError{err: err}
		}
		return nil, err
	}

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas * 12 / 10,
		To:        &to,
		Value:     value,
		Data:      data,
	}), nil
}

// revertError keeps the node's message verbatim and matches ErrTransactionReverted
type revertError struct {
	err error
}

func (e *revertError) Error() string {
	return e.err.Error()
}

func (e *revertError) Unwrap() []error {
	return []error{domain.ErrTransactionReverted, e.err}
}

// isRevert reports whether an estimation error came from the call reverting
// rather than from the node or the network
func isRevert(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
		return true
	}
	return strings.Contains(err.Error(), "execution reverted")
}

// WaitForConfirmation polls for the receipt of hash until it is mined, the
// confirm timeout passes or ctx is done. A failed status is an error.
func (t *Transactor) WaitForConfirmation(ctx context.Context, hash common.Hash) (*models.TxReceipt, error) {
	backend, err := t.client.Backend(ctx)
	if err != nil {
		return nil, err
	}

	if t.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.confirmTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			return t.convertReceipt(hash, receipt)
		case errors.Is(err, ethereum.NotFound):
			t.log.Debug("receipt not available yet", "hash", hash.Hex())
		case ctx.Err() == nil:
			return nil, &domain.TransactionError{Stage: domain.TxStageConfirm, TxHash: hash.Hex(), Err: err}
		}

		select {
		case <-ctx.Done():
			return nil, &domain.TransactionError{
				Stage:  domain.TxStageConfirm,
				TxHash: hash.Hex(),
				Err:    fmt.Errorf("timed out waiting for receipt: %w", ctx.Err()),
			}
		case <-ticker.C:
		}
	}
}

func (t *Transactor) convertReceipt(hash common.Hash, receipt *types.Receipt) (*models.TxReceipt, error) {
	out := &models.TxReceipt{
		Hash:    hash,
		GasUsed: receipt.GasUsed,
		Status:  models.TransactionStatusExecuted,
		Logs:    receipt.Logs,
	}
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if t.decoder != nil {
		out.Events = t.decoder.DecodeLogs(receipt.Logs)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		out.Status = models.TransactionStatusFailed
		return out, &domain.TransactionError{Stage: domain.TxStageConfirm, TxHash: hash.Hex(), Err: domain.ErrTransactionReverted}
	}
	return out, nil
}

var _ usecase.TransactionWaiter = (*Transactor)(nil)
