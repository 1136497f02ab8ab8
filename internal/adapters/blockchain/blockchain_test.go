package blockchain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/bindings"
	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

type harness struct {
	backend  *fakeBackend
	signer   *keySigner
	tx       *Transactor
	governor *GovernorAdapter
	token    *TokenAdapter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := newFakeBackend()
	signer := newKeySigner(t)
	cfg := &config.RuntimeConfig{
		Contracts:      config.Contracts{Governor: governorAddr.Hex(), Token: tokenAddr.Hex()},
		PollInterval:   time.Millisecond,
		ConfirmTimeout: 200 * time.Millisecond,
	}
	client := NewClientWithBackend(backend, testChainID, testLogger())
	tx := NewTransactor(cfg, client, signer, nil, testLogger())
	return &harness{
		backend:  backend,
		signer:   signer,
		tx:       tx,
		governor: NewGovernorAdapter(cfg, client, tx, testLogger()),
		token:    NewTokenAdapter(cfg, client, tx, testLogger()),
	}
}

func governorABI(t *testing.T) *abi.ABI {
	t.Helper()
	parsed, err := bindings.VotingGovernorMetaData.ParseABI()
	require.NoError(t, err)
	return parsed
}

func tokenABI(t *testing.T) *abi.ABI {
	t.Helper()
	parsed, err := bindings.GovernanceTokenMetaData.ParseABI()
	require.NoError(t, err)
	return parsed
}

func TestGovernorReads(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	parsed := governorABI(t)
	voter := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	h.backend.respond(t, parsed, "getProposalCount", big.NewInt(3))
	h.backend.respond(t, parsed, "getProposal",
		"# Treasury", "Move funds", big.NewInt(500), big.NewInt(200), big.NewInt(50),
		big.NewInt(1700000000), big.NewInt(1700604800), false,
	)
	h.backend.respond(t, parsed, "hasVoted", true)
	h.backend.respond(t, parsed, "getVoteReceipt", true, uint8(1), big.NewInt(42))

	count, err := h.governor.ProposalCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	p, err := h.governor.Proposal(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p.ID)
	assert.Equal(t, "# Treasury", p.Title)
	assert.Equal(t, int64(500), p.VotesFor.Int64())
	assert.Equal(t, time.Unix(1700604800, 0).UTC(), p.EndTime)
	assert.False(t, p.Executed)

	voted, err := h.governor.HasVoted(ctx, 1, voter)
	require.NoError(t, err)
	assert.True(t, voted)

	receipt, err := h.governor.VoteReceipt(ctx, 1, voter)
	require.NoError(t, err)
	assert.Equal(t, models.VoteFor, receipt.Support)
	assert.Equal(t, int64(42), receipt.Weight.Int64())
}

func TestGovernorRejectsUnknownReceiptSupport(t *testing.T) {
	h := newHarness(t)
	h.backend.respond(t, governorABI(t), "getVoteReceipt", true, uint8(7), big.NewInt(1))

	_, err := h.governor.VoteReceipt(context.Background(), 0, common.Address{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown vote type 7")
}

func TestGovernorReadFailure(t *testing.T) {
	h := newHarness(t)
	h.backend.callErr = errors.New("connection refused")

	_, err := h.governor.ProposalCount(context.Background())
	assert.EqualError(t, err, "connection refused")
}

func TestGovernorMissingAddress(t *testing.T) {
	client := NewClientWithBackend(newFakeBackend(), testChainID, testLogger())
	g := NewGovernorAdapter(&config.RuntimeConfig{}, client, nil, testLogger())

	_, err := g.ProposalCount(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "governor address not configured")
}

func TestCastVoteSendsSignedTransaction(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.backend.nonce = 5

	hash, err := h.governor.CastVote(ctx, 2, models.VoteAbstain)
	require.NoError(t, err)

	require.Len(t, h.backend.sent, 1)
	sent := h.backend.sent[0]
	assert.Equal(t, hash, sent.Hash())
	assert.Equal(t, governorAddr, *sent.To())
	assert.Equal(t, uint64(5), sent.Nonce())
	assert.Equal(t, uint64(120_000), sent.Gas())
	assert.Equal(t, int64(21_000_000_000), sent.GasFeeCap().Int64())
	assert.Equal(t, int64(1_000_000_000), sent.GasTipCap().Int64())

	want, err := bindings.NewVotingGovernor().TryPackCastVote(big.NewInt(2), 2)
	require.NoError(t, err)
	assert.Equal(t, want, sent.Data())

	from, err := types.Sender(types.LatestSignerForChainID(testChainID), sent)
	require.NoError(t, err)
	account, _ := h.signer.Account(ctx)
	assert.Equal(t, account, from)
}

func TestSendFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("estimate failure is a build error", func(t *testing.T) {
		h := newHarness(t)
		h.backend.gasErr = errors.New("execution reverted: GovernorAlreadyCastVote")

		_, err := h.governor.CastVote(ctx, 0, models.VoteFor)
		var txErr *domain.TransactionError
		require.ErrorAs(t, err, &txErr)
		assert.Equal(t, domain.TxStageBuild, txErr.Stage)
		assert.Equal(t, "execution reverted: GovernorAlreadyCastVote", txErr.Message())
		assert.ErrorIs(t, err, domain.ErrTransactionReverted)
		assert.Empty(t, h.backend.sent)
	})

	t.Run("revert data from the node", func(t *testing.T) {
		h := newHarness(t)
		h.backend.gasErr = &rpcDataError{msg: "VM Exception while processing transaction", data: "0x08c379a0"}

		_, err := h.governor.CastVote(ctx, 0, models.VoteFor)
		assert.ErrorIs(t, err, domain.ErrTransactionReverted)
		assert.Contains(t, err.Error(), "VM Exception while processing transaction")
	})

	t.Run("estimate failure without revert", func(t *testing.T) {
		h := newHarness(t)
		h.backend.gasErr = errors.New("insufficient funds for gas * price + value")

		_, err := h.governor.CastVote(ctx, 0, models.VoteFor)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrTransactionReverted)
	})

	t.Run("signer refusal is a rejection", func(t *testing.T) {
		h := newHarness(t)
		h.signer.signErr = errors.New("password prompt aborted")

		_, err := h.governor.CastVote(ctx, 0, models.VoteFor)
		var txErr *domain.TransactionError
		require.ErrorAs(t, err, &txErr)
		assert.Equal(t, domain.TxStageSign, txErr.Stage)
		assert.ErrorIs(t, err, domain.ErrTransactionRejected)
		assert.Contains(t, err.Error(), "password prompt aborted")
	})

	t.Run("broadcast failure keeps hash", func(t *testing.T) {
		h := newHarness(t)
		h.backend.sendErr = errors.New("insufficient funds for gas")

		_, err := h.token.Delegate(ctx, common.HexToAddress("0x01"))
		var txErr *domain.TransactionError
		require.ErrorAs(t, err, &txErr)
		assert.Equal(t, domain.TxStageSend, txErr.Stage)
		assert.NotEmpty(t, txErr.TxHash)
		assert.Equal(t, "insufficient funds for gas", txErr.Message())
	})
}

func TestWaitForConfirmation(t *testing.T) {
	ctx := context.Background()
	hash := common.HexToHash("0xabc")

	t.Run("polls until mined", func(t *testing.T) {
		h := newHarness(t)
		h.backend.receipts = []receiptResult{
			{err: ethereum.NotFound},
			{err: ethereum.NotFound},
			{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(9), GasUsed: 21000}},
		}

		receipt, err := h.tx.WaitForConfirmation(ctx, hash)
		require.NoError(t, err)
		assert.Equal(t, hash, receipt.Hash)
		assert.Equal(t, uint64(9), receipt.BlockNumber)
		assert.Equal(t, models.TransactionStatusExecuted, receipt.Status)
	})

	t.Run("reverted", func(t *testing.T) {
		h := newHarness(t)
		h.backend.receipts = []receiptResult{
			{receipt: &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(9)}},
		}

		receipt, err := h.tx.WaitForConfirmation(ctx, hash)
		require.ErrorIs(t, err, domain.ErrTransactionReverted)
		require.NotNil(t, receipt)
		assert.Equal(t, models.TransactionStatusFailed, receipt.Status)
	})

	t.Run("times out", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.tx.WaitForConfirmation(ctx, hash)
		var txErr *domain.TransactionError
		require.ErrorAs(t, err, &txErr)
		assert.Equal(t, domain.TxStageConfirm, txErr.Stage)
		assert.Contains(t, err.Error(), "timed out waiting for receipt")
	})

	t.Run("rpc error", func(t *testing.T) {
		h := newHarness(t)
		h.backend.receipts = []receiptResult{{err: errors.New("bad gateway")}}

		_, err := h.tx.WaitForConfirmation(ctx, hash)
		var txErr *domain.TransactionError
		require.ErrorAs(t, err, &txErr)
		assert.Equal(t, "bad gateway", txErr.Message())
	})
}

func TestProposalIDFromReceipt(t *testing.T) {
	h := newHarness(t)
	parsed := governorABI(t)
	event := parsed.Events[bindings.VotingGovernorProposalCreatedEventName]

	data, err := event.Inputs.NonIndexed().Pack("# Title\n\nBody")
	require.NoError(t, err)

	receipt := &models.TxReceipt{Logs: []*types.Log{{
		Address: governorAddr,
		Topics: []common.Hash{
			event.ID,
			common.BigToHash(big.NewInt(4)),
			common.BytesToHash(common.HexToAddress("0x01").Bytes()),
		},
		Data: data,
	}}}

	id, ok := h.governor.ProposalIDFromReceipt(receipt)
	require.True(t, ok)
	assert.Equal(t, uint64(4), id)

	_, ok = h.governor.ProposalIDFromReceipt(&models.TxReceipt{})
	assert.False(t, ok)
	_, ok = h.governor.ProposalIDFromReceipt(nil)
	assert.False(t, ok)
}

func TestSplitActions(t *testing.T) {
	targets, values, calldatas, err := splitActions([]models.ProposalAction{
		models.TextProposalAction(),
		{Target: tokenAddr.Hex(), Value: big.NewInt(7), Calldata: []byte{1, 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, []common.Address{{}, tokenAddr}, targets)
	assert.Equal(t, int64(7), values[1].Int64())
	assert.Equal(t, []byte{}, calldatas[0])

	_, _, _, err = splitActions([]models.ProposalAction{{Target: "nope"}})
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestTokenReads(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	parsed := tokenABI(t)
	account := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	h.backend.respond(t, parsed, "balanceOf", big.NewInt(1000))
	h.backend.respond(t, parsed, "getVotes", big.NewInt(800))
	h.backend.respond(t, parsed, "delegates", account)
	h.backend.respond(t, parsed, "symbol", "VOTE")
	h.backend.respond(t, parsed, "decimals", uint8(18))

	balance, err := h.token.BalanceOf(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance.Int64())

	votes, err := h.token.GetVotes(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, int64(800), votes.Int64())

	delegatee, err := h.token.Delegates(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, account, delegatee)

	symbol, decimals, err := h.token.TokenInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "VOTE", symbol)
	assert.Equal(t, uint8(18), decimals)

	// cached after the first read
	h.backend.callErr = errors.New("offline")
	symbol, _, err = h.token.TokenInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "VOTE", symbol)
}

func TestTokenInfoFailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	parsed := tokenABI(t)

	h.backend.callErr = errors.New("offline")
	_, _, err := h.token.TokenInfo(ctx)
	require.Error(t, err)

	h.backend.callErr = nil
	h.backend.respond(t, parsed, "symbol", "VOTE")
	h.backend.respond(t, parsed, "decimals", uint8(6))
	_, decimals, err := h.token.TokenInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), decimals)
}

func TestClientRequiresNetwork(t *testing.T) {
	c := NewClient(&config.RuntimeConfig{}, testLogger())
	_, err := c.Call(context.Background(), governorAddr, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no network configured")
}

func TestClientChainIDFromBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("asked once and copied", func(t *testing.T) {
		c := NewClientWithBackend(newFakeBackend(), nil, testLogger())

		id, err := c.ChainID(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(31337), id.Int64())

		id.SetInt64(1)
		again, err := c.ChainID(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(31337), again.Int64())
	})

	t.Run("backend failure", func(t *testing.T) {
		backend := newFakeBackend()
		backend.chainIDErr = errors.New("connection refused")
		c := NewClientWithBackend(backend, nil, testLogger())

		_, err := c.ChainID(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get chain ID: connection refused")
	})
}

func TestChecker(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	backend.code[governorAddr] = []byte{0x60, 0x80}

	dials := 0
	checker := NewCheckerAdapterWithDialer(func(_ context.Context, rpcURL string) (Backend, error) {
		if rpcURL == "http://down" {
			return nil, errors.New("dial tcp: connection refused")
		}
		dials++
		return backend, nil
	})

	chainID, err := checker.ChainID(ctx, "http://local")
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), chainID)

	ok, err := checker.HasCode(ctx, "http://local", governorAddr)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = checker.HasCode(ctx, "http://local", tokenAddr)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, dials)

	_, err = checker.ChainID(ctx, "http://down")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to RPC")
}
