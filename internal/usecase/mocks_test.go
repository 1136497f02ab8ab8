package usecase

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

var (
	testVoter = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testOther = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	testNow   = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func testClock() Clock {
	return func() time.Time { return testNow }
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// activeProposal is open for voting at testNow
func activeProposal(id uint64, forVotes, against, abstain int64) *models.Proposal {
	return &models.Proposal{
		ID:           id,
		Title:        "Proposal",
		Description:  "# Proposal\n\nBody",
		VotesFor:     big.NewInt(forVotes),
		VotesAgainst: big.NewInt(against),
		VotesAbstain: big.NewInt(abstain),
		StartTime:    testNow.Add(-24 * time.Hour),
		EndTime:      testNow.Add(48 * time.Hour),
	}
}

// closedProposal ended before testNow
func closedProposal(id uint64, forVotes, against int64) *models.Proposal {
	p := activeProposal(id, forVotes, against, 0)
	p.StartTime = testNow.Add(-10 * 24 * time.Hour)
	p.EndTime = testNow.Add(-time.Hour)
	return p
}

type mockGovernor struct {
	mock.Mock
}

func (m *mockGovernor) ProposalCount(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockGovernor) Proposal(ctx context.Context, id uint64) (*models.Proposal, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.Proposal); ok {
		return p.Clone(), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGovernor) HasVoted(ctx context.Context, id uint64, voter common.Address) (bool, error) {
	args := m.Called(ctx, id, voter)
	return args.Bool(0), args.Error(1)
}

func (m *mockGovernor) VoteReceipt(ctx context.Context, id uint64, voter common.Address) (*models.VoteReceipt, error) {
	args := m.Called(ctx, id, voter)
	if r, ok := args.Get(0).(*models.VoteReceipt); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGovernor) CastVote(ctx context.Context, id uint64, support models.VoteType) (common.Hash, error) {
	args := m.Called(ctx, id, support)
	return args.Get(0).(common.Hash), args.Error(1)
}

func (m *mockGovernor) Propose(ctx context.Context, actions []models.ProposalAction, description string) (common.Hash, error) {
	args := m.Called(ctx, actions, description)
	return args.Get(0).(common.Hash), args.Error(1)
}

func (m *mockGovernor) Queue(ctx context.Context, actions []models.ProposalAction, descriptionHash common.Hash) (common.Hash, error) {
	args := m.Called(ctx, actions, descriptionHash)
	return args.Get(0).(common.Hash), args.Error(1)
}

func (m *mockGovernor) Execute(ctx context.Context, actions []models.ProposalAction, descriptionHash common.Hash) (common.Hash, error) {
	args := m.Called(ctx, actions, descriptionHash)
	return args.Get(0).(common.Hash), args.Error(1)
}

func (m *mockGovernor) ProposalIDFromReceipt(receipt *models.TxReceipt) (uint64, bool) {
	args := m.Called(receipt)
	return args.Get(0).(uint64), args.Bool(1)
}

type mockToken struct {
	mock.Mock
}

func (m *mockToken) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	args := m.Called(ctx, account)
	return bigArg(args, 0), args.Error(1)
}

func (m *mockToken) GetVotes(ctx context.Context, account common.Address) (*big.Int, error) {
	args := m.Called(ctx, account)
	return bigArg(args, 0), args.Error(1)
}

func (m *mockToken) Delegates(ctx context.Context, account common.Address) (common.Address, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(common.Address), args.Error(1)
}

func (m *mockToken) TokenInfo(ctx context.Context) (string, uint8, error) {
	args := m.Called(ctx)
	return args.String(0), args.Get(1).(uint8), args.Error(2)
}

func (m *mockToken) Delegate(ctx context.Context, delegatee common.Address) (common.Hash, error) {
	args := m.Called(ctx, delegatee)
	return args.Get(0).(common.Hash), args.Error(1)
}

func bigArg(args mock.Arguments, i int) *big.Int {
	if v, ok := args.Get(i).(*big.Int); ok {
		return v
	}
	return nil
}

type mockWaiter struct {
	mock.Mock
}

func (m *mockWaiter) WaitForConfirmation(ctx context.Context, hash common.Hash) (*models.TxReceipt, error) {
	args := m.Called(ctx, hash)
	if r, ok := args.Get(0).(*models.TxReceipt); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeWallet is a connected signer unless addr is nil
type fakeWallet struct {
	addr      *common.Address
	watchOnly bool
}

func connectedWallet() *fakeWallet {
	addr := testVoter
	return &fakeWallet{addr: &addr}
}

func (w *fakeWallet) Account(context.Context) (common.Address, error) {
	if w.addr == nil {
		return common.Address{}, domain.ErrNotConnected
	}
	return *w.addr, nil
}

func (w *fakeWallet) CanSign() bool {
	return w.addr != nil && !w.watchOnly
}

type mockSelector struct {
	mock.Mock
}

func (m *mockSelector) SelectProposal(ctx context.Context, proposals []*models.ProposalView, prompt string) (*models.ProposalView, error) {
	args := m.Called(ctx, proposals, prompt)
	if v, ok := args.Get(0).(*models.ProposalView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSelector) SelectVoteType(ctx context.Context, prompt string) (models.VoteType, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).(models.VoteType), args.Error(1)
}

// fakeConfirmer approves unless told otherwise and remembers what it was shown
type fakeConfirmer struct {
	decline bool
	err     error
	seen    []TransactionSummary
}

func (c *fakeConfirmer) ConfirmTransaction(_ context.Context, summary TransactionSummary) (bool, error) {
	c.seen = append(c.seen, summary)
	if c.err != nil {
		return false, c.err
	}
	return !c.decline, nil
}

type mockEncoder struct {
	mock.Mock
}

func (m *mockEncoder) EncodeCall(signature string, args string) ([]byte, error) {
	ret := m.Called(signature, args)
	if b, ok := ret.Get(0).([]byte); ok {
		return b, ret.Error(1)
	}
	return nil, ret.Error(1)
}

type mockInspector struct {
	mock.Mock
}

func (m *mockInspector) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	args := m.Called(ctx, rpcURL)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockInspector) HasCode(ctx context.Context, rpcURL string, address common.Address) (bool, error) {
	args := m.Called(ctx, rpcURL, address)
	return args.Bool(0), args.Error(1)
}

// memoryConfigStore keeps local config in memory
type memoryConfigStore struct {
	cfg    *config.LocalConfig
	exists bool
}

func (s *memoryConfigStore) Exists() bool { return s.exists }

func (s *memoryConfigStore) Load(context.Context) (*config.LocalConfig, error) {
	if s.cfg == nil {
		return config.DefaultLocalConfig(), nil
	}
	c := *s.cfg
	return &c, nil
}

func (s *memoryConfigStore) Save(_ context.Context, cfg *config.LocalConfig) error {
	c := *cfg
	s.cfg = &c
	s.exists = true
	return nil
}

func (s *memoryConfigStore) GetPath() string { return "/project/.devote/config.local.json" }

type stubNetworkResolver struct {
	networks map[string]*config.Network
	errs     map[string]error
}

func (r *stubNetworkResolver) GetNetworks(context.Context) []string {
	names := make([]string, 0, len(r.networks)+len(r.errs))
	for _, n := range []string{"local", "mainnet", "sepolia", "broken"} {
		if _, ok := r.networks[n]; ok {
			names = append(names, n)
		} else if _, ok := r.errs[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

func (r *stubNetworkResolver) ResolveNetwork(_ context.Context, name string) (*config.Network, error) {
	if err, ok := r.errs[name]; ok {
		return nil, err
	}
	if n, ok := r.networks[name]; ok {
		return n, nil
	}
	return nil, domain.ErrNotFound
}

// recordingProgress captures progress events
type recordingProgress struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (p *recordingProgress) OnProgress(_ context.Context, event ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingProgress) Info(string)  {}
func (p *recordingProgress) Error(string) {}

func (p *recordingProgress) stages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	stages := make([]string, 0, len(p.events))
	for _, e := range p.events {
		stages = append(stages, e.Stage)
	}
	return stages
}
