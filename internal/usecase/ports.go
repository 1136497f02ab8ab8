package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// GovernorReader reads proposal state from the governor contract
type GovernorReader interface {
	ProposalCount(ctx context.Context) (uint64, error)
	Proposal(ctx context.Context, id uint64) (*models.Proposal, error)
	HasVoted(ctx context.Context, id uint64, voter common.Address) (bool, error)
	VoteReceipt(ctx context.Context, id uint64, voter common.Address) (*models.VoteReceipt, error)
}

// GovernorWriter submits governor transactions. Each method returns once the
// transaction has been broadcast; confirmation goes through TransactionWaiter.
type GovernorWriter interface {
	CastVote(ctx context.Context, id uint64, support models.VoteType) (common.Hash, error)
	Propose(ctx context.Context, actions []models.ProposalAction, description string) (common.Hash, error)
	Queue(ctx context.Context, actions []models.ProposalAction, descriptionHash common.Hash) (common.Hash, error)
	Execute(ctx context.Context, actions []models.ProposalAction, descriptionHash common.Hash) (common.Hash, error)
	ProposalIDFromReceipt(receipt *models.TxReceipt) (uint64, bool)
}

// GovernorGateway is the full governor contract surface
type GovernorGateway interface {
	GovernorReader
	GovernorWriter
}

// TokenGateway reads and writes the governance token
type TokenGateway interface {
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
	GetVotes(ctx context.Context, account common.Address) (*big.Int, error)
	Delegates(ctx context.Context, account common.Address) (common.Address, error)
	TokenInfo(ctx context.Context) (symbol string, decimals uint8, err error)
	Delegate(ctx context.Context, delegatee common.Address) (common.Hash, error)
}

// TransactionWaiter blocks until a broadcast transaction is mined
type TransactionWaiter interface {
	WaitForConfirmation(ctx context.Context, hash common.Hash) (*models.TxReceipt, error)
}

// Wallet exposes the connected account. Account returns domain.ErrNotConnected
// when no wallet is configured.
type Wallet interface {
	Account(ctx context.Context) (common.Address, error)
	CanSign() bool
}

// ChainInspector checks connectivity and deployed code for the doctor and
// networks commands.
type ChainInspector interface {
	ChainID(ctx context.Context, rpcURL string) (uint64, error)
	HasCode(ctx context.Context, rpcURL string, address common.Address) (bool, error)
}

// ActionEncoder encodes a function signature and its arguments into calldata
type ActionEncoder interface {
	EncodeCall(signature string, args string) ([]byte, error)
}

// NetworkResolver resolves configured networks
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, name string) (*config.Network, error)
}

// LocalConfigStore handles persistence of local config
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, cfg *config.LocalConfig) error
	GetPath() string
}

// ProjectWriter creates project files relative to the project root
type ProjectWriter interface {
	FileExists(ctx context.Context, name string) (bool, error)
	EnsureDirectory(ctx context.Context, name string) error
	WriteFile(ctx context.Context, name, content string) error
	// WriteProjectFile encodes file as devote.toml and returns the path written
	WriteProjectFile(ctx context.Context, file *config.DevoteFileConfig) (string, error)
}

// ProposalSelector handles interactive selection of proposals and vote options
type ProposalSelector interface {
	SelectProposal(ctx context.Context, proposals []*models.ProposalView, prompt string) (*models.ProposalView, error)
	SelectVoteType(ctx context.Context, prompt string) (models.VoteType, error)
}

// TransactionSummary describes a write for the confirmation prompt
type TransactionSummary struct {
	Action  string
	Target  string
	Details []string
}

// TransactionConfirmer asks the user to approve a transaction before signing
type TransactionConfirmer interface {
	ConfirmTransaction(ctx context.Context, summary TransactionSummary) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Clock returns the current time. Display computations take it explicitly.
type Clock func() time.Time

// SystemClock returns the wall clock
func SystemClock() Clock {
	return time.Now
}
