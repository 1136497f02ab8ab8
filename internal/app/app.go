package app

import (
	"log/slog"

	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared state
	Book  *usecase.ProposalBook
	Clock usecase.Clock

	// Proposals
	ListProposals   *usecase.ListProposals
	ShowProposal    *usecase.ShowProposal
	CastVote        *usecase.CastVote
	CreateProposal  *usecase.CreateProposal
	QueueProposal   *usecase.QueueProposal
	ExecuteProposal *usecase.ExecuteProposal

	// Account
	ShowAccount   *usecase.ShowAccount
	DelegateVotes *usecase.DelegateVotes

	// Project and configuration
	ListNetworks *usecase.ListNetworks
	CheckSetup   *usecase.CheckSetup
	ShowConfig   *usecase.ShowConfig
	SetConfig    *usecase.SetConfig
	RemoveConfig *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	book *usecase.ProposalBook,
	clock usecase.Clock,
	listProposals *usecase.ListProposals,
	showProposal *usecase.ShowProposal,
	castVote *usecase.CastVote,
	createProposal *usecase.CreateProposal,
	queueProposal *usecase.QueueProposal,
	executeProposal *usecase.ExecuteProposal,
	showAccount *usecase.ShowAccount,
	delegateVotes *usecase.DelegateVotes,
	listNetworks *usecase.ListNetworks,
	checkSetup *usecase.CheckSetup,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		Book:            book,
		Clock:           clock,
		ListProposals:   listProposals,
		ShowProposal:    showProposal,
		CastVote:        castVote,
		CreateProposal:  createProposal,
		QueueProposal:   queueProposal,
		ExecuteProposal: executeProposal,
		ShowAccount:     showAccount,
		DelegateVotes:   delegateVotes,
		ListNetworks:    listNetworks,
		CheckSetup:      checkSetup,
		ShowConfig:      showConfig,
		SetConfig:       setConfig,
		RemoveConfig:    removeConfig,
	}, nil
}
