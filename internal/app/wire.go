//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/devote-org/devote-cli/internal/adapters"
	"github.com/devote-org/devote-cli/internal/adapters/fs"
	"github.com/devote-org/devote-cli/internal/adapters/progress"
	"github.com/devote-org/devote-cli/internal/config"
	domainconfig "github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/logging"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewProposalBook,
		usecase.NewListProposals,
		usecase.NewShowProposal,
		usecase.NewCastVote,
		usecase.NewCreateProposal,
		usecase.NewQueueProposal,
		usecase.NewExecuteProposal,
		usecase.NewShowAccount,
		usecase.NewDelegateVotes,
		usecase.NewListNetworks,
		usecase.NewCheckSetup,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}

// InitProjectUseCase wires the init use case. It runs before a project
// file exists, so it takes a bare config instead of resolving one.
func InitProjectUseCase(cfg *domainconfig.RuntimeConfig) *usecase.InitProject {
	wire.Build(
		fs.NewProjectWriterAdapter,
		wire.Bind(new(usecase.ProjectWriter), new(*fs.ProjectWriterAdapter)),
		progress.NewNopSink,
		wire.Bind(new(usecase.ProgressSink), new(*progress.NopSink)),
		usecase.NewInitProject,
	)
	return nil
}
