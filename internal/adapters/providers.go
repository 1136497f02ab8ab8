package adapters

import (
	"github.com/google/wire"

	"github.com/devote-org/devote-cli/internal/adapters/abi"
	"github.com/devote-org/devote-cli/internal/adapters/blockchain"
	internalconfig "github.com/devote-org/devote-cli/internal/adapters/config"
	"github.com/devote-org/devote-cli/internal/adapters/fs"
	"github.com/devote-org/devote-cli/internal/adapters/interactive"
	"github.com/devote-org/devote-cli/internal/adapters/progress"
	"github.com/devote-org/devote-cli/internal/adapters/wallet"
	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// ProvideProgressSink animates long reads and writes on a terminal. Structured
// output and non-interactive runs get a silent sink so stdout stays parseable.
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.Output.IsStructured() || cfg.NonInteractive {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// ProvideCurrentNetwork provides the name of the selected network
func ProvideCurrentNetwork(cfg *config.RuntimeConfig) usecase.CurrentNetwork {
	if cfg.Network == nil {
		return ""
	}
	return usecase.CurrentNetwork(cfg.Network.Name)
}

// BlockchainSet provides the contract gateways
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	blockchain.NewTransactor,
	blockchain.NewGovernorAdapter,
	blockchain.NewTokenAdapter,
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.GovernorGateway), new(*blockchain.GovernorAdapter)),
	wire.Bind(new(usecase.GovernorReader), new(*blockchain.GovernorAdapter)),
	wire.Bind(new(usecase.TokenGateway), new(*blockchain.TokenAdapter)),
	wire.Bind(new(usecase.TransactionWaiter), new(*blockchain.Transactor)),
	wire.Bind(new(usecase.ChainInspector), new(*blockchain.CheckerAdapter)),
)

// WalletSet provides the connected account and its signer
var WalletSet = wire.NewSet(
	wallet.NewWallet,
	wire.Bind(new(usecase.Wallet), new(*wallet.Wallet)),
	wire.Bind(new(blockchain.Signer), new(*wallet.Wallet)),
)

// ABISet provides calldata encoding and receipt decoding
var ABISet = wire.NewSet(
	abi.NewCalldataEncoder,
	abi.NewEventParser,
	wire.Bind(new(usecase.ActionEncoder), new(*abi.CalldataEncoder)),
	wire.Bind(new(blockchain.EventDecoder), new(*abi.EventParser)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	fs.NewProjectWriterAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
	wire.Bind(new(usecase.ProjectWriter), new(*fs.ProjectWriterAdapter)),
)

// InteractiveSet provides prompts
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	interactive.NewConfirmerAdapter,
	wire.Bind(new(usecase.ProposalSelector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.TransactionConfirmer), new(*interactive.ConfirmerAdapter)),
)

// ConfigSet provides configuration-related implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
	ProvideCurrentNetwork,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	BlockchainSet,
	WalletSet,
	ABISet,
	FSSet,
	InteractiveSet,
	ConfigSet,
	ProvideProgressSink,
	usecase.SystemClock,
)
