package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/app"
	"github.com/devote-org/devote-cli/internal/cli/render"
	"github.com/devote-org/devote-cli/internal/domain"
)

// output prints v as JSON/YAML when a structured format was requested,
// otherwise runs the table renderer
func output(cmd *cobra.Command, a *app.App, v any, table func() error) error {
	if a.Config.Output.IsStructured() {
		return render.WriteStructured(cmd.OutOrStdout(), a.Config.Output, v)
	}
	return table()
}

// parseProposalID accepts "3" or "#3"
func parseProposalID(s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: proposal id must be a number, got %q", domain.ErrInvalidInput, s)
	}
	return id, nil
}

// FormatError renders a command failure with a hint for errors the user can fix
func FormatError(err error) string {
	msg := render.FormatError(err.Error())
	if hint := errorHint(err); hint != "" {
		msg += "\n   " + hint
	}
	return msg
}

func errorHint(err error) string {
	var txErr *domain.TransactionError
	switch {
	case errors.Is(err, domain.ErrNotConnected):
		return "Configure a wallet with --wallet, [defaults] wallet in devote.toml or DEVOTE_PRIVATE_KEY"
	case errors.Is(err, domain.ErrNoSelectionMade):
		return "Pass the proposal id and vote option as arguments, e.g. devote vote 3 for"
	case errors.Is(err, domain.ErrReadFailure):
		return "Check the RPC endpoint and contract addresses with: devote doctor"
	case errors.Is(err, domain.ErrSuperseded):
		return "A newer refresh replaced this one, run the command again"
	case errors.As(err, &txErr) && txErr.TxHash != "":
		return "Transaction " + txErr.TxHash
	}
	return ""
}

func newTransactionRenderer(cmd *cobra.Command, a *app.App) *render.TransactionRenderer {
	explorer := ""
	if a.Config.Network != nil {
		explorer = a.Config.Network.ExplorerURL
	}
	return render.NewTransactionRenderer(cmd.OutOrStdout(), explorer)
}
