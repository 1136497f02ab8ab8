package cli

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/domain/models"
	"github.com/devote-org/devote-cli/internal/usecase"
)

type delegateOutput struct {
	Delegatee  common.Address          `json:"delegatee" yaml:"delegatee"`
	TxHash     common.Hash             `json:"txHash" yaml:"txHash"`
	Receipt    *models.TxReceipt       `json:"receipt,omitempty" yaml:"receipt,omitempty"`
	State      usecase.SubmissionState `json:"state" yaml:"state"`
	Account    *models.Account         `json:"account,omitempty" yaml:"account,omitempty"`
	RefreshErr string                  `json:"refreshError,omitempty" yaml:"refreshError,omitempty"`
}

// NewDelegateCmd creates the delegate command
func NewDelegateCmd() *cobra.Command {
	var self bool

	cmd := &cobra.Command{
		Use:   "delegate [address]",
		Short: "Delegate your voting power",
		Long: `Delegate the connected wallet's voting power to an address, or to
yourself with --self. Token balances carry no voting power until they
are delegated, including to yourself.

Examples:
  devote delegate --self
  devote delegate 0x70997970C51812dc3A010C7d01b50e0d17dc79C8`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := usecase.DelegateVotesParams{Self: self}
			if len(args) == 1 {
				params.Delegatee = args[0]
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DelegateVotes.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			out := delegateOutput{
				Delegatee: result.Delegatee,
				TxHash:    result.TxHash,
				Receipt:   result.Receipt,
				State:     result.State,
				Account:   result.Account,
			}
			if result.RefreshErr != nil {
				out.RefreshErr = result.RefreshErr.Error()
			}
			return output(cmd, app, out, func() error {
				return newTransactionRenderer(cmd, app).RenderDelegation(result)
			})
		},
	}

	cmd.Flags().BoolVar(&self, "self", false, "Delegate to the connected wallet")

	return cmd
}
