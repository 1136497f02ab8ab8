package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// NewProposeCmd creates the propose command
func NewProposeCmd() *cobra.Command {
	var (
		params          usecase.CreateProposalParams
		descriptionFile string
	)

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Create a governance proposal",
		Long: `Create a proposal. Without --target the proposal is text only and
executes a no-op call. With --target and --signature it executes one call
through the timelock when it passes.

Arguments are comma separated JSON values matching the signature.

Examples:
  devote propose --title "Fund grants" --description "Allocate 10k to grants"
  devote propose --title "Pay auditor" --description-file audit.md \
    --target 0x5FbDB2315678afecb367f032d93F642f64180aa3 \
    --signature "transfer(address,uint256)" \
    --args '"0x70997970C51812dc3A010C7d01b50e0d17dc79C8", 1000000000000000000000'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if descriptionFile != "" {
				if params.Description != "" {
					return fmt.Errorf("%w: use either --description or --description-file", domain.ErrInvalidInput)
				}
				data, err := os.ReadFile(descriptionFile)
				if err != nil {
					return fmt.Errorf("failed to read description: %w", err)
				}
				params.Description = string(data)
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CreateProposal.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return output(cmd, app, result, func() error {
				return newTransactionRenderer(cmd, app).RenderCreated(result)
			})
		},
	}

	cmd.Flags().StringVar(&params.Title, "title", "", "Proposal title")
	cmd.Flags().StringVar(&params.Description, "description", "", "Proposal body (markdown)")
	cmd.Flags().StringVar(&descriptionFile, "description-file", "", "Read the proposal body from a file")
	cmd.Flags().StringVar(&params.Target, "target", "", "Contract called when the proposal executes")
	cmd.Flags().StringVar(&params.Signature, "signature", "", "Function signature, e.g. transfer(address,uint256)")
	cmd.Flags().StringVar(&params.Args, "args", "", "Comma separated JSON arguments")
	cmd.Flags().StringVar(&params.Value, "value", "", "Ether sent with the call, in ETH")

	return cmd
}
