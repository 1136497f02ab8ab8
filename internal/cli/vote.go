package cli

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/devote-org/devote-cli/internal/domain/models"
	"github.com/devote-org/devote-cli/internal/usecase"
)

type voteOutput struct {
	ProposalID  uint64                    `json:"proposalId" yaml:"proposalId"`
	Support     models.VoteType           `json:"support" yaml:"support"`
	Weight      *big.Int                  `json:"weight" yaml:"weight"`
	TxHash      common.Hash               `json:"txHash" yaml:"txHash"`
	Receipt     *models.TxReceipt         `json:"receipt,omitempty" yaml:"receipt,omitempty"`
	State       usecase.SubmissionState   `json:"state" yaml:"state"`
	Transitions []usecase.SubmissionState `json:"transitions" yaml:"transitions"`
	Proposals   *usecase.ProposalSnapshot `json:"proposals,omitempty" yaml:"proposals,omitempty"`
	RefreshErr  string                    `json:"refreshError,omitempty" yaml:"refreshError,omitempty"`
}

// NewVoteCmd creates the vote command
func NewVoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote [id] [for|against|abstain]",
		Short: "Cast a vote on an active proposal",
		Long: `Cast a vote with the connected wallet's full voting power.

Missing arguments are chosen interactively: first an open proposal you
have not voted on, then the vote option. With --non-interactive both
must be given. Options also accept the on-chain encoding 0 (against),
1 (for) and 2 (abstain).

Examples:
  devote vote
  devote vote 3 for
  devote vote 3 abstain --non-interactive`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var params usecase.CastVoteParams
			if len(args) > 0 {
				id, err := parseProposalID(args[0])
				if err != nil {
					return err
				}
				params.ProposalID = &id
			}
			if len(args) > 1 {
				support, err := models.ParseVoteType(args[1])
				if err != nil {
					return err
				}
				params.Support = &support
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CastVote.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			out := voteOutput{
				ProposalID:  result.ProposalID,
				Support:     result.Support,
				Weight:      result.Weight,
				TxHash:      result.TxHash,
				Receipt:     result.Receipt,
				State:       result.State,
				Transitions: result.Transitions,
				Proposals:   result.Snapshot,
			}
			if result.RefreshErr != nil {
				out.RefreshErr = result.RefreshErr.Error()
			}
			return output(cmd, app, out, func() error {
				return newTransactionRenderer(cmd, app).RenderVote(result)
			})
		},
	}

	return cmd
}
