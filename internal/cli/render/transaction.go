package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/devote-org/devote-cli/internal/domain/models"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// TransactionRenderer renders the outcome of governance writes
type TransactionRenderer struct {
	out         io.Writer
	explorerURL string
}

// NewTransactionRenderer creates a new transaction renderer. explorerURL may
// be empty.
func NewTransactionRenderer(out io.Writer, explorerURL string) *TransactionRenderer {
	return &TransactionRenderer{
		out:         out,
		explorerURL: explorerURL,
	}
}

// RenderVote renders a confirmed vote
func (r *TransactionRenderer) RenderVote(result *usecase.CastVoteResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Voted %s on proposal #%d with %s votes",
		FormatVoteType(result.Support), result.ProposalID, FormatVotes(result.Weight))))
	r.RenderReceipt(result.Receipt)

	if result.RefreshErr != nil {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("could not refresh proposals: %v", result.RefreshErr)))
	}
	return nil
}

// RenderDelegation renders a confirmed delegation and the refreshed account
func (r *TransactionRenderer) RenderDelegation(result *usecase.DelegateVotesResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Delegated voting power to %s", addressStyle.Sprint(result.Delegatee.Hex()))))
	r.RenderReceipt(result.Receipt)

	switch {
	case result.RefreshErr != nil:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("could not refresh account: %v", result.RefreshErr)))
	case result.Account != nil:
		fmt.Fprintln(r.out)
		return NewAccountRenderer(r.out).Render(result.Account)
	}
	return nil
}

// RenderCreated renders a submitted proposal
func (r *TransactionRenderer) RenderCreated(result *usecase.CreateProposalResult) error {
	if result.HasID {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Created proposal #%d", result.ProposalID)))
	} else {
		fmt.Fprintln(r.out, FormatSuccess("Proposal submitted"))
	}
	for _, action := range result.Actions {
		if action.Signature != "" {
			fmt.Fprintf(r.out, "   Call: %s on %s\n", action.Signature, action.Target)
		}
	}
	r.RenderReceipt(result.Receipt)
	return nil
}

// RenderLifecycle renders a queued or executed proposal
func (r *TransactionRenderer) RenderLifecycle(verb string, result *usecase.LifecycleResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s proposal #%d", verb, result.ProposalID)))
	fmt.Fprintf(r.out, "   Description hash: %s\n", hashStyle.Sprint(result.DescriptionHash.Hex()))
	r.RenderReceipt(result.Receipt)
	return nil
}

// RenderReceipt prints the transaction hash, block and decoded events
func (r *TransactionRenderer) RenderReceipt(receipt *models.TxReceipt) {
	if receipt == nil {
		return
	}
	fmt.Fprintf(r.out, "   Tx: %s (block %d, gas %d)\n", hashStyle.Sprint(receipt.Hash.Hex()), receipt.BlockNumber, receipt.GasUsed)
	if r.explorerURL != "" {
		fmt.Fprintf(r.out, "   %s/tx/%s\n", r.explorerURL, receipt.Hash.Hex())
	}
	for _, event := range receipt.Events {
		fmt.Fprintf(r.out, "   ↳ %s%s\n", event.Name, formatEventArgs(event.Args))
	}
}

func formatEventArgs(args map[string]string) string {
	if len(args) == 0 {
		return ""
	}
	keys := lo.Keys(args)
	sort.Strings(keys)
	parts := lo.Map(keys, func(k string, _ int) string {
		return fmt.Sprintf("%s=%s", k, args[k])
	})
	return labelStyle.Sprintf("(%s)", strings.Join(parts, ", "))
}

