package render

import (
	"fmt"
	"io"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// AccountRenderer renders a token position
type AccountRenderer struct {
	out io.Writer
}

var _ Renderer[*models.Account] = (*AccountRenderer)(nil)

// NewAccountRenderer creates a new account renderer
func NewAccountRenderer(out io.Writer) *AccountRenderer {
	return &AccountRenderer{out: out}
}

// Render prints balance, voting power and delegation
func (r *AccountRenderer) Render(account *models.Account) error {
	sectionHeaderStyle.Fprintln(r.out, "Account")
	r.field("Address", addressStyle.Sprint(account.Address))
	r.field("Balance", fmt.Sprintf("%s %s", domain.FormatTokenAmount(account.Balance, account.Decimals), account.Symbol))
	r.field("Voting power", fmt.Sprintf("%s %s", domain.FormatTokenAmount(account.VotingPower, account.Decimals), account.Symbol))

	switch {
	case !account.HasDelegated():
		r.field("Delegate", "(none)")
	case account.Delegatee == account.Address:
		r.field("Delegate", "self")
	default:
		r.field("Delegate", addressStyle.Sprint(account.Delegatee))
	}

	if account.NeedsDelegation() {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning("Your tokens carry no voting power until delegated. Run: devote delegate --self"))
	}
	return nil
}

func (r *AccountRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprintf("%-14s", label+":"), value)
}
