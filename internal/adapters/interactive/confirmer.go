package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// ConfirmFunc runs a yes/no prompt
type ConfirmFunc func(prompt promptui.Prompt) (string, error)

func runConfirm(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

// ConfirmerAdapter shows a transaction summary and asks for approval.
// Non-interactive runs approve without prompting.
type ConfirmerAdapter struct {
	nonInteractive bool
	out            io.Writer
	run            ConfirmFunc
}

// NewConfirmerAdapter creates a new confirmer writing summaries to stderr
func NewConfirmerAdapter(cfg *config.RuntimeConfig) *ConfirmerAdapter {
	return &ConfirmerAdapter{
		nonInteractive: cfg.NonInteractive,
		out:            os.Stderr,
		run:            runConfirm,
	}
}

// ConfirmTransaction prints the summary and returns the user's answer
func (c *ConfirmerAdapter) ConfirmTransaction(ctx context.Context, summary usecase.TransactionSummary) (bool, error) {
	if c.nonInteractive {
		return true, nil
	}

	fmt.Fprintln(c.out, formatSummary(summary))

	_, err := c.run(promptui.Prompt{
		Label:     "Sign and send this transaction",
		IsConfirm: true,
	})
	if err != nil {
		// promptui reports "n" as ErrAbort
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func formatSummary(summary usecase.TransactionSummary) string {
	var b strings.Builder
	b.WriteString(color.New(color.Bold).Sprint(summary.Action))
	if summary.Target != "" {
		fmt.Fprintf(&b, " → %s", color.CyanString(summary.Target))
	}
	for _, d := range summary.Details {
		fmt.Fprintf(&b, "\n  %s", d)
	}
	return b.String()
}

var _ usecase.TransactionConfirmer = (*ConfirmerAdapter)(nil)
