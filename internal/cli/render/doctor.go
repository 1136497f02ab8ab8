package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/devote-org/devote-cli/internal/usecase"
)

// ChecksRenderer renders the doctor report
type ChecksRenderer struct {
	out io.Writer
}

var _ Renderer[*usecase.CheckSetupResult] = (*ChecksRenderer)(nil)

// NewChecksRenderer creates a new checks renderer
func NewChecksRenderer(out io.Writer) *ChecksRenderer {
	return &ChecksRenderer{out: out}
}

// Render prints one row per check and a summary line
func (r *ChecksRenderer) Render(result *usecase.CheckSetupResult) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false

	for _, check := range result.Checks {
		t.AppendRow(table.Row{checkIcon(check.Status), sectionHeaderStyle.Sprint(check.Name), check.Detail})
	}
	t.Render()

	fmt.Fprintln(r.out)
	if result.Healthy {
		fmt.Fprintln(r.out, FormatSuccess("Setup looks good"))
	} else {
		fmt.Fprintln(r.out, FormatError("Some checks failed"))
	}
	return nil
}

func checkIcon(status usecase.CheckStatus) string {
	switch status {
	case usecase.CheckOK:
		return forStyle.Sprint("✓")
	case usecase.CheckWarn:
		return abstainStyle.Sprint("!")
	default:
		return againstStyle.Sprint("✗")
	}
}
