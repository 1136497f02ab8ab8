package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/devote-org/devote-cli/internal/usecase"
)

// InitRenderer renders init command results
type InitRenderer struct {
	out io.Writer
}

var _ Renderer[*usecase.InitProjectResult] = (*InitRenderer)(nil)

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

// Render renders the init project result
func (r *InitRenderer) Render(result *usecase.InitProjectResult) error {
	if result.AlreadyInitialized {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s already exists, pass --force to overwrite it", result.ProjectFile)))
		return nil
	}

	for _, step := range result.Steps {
		msg := step.Message
		if msg == "" {
			msg = step.Name
		}
		if step.Success {
			fmt.Fprintln(r.out, FormatSuccess(msg))
		} else {
			fmt.Fprintln(r.out, FormatError(msg))
		}
	}

	fmt.Fprintln(r.out)
	color.New(color.FgGreen, color.Bold).Fprintln(r.out, "🎉 devote initialized successfully!")
	fmt.Fprintln(r.out)
	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "📋 Next steps:")

	fmt.Fprintln(r.out, "1. Copy .env.example to .env and set DEVOTE_PRIVATE_KEY or a keystore password")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "2. Check your setup:")
	hashStyle.Fprintln(r.out, "   devote doctor")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "3. Browse and vote:")
	hashStyle.Fprintln(r.out, "   devote proposals")
	hashStyle.Fprintln(r.out, "   devote vote 0 for")
	return nil
}
