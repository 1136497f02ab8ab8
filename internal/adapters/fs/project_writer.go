package fs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/usecase"
)

const projectFileHeader = `# devote project configuration
# Values may reference environment variables as ${VAR}; .env is loaded first.

`

// ProjectWriterAdapter writes project files under the project root
type ProjectWriterAdapter struct {
	root string
}

// NewProjectWriterAdapter creates a new project writer
func NewProjectWriterAdapter(cfg *config.RuntimeConfig) *ProjectWriterAdapter {
	return &ProjectWriterAdapter{root: cfg.ProjectRoot}
}

func (w *ProjectWriterAdapter) path(name string) string {
	return filepath.Join(w.root, name)
}

// FileExists checks if a file exists
func (w *ProjectWriterAdapter) FileExists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(w.path(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// EnsureDirectory ensures a directory exists
func (w *ProjectWriterAdapter) EnsureDirectory(ctx context.Context, name string) error {
	return os.MkdirAll(w.path(name), 0755)
}

// WriteFile writes content to name
func (w *ProjectWriterAdapter) WriteFile(ctx context.Context, name, content string) error {
	return os.WriteFile(w.path(name), []byte(content), 0644)
}

// WriteProjectFile encodes file as TOML into devote.toml
func (w *ProjectWriterAdapter) WriteProjectFile(ctx context.Context, file *config.DevoteFileConfig) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(projectFileHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(file); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", config.ProjectFileName, err)
	}

	if err := os.WriteFile(w.path(config.ProjectFileName), buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return config.ProjectFileName, nil
}

var _ usecase.ProjectWriter = (*ProjectWriterAdapter)(nil)
