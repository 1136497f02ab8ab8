package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/config"
)

const envExample = `# Copy to .env and fill in. devote loads .env and .env.local automatically.
# Password for keystore wallets without their own password_env
DEVOTE_KEYSTORE_PASSWORD=
# Raw private key used when no wallet is configured (development only)
DEVOTE_PRIVATE_KEY=
`

// InitProject writes a devote.toml skeleton for a governance deployment
type InitProject struct {
	writer   ProjectWriter
	progress ProgressSink
}

// NewInitProject creates a new init project use case
func NewInitProject(writer ProjectWriter, progress ProgressSink) *InitProject {
	return &InitProject{
		writer:   writer,
		progress: progress,
	}
}

// InitProjectParams describes the network and contracts to record
type InitProjectParams struct {
	Network  string
	RPCURL   string
	ChainID  uint64
	Governor string
	Token    string
	Timelock string
	Force    bool
}

// InitProjectResult contains the result of project initialization
type InitProjectResult struct {
	ProjectFile        string
	AlreadyInitialized bool
	Steps              []InitStep
}

// InitStep represents a step in the initialization process
type InitStep struct {
	Name    string
	Success bool
	Message string
}

// Run validates the params and writes the project files
func (i *InitProject) Run(ctx context.Context, params InitProjectParams) (*InitProjectResult, error) {
	file, err := buildProjectFile(params)
	if err != nil {
		return nil, err
	}

	result := &InitProjectResult{}

	exists, err := i.writer.FileExists(ctx, config.ProjectFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", config.ProjectFileName, err)
	}
	if exists && !params.Force {
		result.AlreadyInitialized = true
		result.ProjectFile = config.ProjectFileName
		result.Steps = append(result.Steps, InitStep{
			Name:    "Create " + config.ProjectFileName,
			Success: true,
			Message: config.ProjectFileName + " already exists (use --force to overwrite)",
		})
		return result, nil
	}

	path, err := i.writer.WriteProjectFile(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", config.ProjectFileName, err)
	}
	result.ProjectFile = path
	result.Steps = append(result.Steps, InitStep{
		Name:    "Create " + config.ProjectFileName,
		Success: true,
		Message: fmt.Sprintf("network '%s' at %s", params.Network, params.RPCURL),
	})
	i.progress.Info("Created " + path)

	if err := i.writer.EnsureDirectory(ctx, config.DataDirName); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", config.DataDirName, err)
	}
	result.Steps = append(result.Steps, InitStep{
		Name:    "Create " + config.DataDirName,
		Success: true,
		Message: "local config directory",
	})

	result.Steps = append(result.Steps, i.createEnvExample(ctx))
	return result, nil
}

func (i *InitProject) createEnvExample(ctx context.Context) InitStep {
	step := InitStep{Name: "Create .env.example"}

	exists, err := i.writer.FileExists(ctx, ".env.example")
	if err != nil {
		step.Message = err.Error()
		return step
	}
	if exists {
		step.Success = true
		step.Message = "already exists"
		return step
	}
	if err := i.writer.WriteFile(ctx, ".env.example", envExample); err != nil {
		step.Message = err.Error()
		return step
	}
	step.Success = true
	step.Message = "wallet secrets template"
	return step
}

// buildProjectFile validates params into the devote.toml contents
func buildProjectFile(params InitProjectParams) (*config.DevoteFileConfig, error) {
	name := strings.TrimSpace(params.Network)
	if name == "" {
		return nil, fmt.Errorf("%w: network name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(params.RPCURL) == "" {
		return nil, fmt.Errorf("%w: rpc url is required", domain.ErrInvalidInput)
	}

	contracts := config.Contracts{}
	for _, c := range []struct {
		label string
		value string
		dst   *string
	}{
		{"governor", params.Governor, &contracts.Governor},
		{"token", params.Token, &contracts.Token},
		{"timelock", params.Timelock, &contracts.Timelock},
	} {
		if c.value == "" {
			continue
		}
		addr, err := domain.ParseAddress(c.value)
		if err != nil {
			return nil, fmt.Errorf("%s address: %w", c.label, err)
		}
		*c.dst = addr.Hex()
	}

	return &config.DevoteFileConfig{
		Networks: map[string]config.NetworkConfig{
			name: {RPCURL: params.RPCURL, ChainID: params.ChainID},
		},
		Contracts: contracts,
		Defaults:  config.DefaultsConfig{Network: name},
	}, nil
}
