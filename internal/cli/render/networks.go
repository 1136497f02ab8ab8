package render

import (
	"fmt"
	"io"

	"github.com/devote-org/devote-cli/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{
		out: out,
	}
}

// RenderNetworksList renders the configured networks, marking the selected one
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in devote.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		marker := " "
		if network.Name == result.Current {
			marker = "*"
		}
		switch {
		case network.Error != nil:
			fmt.Fprintf(r.out, "%s ❌ %s - Error: %v\n", marker, network.Name, network.Error)
		case network.ChainID != 0:
			fmt.Fprintf(r.out, "%s ✅ %s - Chain ID: %d\n", marker, network.Name, network.ChainID)
		default:
			fmt.Fprintf(r.out, "%s ✅ %s - %s\n", marker, network.Name, network.RPCURL)
		}
	}

	return nil
}
