// Package asset provides the asset extension for delivering the browser
// registry script.
// Registers commands: asset url, asset enqueue, asset version.
package asset

import (
	"github.com/jpl-au/wphooks/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the asset extension.
type Extension struct{}

// Compile-time interface compliance.
var _ extension.Extension = (*Extension)(nil)

// Name returns "asset".
func (e *Extension) Name() string { return "asset" }

// Commands returns the asset command group.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "asset",
		Short: "Deliver the browser registry script",
		Long: `Work out the URL of actions-and-filters.js, queue it on a page and print
the script tags, or compute a version token from a local copy.

See "wphooks guide asset" for the hooks fired along the way.`,
	}
	c.AddCommand(
		newURLCmd(),
		newEnqueueCmd(),
		newVersionCmd(),
	)
	return []*cobra.Command{c}
}

// MCPTools returns the version-token tool. URL and enqueue tools are
// provided by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{versionTool()}
}
