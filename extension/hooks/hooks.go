// Package hooks provides the hooks extension for dispatching and inspecting
// the registry from the command line.
// Registers commands: apply, do, ls.
//
// Each command file is separated to isolate its flag handling and output
// formatting. All three read the registry that PersistentPreRunE built from
// the loaded scripts.
package hooks

import (
	"github.com/jpl-au/wphooks/extension"
	"github.com/jpl-au/wphooks/internal/script"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the hooks extension.
type Extension struct {
	rt *script.Runtime
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "hooks".
func (e *Extension) Name() string { return "hooks" }

// Init keeps the shared runtime for dispatch.
func (e *Extension) Init(ctx extension.Context) error {
	e.rt = ctx.Runtime()
	return nil
}

// Commands returns the dispatch and listing commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newApplyCmd(),
		e.newDoCmd(),
		e.newLsCmd(),
	}
}

// MCPTools returns nil - hook MCP tools are provided by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
