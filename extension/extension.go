// Package extension provides the plugin architecture for wphooks. Extensions
// encapsulate related functionality (commands, MCP tools, Go hook callbacks)
// and register at init time, enabling modular feature development without
// touching core code.
package extension

import (
	"github.com/jpl-au/wphooks/hook"
	"github.com/spf13/cobra"
)

// Extension defines the contract for wphooks extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions can perform setup once scripts are loaded.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Hooker extensions attach Go callbacks to the shared registry. Hooks runs
// before any script is loaded, so script callbacks registered at the same
// priority run after the extension's.
type Hooker interface {
	Extension
	Hooks(reg *hook.Registry)
}

// Scriptless is an optional interface for extensions with commands that
// don't need hook scripts. Commands returned by NoScriptCommands() skip
// script loading in PersistentPreRunE, so they work even when a configured
// script is broken.
type Scriptless interface {
	NoScriptCommands() []string
}
