// Package core provides the core extension for wphooks.
// It registers commands: config, serve, guide, log, version.
package core

import (
	"github.com/jpl-au/wphooks/extension"
	"github.com/jpl-au/wphooks/hook"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension  = (*Extension)(nil)
	_ extension.Hooker     = (*Extension)(nil)
	_ extension.Scriptless = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental wphooks commands.
func (e *Extension) Name() string { return "core" }

// Commands returns the configuration, server and documentation commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newLogCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - MCP tools are provided by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// Hooks records each run's loaded scripts in the audit log. Priority 0 and
// attached before scripts load, so it runs ahead of any script's init
// callback.
func (e *Extension) Hooks(reg *hook.Registry) {
	reg.AddAction(extension.ActionInit, func(args ...any) {
		var loaded []string
		if len(args) > 0 {
			loaded, _ = args[0].([]string)
		}
		log.Event("core:init", "init").
			Callbacks(reg.Count(hook.NamespaceAction, extension.ActionInit)).
			Detail("scripts", loaded).
			Write(nil)
	}, 0)
}

// NoScriptCommands returns commands that skip script loading.
// config, guide and version already bypass scripts in cmd; serve is not
// listed because the server dispatches through the loaded registry.
func (e *Extension) NoScriptCommands() []string {
	return []string{"config", "guide", "log", "version"}
}
