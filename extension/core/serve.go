// serve.go implements the "wphooks serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks handling MCP
// requests over stdio until the client disconnects.
//
// Design: Serve runs with the registry that PersistentPreRunE built, so
// scripts given with --script or scripts.paths are live for every tool
// call. Script print output goes to stderr while serving, keeping stdout
// for the protocol.

package core

import (
	"github.com/jpl-au/wphooks/cmd"
	"github.com/jpl-au/wphooks/extension"
	"github.com/jpl-au/wphooks/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio, exposing the
hook registry to LLM clients.

  wphooks -s hooks/site.lua serve`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	return mcp.Serve(ctx.Runtime(), ctx.Config(), extension.ServerTools(ctx)...)
}
