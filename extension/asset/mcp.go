// mcp.go exposes "asset version" as an MCP tool.

package asset

import (
	"context"

	"github.com/jpl-au/wphooks/extension"
	"github.com/jpl-au/wphooks/internal/asset"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

func versionTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("wphooks_asset_version",
			mcp.WithDescription("Hash a local copy of the registry script into its ?ver= token. Defaults to asset.file."),
			mcp.WithString("file", mcp.Description("Path to the script file")),
		),
		Handler: handleVersion,
	}
}

func handleVersion(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, _ := req.RequireString("file")
	if file == "" && extCtx != nil && extCtx.Config() != nil {
		file = extCtx.Config().Asset.File
	}
	if file == "" {
		return mcp.NewToolResultError("file is required when asset.file is not set"), nil
	}

	token, err := asset.VersionToken(file)
	log.Event("mcp:wphooks_asset_version", "hash").Detail("file", file).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(token), nil
}
