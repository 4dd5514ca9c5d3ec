// tools_config.go implements the MCP tool for reading configuration.
//
// Design: The server reports the configuration it was started with. There
// is no set tool: scripts and asset settings are read once at start, so a
// change made through the server would not take effect until restart.

package mcp

import (
	"context"

	"github.com/jpl-au/wphooks/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles wphooks_config_get tool calls.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:wphooks_config_get", "config").Write(nil)
		return jsonResult(h.cfg.All())
	}

	v, err := h.cfg.Get(key)

	log.Event("mcp:wphooks_config_get", "config").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]string{key: v})
}
