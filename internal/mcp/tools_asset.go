// tools_asset.go implements MCP tools for delivering the registry script.
//
// Design: The server keeps one page queue for its lifetime, so repeated
// wphooks_enqueue calls show the host platform's first-registration-wins
// behaviour. Enqueueing fires hooks that may reach script callbacks, so it
// runs under the runtime.

package mcp

import (
	"bytes"
	"context"

	"github.com/jpl-au/wphooks/internal/asset"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// assetOptions builds enqueue options from config, overridden by request
// parameters.
func (h *handlers) assetOptions(req mcp.CallToolRequest) asset.Options {
	return asset.Options{
		BaseURL:  getString(req, "base_url", h.cfg.Asset.BaseURL),
		Minified: getBool(req, "minified", h.cfg.Minified()),
		Version:  h.cfg.Asset.Version,
		File:     h.cfg.Asset.File,
	}
}

// scriptURL handles wphooks_script_url tool calls.
func (h *handlers) scriptURL(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := h.assetOptions(req)
	url := asset.ScriptURL(opts.BaseURL, opts.Minified)

	log.Event("mcp:wphooks_script_url", "url").Detail("url", url).Write(nil)

	return mcp.NewToolResultText(url), nil
}

// enqueue handles wphooks_enqueue tool calls.
func (h *handlers) enqueue(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := h.assetOptions(req)

	var (
		handle string
		buf    bytes.Buffer
	)
	err := h.rt.Run(func() error {
		var err error
		handle, err = asset.EnqueueScripts(h.rt.Registry(), h.doc, opts)
		if err != nil {
			return err
		}
		return h.doc.Render(&buf, true, h.rt.Registry())
	})

	log.Event("mcp:wphooks_enqueue", "enqueue").
		Detail("handle", handle).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s, _ := h.doc.Queued(handle)
	return jsonResult(map[string]any{
		"handle": handle,
		"script": s,
		"footer": buf.String(),
	})
}
