// Package mcp implements the Model Context Protocol server, exposing the
// hook registry to LLMs. An assistant can list registered tags, run filter
// chains and fire actions against the scripts the server was started with,
// and work out how the browser-side registry script is delivered.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/wphooks/internal/asset"
	"github.com/jpl-au/wphooks/internal/config"
	"github.com/jpl-au/wphooks/internal/script"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
//
// extra carries tools contributed by extensions; they are registered after
// the built-in tools.
func Serve(rt *script.Runtime, cfg *config.Config, extra ...server.ServerTool) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := NewServer(rt, cfg, extra...)

	slog.Info("wphooks MCP server ready",
		"version", Version,
		"transport", "stdio",
		"scripts", len(rt.Loaded()))

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the server without starting a transport.
func NewServer(rt *script.Runtime, cfg *config.Config, extra ...server.ServerTool) *server.MCPServer {
	h := newHandlers(rt, cfg)

	s := server.NewMCPServer(
		"wphooks",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	if len(extra) > 0 {
		s.AddTools(extra...)
	}
	return s
}

// handlers provides MCP request handlers with access to the runtime.
type handlers struct {
	rt  *script.Runtime
	cfg *config.Config
	doc *asset.Document // page queue shared by wphooks_enqueue calls
}

func newHandlers(rt *script.Runtime, cfg *config.Config) *handlers {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &handlers{rt: rt, cfg: cfg, doc: asset.NewDocument()}
}

// registerResources adds URI-based read access to the registry.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcp.NewResource(
			tagsURI,
			"Registered tags",
			mcp.WithResourceDescription("Every action and filter tag with its callback count"),
			mcp.WithMIMEType("application/json"),
		),
		h.readTags,
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"wphooks://{namespace}/{tag}",
			"Tag callbacks",
			mcp.WithTemplateDescription("Callbacks registered for one action or filter tag, in dispatch order"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readTag,
	)
}

// registerTools exposes hook operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// List
	s.AddTool(
		mcp.NewTool("wphooks_list",
			mcp.WithDescription("List registered action and filter tags, or the callbacks of one tag"),
			mcp.WithString("namespace", mcp.Description("Restrict to 'action' or 'filter'")),
			mcp.WithString("tag", mcp.Description("Show callbacks for this tag in dispatch order")),
		),
		h.list,
	)

	// Apply filters
	s.AddTool(
		mcp.NewTool("wphooks_apply_filters",
			mcp.WithDescription("Run a value through the filter chain for a tag and return the result. Unknown tags return the value unchanged."),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Filter tag")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Initial value")),
			mcp.WithArray("args", mcp.WithStringItems(), mcp.Description("Extra arguments passed to every callback")),
			mcp.WithBoolean("json", mcp.Description("Decode value and args as JSON instead of plain strings")),
		),
		h.applyFilters,
	)

	// Do action
	s.AddTool(
		mcp.NewTool("wphooks_do_action",
			mcp.WithDescription("Fire an action: call every callback registered for the tag"),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Action tag")),
			mcp.WithArray("args", mcp.WithStringItems(), mcp.Description("Arguments passed to every callback")),
			mcp.WithBoolean("json", mcp.Description("Decode args as JSON instead of plain strings")),
		),
		h.doAction,
	)

	// Did action
	s.AddTool(
		mcp.NewTool("wphooks_did_action",
			mcp.WithDescription("Number of times an action has been fired since the server started"),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Action tag")),
		),
		h.didAction,
	)

	// Script URL
	s.AddTool(
		mcp.NewTool("wphooks_script_url",
			mcp.WithDescription("Public URL of the browser-side registry script"),
			mcp.WithString("base_url", mcp.Description("Plugin root URL (default: asset.base_url)")),
			mcp.WithBoolean("minified", mcp.Description("Use the .min.js build (default: asset.minified)")),
		),
		h.scriptURL,
	)

	// Enqueue
	s.AddTool(
		mcp.NewTool("wphooks_enqueue",
			mcp.WithDescription("Queue the registry script on the server's page and return the rendered footer tags"),
			mcp.WithBoolean("minified", mcp.Description("Use the .min.js build (default: asset.minified)")),
		),
		h.enqueue,
	)

	// Config Get
	s.AddTool(
		mcp.NewTool("wphooks_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (scripts.paths, asset.base_url, asset.minified, asset.version, asset.file, script.timeout) or empty for all")),
		),
		h.configGet,
	)

	// Guide
	s.AddTool(
		mcp.NewTool("wphooks_guide",
			mcp.WithDescription("Get help/guide content for wphooks"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'hooks', 'script', 'asset') or empty for index")),
		),
		h.getGuide,
	)
}
