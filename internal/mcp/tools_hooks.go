// tools_hooks.go implements MCP tools that inspect and dispatch hooks.
//
// Separated from the asset and config tools because these are the only
// tools that run script callbacks, so every dispatch goes through the
// runtime and a failing callback comes back as an error result.
//
// Design: Arguments arrive as strings unless the caller sets json, matching
// the CLI's --json flag. Results are exported to plain JSON values before
// they are returned.

package mcp

import (
	"context"

	"github.com/jpl-au/wphooks/hook"
	"github.com/jpl-au/wphooks/internal/format"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// tagListing is the wphooks_list result for a single tag.
type tagListing struct {
	Namespace hook.Namespace    `json:"namespace"`
	Tag       string            `json:"tag"`
	Entries   []format.EntryRow `json:"entries"`
}

// list handles wphooks_list tool calls.
func (h *handlers) list(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	namespaces, err := format.Namespaces(getString(req, "namespace", ""))
	if err != nil {
		log.Event("mcp:wphooks_list", "list").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	reg := h.rt.Registry()
	tag := getString(req, "tag", "")
	if tag == "" {
		rows := format.Summarise(reg, namespaces...)
		log.Event("mcp:wphooks_list", "list").Detail("count", len(rows)).Write(nil)
		if rows == nil {
			rows = []format.TagSummary{}
		}
		return jsonResult(rows)
	}

	listings := []tagListing{}
	for _, ns := range namespaces {
		if entries := reg.Entries(ns, tag); len(entries) > 0 {
			listings = append(listings, tagListing{Namespace: ns, Tag: tag, Entries: format.Rows(entries)})
		}
	}
	log.Event("mcp:wphooks_list", "list").Tag(tag).Detail("count", len(listings)).Write(nil)
	return jsonResult(listings)
}

// applyFilters handles wphooks_apply_filters tool calls.
func (h *handlers) applyFilters(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, bad := requireTag(req)
	if bad != nil {
		return bad, nil
	}
	raw, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	asJSON := getBool(req, "json", false)
	value, err := format.ParseValue(raw, asJSON)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args, err := format.ParseValues(getStrings(req, "args"), asJSON)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	callbacks := h.rt.Registry().Count(hook.NamespaceFilter, tag)
	result, err := h.rt.ApplyFilters(tag, value, args...)

	log.Event("mcp:wphooks_apply_filters", "filter").
		Tag(tag).
		Callbacks(callbacks).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"tag":       tag,
		"input":     value,
		"result":    result,
		"callbacks": callbacks,
	})
}

// doAction handles wphooks_do_action tool calls.
func (h *handlers) doAction(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, bad := requireTag(req)
	if bad != nil {
		return bad, nil
	}
	args, err := format.ParseValues(getStrings(req, "args"), getBool(req, "json", false))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reg := h.rt.Registry()
	callbacks := reg.Count(hook.NamespaceAction, tag)
	err = h.rt.DoAction(tag, args...)

	log.Event("mcp:wphooks_do_action", "action").
		Tag(tag).
		Callbacks(callbacks).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"tag":        tag,
		"callbacks":  callbacks,
		"did_action": reg.DidAction(tag),
	})
}

// didAction handles wphooks_did_action tool calls.
func (h *handlers) didAction(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, bad := requireTag(req)
	if bad != nil {
		return bad, nil
	}

	n := h.rt.Registry().DidAction(tag)
	log.Event("mcp:wphooks_did_action", "count").Tag(tag).Detail("did_action", n).Write(nil)

	return jsonResult(map[string]any{"tag": tag, "did_action": n})
}
