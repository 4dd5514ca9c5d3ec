// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map. These helpers return safe defaults when
// optional parameters are missing.
//
// Design: Extraction is permissive. An LLM omitting an optional parameter,
// or sending "true" as a string, gets the default rather than a type error.

package mcp

import (
	"encoding/json"

	"github.com/jpl-au/wphooks/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a string parameter, returning def if it is missing or
// not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// requireTag extracts and validates the tag parameter. A non-nil result is
// the error to return to the client.
func requireTag(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	tag, err := req.RequireString("tag")
	if err != nil {
		return "", mcp.NewToolResultError("tag is required")
	}
	if err := validate.Tag(tag); err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	return tag, nil
}

// getBool extracts a boolean parameter from the request arguments.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getStrings extracts a string array parameter. Non-string elements are
// skipped. Returns nil when the parameter is absent.
func getStrings(req mcp.CallToolRequest, name string) []string {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	arr, ok := args[name].([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// jsonResult serialises v as indented JSON and wraps it in a text result.
// Marshalling failures become error results so every failure reaches the
// client the same way.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
