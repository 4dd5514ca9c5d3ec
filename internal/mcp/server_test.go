package mcp

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/jpl-au/wphooks/hook"
	"github.com/jpl-au/wphooks/internal/asset"
	"github.com/jpl-au/wphooks/internal/config"
	"github.com/jpl-au/wphooks/internal/script"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `
wpbones_add_filter("greet", function(v) return string.upper(v) end, 10)
wpbones_add_filter("greet", function(v) return v .. "!" end, 20)
wpbones_add_filter("sum", function(v, n) return v + n end)
wpbones_add_action("log", function() end, 5)
wpbones_add_action("boom", function() error("kaboom") end)
`

func newTestHandlers(t *testing.T) *handlers {
	t.Helper()
	rt := script.New(hook.New(), script.WithOutput(io.Discard))
	t.Cleanup(func() { _ = rt.Close() })
	require.NoError(t, rt.LoadString("test.lua", testScript))

	cfg := &config.Config{}
	require.NoError(t, cfg.Set("asset.base_url", "https://example.com/plugin/"))
	require.NoError(t, cfg.Set("asset.version", "9"))
	return newHandlers(rt, cfg)
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func decode(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.False(t, res.IsError, text(t, res))
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	return out
}

func TestApplyFilters(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.applyFilters(context.Background(), call(map[string]any{"tag": "greet", "value": "hello"}))
	require.NoError(t, err)
	out := decode(t, res)
	assert.Equal(t, "HELLO!", out["result"])
	assert.EqualValues(t, 2, out["callbacks"])

	res, err = h.applyFilters(context.Background(), call(map[string]any{
		"tag": "sum", "value": "40", "args": []any{"2"}, "json": true,
	}))
	require.NoError(t, err)
	assert.EqualValues(t, 42, decode(t, res)["result"])

	res, err = h.applyFilters(context.Background(), call(map[string]any{"tag": "unknown", "value": "same"}))
	require.NoError(t, err)
	assert.Equal(t, "same", decode(t, res)["result"])
}

func TestApplyFilters_Errors(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.applyFilters(context.Background(), call(map[string]any{"value": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.applyFilters(context.Background(), call(map[string]any{"tag": "a\x00b", "value": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.applyFilters(context.Background(), call(map[string]any{"tag": "t", "value": "{bad", "json": true}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "invalid JSON")
}

func TestDoAction(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.doAction(context.Background(), call(map[string]any{"tag": "log"}))
	require.NoError(t, err)
	out := decode(t, res)
	assert.EqualValues(t, 1, out["did_action"])
	assert.EqualValues(t, 1, out["callbacks"])

	res, err = h.didAction(context.Background(), call(map[string]any{"tag": "log"}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, decode(t, res)["did_action"])

	res, err = h.doAction(context.Background(), call(map[string]any{"tag": "boom"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "kaboom")
}

func TestList(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.list(context.Background(), call(map[string]any{"namespace": "filter"}))
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "greet", rows[0]["tag"])
	assert.Equal(t, "sum", rows[1]["tag"])

	res, err = h.list(context.Background(), call(map[string]any{"tag": "greet"}))
	require.NoError(t, err)
	var listings []tagListing
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, hook.NamespaceFilter, listings[0].Namespace)
	require.Len(t, listings[0].Entries, 2)
	assert.Equal(t, hook.Priority(10), listings[0].Entries[0].Priority)
	assert.Equal(t, hook.Priority(20), listings[0].Entries[1].Priority)

	res, err = h.list(context.Background(), call(map[string]any{"namespace": "event"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestScriptURLAndEnqueue(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.scriptURL(context.Background(), call(map[string]any{"minified": false}))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/plugin/public/js/actions-and-filters.js", text(t, res))

	res, err = h.enqueue(context.Background(), call(nil))
	require.NoError(t, err)
	out := decode(t, res)
	assert.Equal(t, asset.Handle, out["handle"])
	assert.Equal(t,
		`<script id="actions-and-filters-js" src="https://example.com/plugin/public/js/actions-and-filters.min.js?ver=9"></script>`+"\n",
		out["footer"])
	assert.Equal(t, 1, h.rt.Registry().DidAction(asset.ActionEnqueueScripts))
}

func TestConfigGet(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.configGet(context.Background(), call(map[string]any{"key": "asset.version"}))
	require.NoError(t, err)
	assert.Equal(t, "9", decode(t, res)["asset.version"])

	res, err = h.configGet(context.Background(), call(map[string]any{"key": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestResources(t *testing.T) {
	h := newTestHandlers(t)

	contents, err := h.readTags(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, `"boom"`)

	var req mcp.ReadResourceRequest
	req.Params.URI = "wphooks://action/log"
	contents, err = h.readTag(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, `"priority": 5`)

	req.Params.URI = "wphooks://event/log"
	_, err = h.readTag(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidURI)
}

func TestParseTagURI(t *testing.T) {
	ns, tag, err := parseTagURI("wphooks://filter/a/b")
	require.NoError(t, err)
	assert.Equal(t, "filter", ns)
	assert.Equal(t, "a/b", tag)

	for _, bad := range []string{"http://filter/a", "wphooks://filter", "wphooks:///a", "wphooks://filter/"} {
		_, _, err := parseTagURI(bad)
		assert.ErrorIs(t, err, ErrInvalidURI, bad)
	}
}

func TestNewServer(t *testing.T) {
	h := newTestHandlers(t)
	assert.NotNil(t, NewServer(h.rt, h.cfg))
}
