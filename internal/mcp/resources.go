// resources.go implements MCP resource handlers for registry access.
//
// Resources give clients read-only views of the registry they can load as
// context without calling a tool.
//
// Design: URIs follow wphooks://tags for the full listing and
// wphooks://{namespace}/{tag} for one tag. The namespace segment accepts
// the same selectors as the CLI (action, filter).

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/wphooks/internal/format"
	"github.com/mark3labs/mcp-go/mcp"
)

const tagsURI = "wphooks://tags"

// ErrInvalidURI indicates a malformed resource URI.
var ErrInvalidURI = errors.New("invalid URI")

// readTags handles wphooks://tags resource requests.
func (h *handlers) readTags(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	namespaces, _ := format.Namespaces("")
	rows := format.Summarise(h.rt.Registry(), namespaces...)
	if rows == nil {
		rows = []format.TagSummary{}
	}
	return jsonContents(tagsURI, rows)
}

// readTag handles wphooks://{namespace}/{tag} resource requests.
func (h *handlers) readTag(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	ns, tag, err := parseTagURI(uri)
	if err != nil {
		return nil, err
	}
	namespaces, err := format.Namespaces(ns)
	if err != nil || len(namespaces) != 1 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return jsonContents(uri, tagListing{
		Namespace: namespaces[0],
		Tag:       tag,
		Entries:   format.Rows(h.rt.Registry().Entries(namespaces[0], tag)),
	})
}

// parseTagURI splits wphooks://{namespace}/{tag}. The tag may itself
// contain slashes.
func parseTagURI(uri string) (ns, tag string, err error) {
	rest, ok := strings.CutPrefix(uri, "wphooks://")
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	ns, tag, ok = strings.Cut(rest, "/")
	if !ok || ns == "" || tag == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return ns, tag, nil
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
