// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// dispatch while this package handles presentation concerns like column
// alignment and rendering hook values as text.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jpl-au/wphooks/hook"
)

// TagSummary is one row of a tag listing.
type TagSummary struct {
	Namespace hook.Namespace `json:"namespace"`
	Tag       string         `json:"tag"`
	Callbacks int            `json:"callbacks"`
}

// Summarise lists every tag of the given namespaces with its callback count,
// actions before filters, tags sorted within each namespace.
func Summarise(reg *hook.Registry, namespaces ...hook.Namespace) []TagSummary {
	var out []TagSummary
	for _, ns := range namespaces {
		for _, tag := range reg.Tags(ns) {
			out = append(out, TagSummary{Namespace: ns, Tag: tag, Callbacks: reg.Count(ns, tag)})
		}
	}
	return out
}

// Tags prints tag summaries in simple list format.
func Tags(w io.Writer, rows []TagSummary) error {
	for _, r := range rows {
		fmt.Fprintf(w, "%-6s  %s  (%d)\n", r.Namespace, r.Tag, r.Callbacks)
	}
	return nil
}

// Entries prints the callbacks registered for one tag in dispatch order.
//
// Columns are #, PRIORITY, SEQ, CALLABLE. Entries whose callback is nil are
// shown so a listing explains why a registration appears to do nothing.
func Entries(w io.Writer, ns hook.Namespace, tag string, entries []hook.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	fmt.Fprintf(w, "%s %s\n", ns, tag)
	fmt.Fprintf(w, "%4s  %8s  %6s  %s\n", "#", "PRIORITY", "SEQ", "CALLABLE")
	for i, e := range entries {
		callable := "yes"
		if !e.Callable() {
			callable = "no (skipped)"
		}
		fmt.Fprintf(w, "%4d  %8s  %6d  %s\n", i+1, e.Priority, e.Seq, callable)
	}
	return nil
}

// Value renders a hook value for display. Strings print as-is; everything
// else prints as JSON, falling back to Go formatting when a value cannot be
// encoded.
func Value(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// ParseValue turns a command-line or tool argument into a hook value. With
// asJSON the text is decoded as JSON and whole numbers become int64;
// otherwise the text is passed through as a string.
func ParseValue(s string, asJSON bool) (any, error) {
	if !asJSON {
		return s, nil
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("invalid JSON value %q: %w", s, err)
	}
	return normalise(v), nil
}

// ParseValues applies ParseValue to each argument.
func ParseValues(ss []string, asJSON bool) ([]any, error) {
	out := make([]any, 0, len(ss))
	for _, s := range ss {
		v, err := ParseValue(s, asJSON)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// normalise converts whole float64 numbers, as produced by encoding/json,
// to int64.
func normalise(v any) any {
	switch val := v.(type) {
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			return int64(val)
		}
		return val
	case []any:
		for i := range val {
			val[i] = normalise(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = normalise(val[k])
		}
		return val
	default:
		return v
	}
}

// ErrUnknownNamespace is returned by Namespaces for anything other than
// action or filter.
var ErrUnknownNamespace = errors.New("unknown namespace (expected action or filter)")

// Namespaces parses a namespace selector. Empty selects both, actions first.
func Namespaces(s string) ([]hook.Namespace, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return []hook.Namespace{hook.NamespaceAction, hook.NamespaceFilter}, nil
	case "action", "actions":
		return []hook.Namespace{hook.NamespaceAction}, nil
	case "filter", "filters":
		return []hook.Namespace{hook.NamespaceFilter}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNamespace, s)
	}
}

// EntryRow is the JSON form of one registered callback.
type EntryRow struct {
	Position int           `json:"position"`
	Priority hook.Priority `json:"priority"`
	Seq      uint64        `json:"seq"`
	Callable bool          `json:"callable"`
}

// Rows converts entries, already in dispatch order, to their JSON form.
func Rows(entries []hook.Entry) []EntryRow {
	rows := make([]EntryRow, len(entries))
	for i, e := range entries {
		rows[i] = EntryRow{Position: i + 1, Priority: e.Priority, Seq: e.Seq, Callable: e.Callable()}
	}
	return rows
}
