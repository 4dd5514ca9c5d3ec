package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Run("priority order", func(t *testing.T) {
		env := newTestEnv(t)
		s := env.script("greet.lua", greetScript)

		out := env.run("-s", s, "apply", "greet", "hello")
		env.equals(out, "HELLO!")
	})

	t.Run("unknown tag returns value unchanged", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("apply", "nothing_here", "same value")
		env.equals(out, "same value")
	})

	t.Run("extra args reach every callback", func(t *testing.T) {
		env := newTestEnv(t)
		s := env.script("price.lua", `
wpbones_add_filter("price", function(v, qty, discount) return v * qty - discount end)
`)
		out := env.run("-s", s, "apply", "price", "40", "2", "5", "--json")
		env.equals(out, "75")
	})

	t.Run("json values", func(t *testing.T) {
		env := newTestEnv(t)
		s := env.script("post.lua", `
wpbones_add_filter("post", function(p) p.title = string.upper(p.title); return p end)
`)
		var got struct {
			Tag    string         `json:"tag"`
			Result map[string]any `json:"result"`
		}
		env.json(&got, "-s", s, "apply", "post", `{"title":"hi","id":3}`, "--json")
		assert.Equal(t, "post", got.Tag)
		assert.Equal(t, "HI", got.Result["title"])
		assert.EqualValues(t, 3, got.Result["id"])
	})

	t.Run("json output", func(t *testing.T) {
		env := newTestEnv(t)
		s := env.script("greet.lua", greetScript)

		var got map[string]any
		env.json(&got, "-s", s, "apply", "greet", "hello")
		assert.Equal(t, "hello", got["input"])
		assert.Equal(t, "HELLO!", got["result"])
		assert.EqualValues(t, 2, got["callbacks"])
	})

	t.Run("diff", func(t *testing.T) {
		env := newTestEnv(t)
		s := env.script("greet.lua", greetScript)

		out := env.run("-s", s, "apply", "greet", "hello", "--diff")
		env.contains(out, "--- greet (input)")
		env.contains(out, "+++ greet (filtered)")
		env.contains(out, "- hello")
		env.contains(out, "+ HELLO!")

		out = env.run("-s", s, "apply", "untouched", "same", "--diff")
		env.equals(out, "untouched: no change (0 callbacks)")
	})

	t.Run("apply result filter", func(t *testing.T) {
		env := newTestEnv(t)
		s := env.script("wrap.lua", greetScript+`
wpbones_add_filter("wphooks_apply_result", function(v, tag) return "[" .. tag .. "] " .. v end)
`)
		out := env.run("-s", s, "apply", "greet", "hello")
		env.equals(out, "[greet] HELLO!")
	})

	t.Run("callback error fails the command", func(t *testing.T) {
		env := newTestEnv(t)
		s := env.script("bad.lua", `
wpbones_add_filter("boom", function(v) error("no thanks") end)
wpbones_add_filter("boom", function(v) print("unreachable") return v end, 20)
`)
		out, err := env.runErr("-s", s, "apply", "boom", "x")
		require.Error(t, err)
		env.contains(out, "no thanks")
		assert.NotContains(t, out, "unreachable")
	})

	t.Run("empty tag rejected", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runErr("apply", "", "x")
		require.Error(t, err)
		env.contains(out, "invalid tag")
	})

	t.Run("invalid json", func(t *testing.T) {
		env := newTestEnv(t)

		var got map[string]string
		env.json(&got, "apply", "t", "{nope", "--json")
		assert.Contains(t, got["error"], "invalid JSON value")
	})
}

func TestDo(t *testing.T) {
	t.Run("dispatch order and skipped entries", func(t *testing.T) {
		env := newTestEnv(t)
		s := env.script("actions.lua", actionsScript)

		out := env.run("-s", s, "do", "save", "42")
		assert.Equal(t, "first 42\nsecond 42\nlate 42\nsave: 4 callbacks, did_action 1\n", out)
	})

	t.Run("unknown tag is a no-op", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("do", "nobody_listens", "a", "b")
		env.equals(out, "nobody_listens: 0 callbacks, did_action 1")
	})

	t.Run("did_action counts nested dispatch", func(t *testing.T) {
		env := newTestEnv(t)
		s := env.script("nested.lua", `
wpbones_add_action("outer", function()
  wpbones_do_action("inner")
  wpbones_do_action("inner")
  print("inner " .. wpbones_did_action("inner"))
end)
`)
		out := env.run("-s", s, "do", "outer")
		assert.Equal(t, "inner 2\nouter: 1 callbacks, did_action 1\n", out)

		var got map[string]any
		env.json(&got, "-s", s, "do", "outer")
		assert.EqualValues(t, 1, got["did_action"])
		assert.EqualValues(t, 1, got["callbacks"])
	})

	t.Run("callback error", func(t *testing.T) {
		env := newTestEnv(t)
		s := env.script("bad.lua", `wpbones_add_action("crash", function() error("kaput") end)`)

		out, err := env.runErr("-s", s, "do", "crash")
		require.Error(t, err)
		env.contains(out, "kaput")
	})
}

func TestLs(t *testing.T) {
	env := newTestEnv(t)
	s := env.script("all.lua", greetScript+actionsScript)

	t.Run("summary", func(t *testing.T) {
		out := env.run("-s", s, "ls")
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "action  save  (4)", lines[0])
		assert.Equal(t, "filter  greet  (2)", lines[1])
	})

	t.Run("namespace filter", func(t *testing.T) {
		out := env.run("-s", s, "ls", "--filters")
		env.equals(out, "filter  greet  (2)")

		out = env.run("-s", s, "ls", "--actions")
		env.equals(out, "action  save  (4)")
	})

	t.Run("entries in dispatch order", func(t *testing.T) {
		out := env.run("-s", s, "ls", "save")
		env.contains(out, "action save")
		env.contains(out, "PRIORITY")
		env.contains(out, "no (skipped)")

		var got []struct {
			Namespace string `json:"namespace"`
			Entries   []struct {
				Priority int  `json:"priority"`
				Callable bool `json:"callable"`
			} `json:"entries"`
		}
		env.json(&got, "-s", s, "ls", "save")
		require.Len(t, got, 1)
		require.Len(t, got[0].Entries, 4)
		var priorities []int
		for _, e := range got[0].Entries {
			priorities = append(priorities, e.Priority)
		}
		assert.Equal(t, []int{10, 10, 10, 20}, priorities)
		assert.False(t, got[0].Entries[2].Callable)
	})

	t.Run("unknown tag", func(t *testing.T) {
		out := env.run("-s", s, "ls", "missing")
		env.contains(out, `no callbacks registered for "missing"`)
	})

	t.Run("long lists every tag", func(t *testing.T) {
		out := env.run("-s", s, "ls", "-l")
		env.contains(out, "action save")
		env.contains(out, "filter greet")
	})

	t.Run("empty registry json", func(t *testing.T) {
		var got []any
		env.json(&got, "ls")
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})
}
