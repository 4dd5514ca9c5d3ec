package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	env := newTestEnv(t)
	s := env.script("greet.lua", greetScript+`
wpbones_add_action("crash", function() error("bad") end)
`)

	env.run("-s", s, "apply", "greet", "hello")
	env.run("-s", s, "do", "init")
	_, err := env.runErr("-s", s, "do", "crash")
	require.Error(t, err)

	t.Run("newest first", func(t *testing.T) {
		var records []struct {
			Source    string `json:"source"`
			Action    string `json:"action"`
			Tag       string `json:"tag"`
			Callbacks int    `json:"callbacks"`
			Success   bool   `json:"success"`
			Error     string `json:"error"`
			Run       string `json:"run"`
		}
		env.json(&records, "log", "--source", "hooks:")
		require.Len(t, records, 3)

		assert.Equal(t, "hooks:do", records[0].Source)
		assert.Equal(t, "crash", records[0].Tag)
		assert.False(t, records[0].Success)
		assert.Contains(t, records[0].Error, "bad")

		assert.Equal(t, "init", records[1].Tag)
		assert.True(t, records[1].Success)

		assert.Equal(t, "hooks:apply", records[2].Source)
		assert.Equal(t, "filter", records[2].Action)
		assert.Equal(t, 2, records[2].Callbacks)

		assert.NotEqual(t, records[0].Run, records[2].Run, "each process has its own run id")
	})

	t.Run("filters", func(t *testing.T) {
		var records []map[string]any
		env.json(&records, "log", "--tag", "greet")
		require.Len(t, records, 1)

		env.json(&records, "log", "--failed")
		require.Len(t, records, 1)
		assert.Equal(t, "crash", records[0]["tag"])

		env.json(&records, "log", "--source", "hooks:", "-n", "1")
		assert.Len(t, records, 1)
	})

	t.Run("other projects are hidden", func(t *testing.T) {
		other := newTestEnv(t)
		other.home = env.home

		var records []map[string]any
		other.json(&records, "log", "--source", "hooks:")
		assert.Empty(t, records)

		other.json(&records, "log", "--source", "hooks:", "--all")
		assert.Len(t, records, 3)
	})

	t.Run("table", func(t *testing.T) {
		out := env.run("log", "--tag", "crash")
		env.contains(out, "SOURCE")
		env.contains(out, "hooks:do")
		env.contains(out, "error:")
	})

	t.Run("log is scriptless", func(t *testing.T) {
		env.script("broken.lua", "nope nope")
		env.run("-s", "broken.lua", "log")
	})

	t.Run("prune", func(t *testing.T) {
		out := env.run("log", "prune", "--older-than", "7d", "--dry-run")
		env.equals(out, "Would delete 0 entries")

		out, err := env.runErr("log", "prune", "--older-than", "106752d")
		assert.Error(t, err)
		assert.Contains(t, out, "too long")
		var kept []map[string]any
		env.json(&kept, "log", "--source", "hooks:")
		assert.Len(t, kept, 3)

		out = env.run("log", "prune", "--older-than", "0h")
		env.contains(out, "Deleted ")

		_, err = env.runErr("log", "prune", "--older-than", "soon")
		assert.Error(t, err)
		_, err = env.runErr("log", "prune")
		assert.Error(t, err)
	})
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("version")
	env.contains(out, "dev")

	var info map[string]string
	env.json(&info, "version")
	assert.Equal(t, "dev", info["build_tag"])
	assert.NotEmpty(t, info["go_version"])
}
