package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("list shows every key with defaults", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config")
		env.contains(out, "asset.minified: true")
		env.contains(out, "script.timeout: 5s")
		env.contains(out, "scripts.paths: ")
	})

	t.Run("set writes global by default", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "asset.version", "1.2.3")
		env.equals(out, "asset.version = 1.2.3 (global)")
		assert.FileExists(t, filepath.Join(env.home, "config.yaml"))
		env.equals(env.run("config", "asset.version"), "1.2.3")
	})

	t.Run("local overrides global", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("config", "asset.version", "global")
		out := env.run("config", "--local", "asset.version", "local")
		env.equals(out, "asset.version = local (local)")
		assert.FileExists(t, filepath.Join(env.dir, ".wphooks", "config.yaml"))
		env.equals(env.run("config", "asset.version"), "local")
	})

	t.Run("local config found from subdirectory", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("config", "--local", "asset.version", "project")
		require.NoError(t, os.MkdirAll(filepath.Join(env.dir, "src", "js"), 0755))

		env.equals(env.run("--dir", filepath.Join("src", "js"), "config", "asset.version"), "project")
	})

	t.Run("invalid values", func(t *testing.T) {
		env := newTestEnv(t)

		for _, kv := range [][2]string{
			{"asset.minified", "maybe"},
			{"script.timeout", "forever"},
			{"asset.base_url", "plugins/site"},
			{"author.name", "x"},
		} {
			_, err := env.runErr("config", kv[0], kv[1])
			assert.Error(t, err, kv[0])
		}
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)

		var all map[string]string
		env.json(&all, "config")
		assert.Equal(t, "true", all["asset.minified"])

		var got map[string]string
		env.json(&got, "config", "asset.file", "dist/hooks.js")
		assert.Equal(t, map[string]string{"key": "asset.file", "value": "dist/hooks.js", "scope": "global"}, got)
	})
}
