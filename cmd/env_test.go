// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: flag parsing -> script loading -> registry dispatch -> output and
// the SQLite audit log.
//
// Each test gets its own project directory and its own WPHOOKS_DIR, so
// config files and the audit log never leak between tests or into the
// user's home. Hook scripts are written into the project directory and
// passed with --script, the way a user would.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the wphooks binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "wphooks-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "wphooks"
		if os.PathSeparator == '\\' {
			binaryName = "wphooks.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // project directory, the working directory of every run
	home   string // WPHOOKS_DIR
	binary string
	env    []string // extra environment variables
}

// newTestEnv creates an empty project directory and a private state home.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
}

// setenv adds an environment variable to every subsequent run.
func (e *testEnv) setenv(key, value string) {
	e.env = append(e.env, key+"="+value)
}

// script writes a Lua hook script into the project and returns its name.
func (e *testEnv) script(name, src string) string {
	e.t.Helper()
	e.write(name, src)
	return name
}

// write creates a file relative to the project directory.
func (e *testEnv) write(name, content string) {
	e.t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
}

// run executes wphooks with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("wphooks %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes wphooks and returns stdout and stderr combined, and any
// error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdout executes wphooks and returns stdout only, for JSON decoding.
func (e *testEnv) runStdout(args ...string) string {
	e.t.Helper()
	out, err := e.command(args...).Output()
	if err != nil {
		e.t.Fatalf("wphooks %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	// Inherited WPHOOKS_* variables are dropped rather than blanked: .env
	// never overrides a variable that is set, even to "".
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "WPHOOKS_") {
			cmd.Env = append(cmd.Env, kv)
		}
	}
	cmd.Env = append(cmd.Env, "WPHOOKS_DIR="+e.home)
	cmd.Env = append(cmd.Env, e.env...)
	return cmd
}

// json runs wphooks with -o json and decodes stdout into v.
func (e *testEnv) json(v any, args ...string) {
	e.t.Helper()
	out := e.runStdout(append([]string{"-o", "json"}, args...)...)
	require.NoError(e.t, json.Unmarshal([]byte(out), v), "output: %s", out)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// Hook scripts shared by several tests.
const (
	// greetScript registers two filters on "greet" out of priority order.
	greetScript = `
wpbones_add_filter("greet", function(v) return v .. "!" end)
wpbones_add_filter("greet", function(v) return string.upper(v) end, 5)
`

	// actionsScript records dispatch order with print.
	actionsScript = `
wpbones_add_action("save", function(id) print("late " .. id) end, 20)
wpbones_add_action("save", function(id) print("first " .. id) end)
wpbones_add_action("save", function(id) print("second " .. id) end)
wpbones_add_action("save", "not a function")
`
)
