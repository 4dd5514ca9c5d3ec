/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation sequence that loads
// config, builds the registry and runtime, loads scripts and wires up
// extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. Go callbacks from Hooker extensions are attached
// before scripts load, scripts load in order (scripts.paths, then --script),
// Initializable extensions run, and wphooks_init fires last. One registry
// and one runtime are shared by everything for the life of the process.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/jpl-au/wphooks/extension"
	"github.com/jpl-au/wphooks/hook"
	"github.com/jpl-au/wphooks/internal/config"
	"github.com/jpl-au/wphooks/internal/progress"
	"github.com/jpl-au/wphooks/internal/script"
)

// noScriptCommands lists commands that bypass script loading.
// Built from bootstrap commands plus extension-declared scriptless commands.
var noScriptCommands map[string]bool

// buildNoScriptCommands creates the set of commands that skip script loading.
//
// guide, config and version must work when a configured script fails to
// load, otherwise a broken scripts.paths could not be fixed with
// "wphooks config". Extensions declare further commands via
// extension.Scriptless.
func buildNoScriptCommands() map[string]bool {
	cmds := map[string]bool{
		"guide":      true,
		"config":     true,
		"version":    true,
		"help":       true,
		"completion": true,
	}
	for name := range extension.NoScriptCommands() {
		cmds[name] = true
	}
	return cmds
}

// Global extension state, created during initialisation.
var (
	extContext extension.Context
	extRuntime *script.Runtime
	initOnce   sync.Once
	initErr    error
)

// Context returns the shared extension context, or nil before
// initialisation.
func Context() extension.Context { return extContext }

// scriptOutput is where Lua's print writes. serve reserves stdout for the
// protocol and -o json for a single document, so scripts print to stderr
// there.
func scriptOutput(cmdName string) io.Writer {
	if cmdName == "serve" || JSON() {
		return os.Stderr
	}
	return out
}

// diagnostics returns the logger used for script loading.
func diagnostics() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// scriptPaths returns the scripts to load: configured first, then --script,
// with repeats of the same file dropped.
func scriptPaths(cfg *config.Config) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, p := range slices.Concat(cfg.ScriptPaths(), scripts) {
		key := filepath.Clean(p)
		if abs, err := filepath.Abs(p); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		paths = append(paths, p)
	}
	return paths
}

// initExtensions builds the registry and runtime and injects them into
// extensions. Runs at most once per process.
func initExtensions(cmdName string) error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		reg := hook.New()
		rt := script.New(reg,
			script.WithLogger(diagnostics()),
			script.WithOutput(scriptOutput(cmdName)),
			script.WithLoadTimeout(cfg.ScriptTimeout()),
		)
		extRuntime = rt

		extension.AttachHooks(reg)

		paths := scriptPaths(cfg)
		bar := progress.New("Loading scripts", len(paths))
		for _, p := range paths {
			bar.Step(filepath.Base(p))
			if err := rt.LoadFile(p); err != nil {
				bar.Done()
				initErr = fmt.Errorf("load script %s: %w", p, err)
				return
			}
		}
		bar.Done()

		extContext = extension.NewContext(rt, cfg)
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}

		if err := rt.DoAction(extension.ActionInit, rt.Loaded()); err != nil {
			initErr = fmt.Errorf("%s: %w", extension.ActionInit, err)
		}
	})
	return initErr
}

// shutdown fires wphooks_shutdown and closes the runtime, if one was built.
func shutdown(cmdName string) error {
	if extRuntime == nil {
		return nil
	}
	var err error
	if initErr == nil {
		err = extRuntime.DoAction(extension.ActionShutdown, cmdName)
	}
	return errors.Join(err, extRuntime.Close())
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noScriptCommands = buildNoScriptCommands()
	})
}
