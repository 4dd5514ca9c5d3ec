// Package script runs Lua hook scripts against a hook.Registry.
//
// Scripts see the registry through the same global functions a page script
// would call in the browser: wpbones_add_filter, wpbones_add_action,
// wpbones_apply_filters and wpbones_do_action. Callbacks registered from Lua
// become ordinary hook callbacks, so Go code and scripts share one registry
// and one ordering.
//
// A Runtime owns a single gopher-lua state, which is not goroutine-safe.
// Go code that dispatches tags which may reach Lua callbacks must do so
// inside [Runtime.Run] (or the ApplyFilters/DoAction helpers built on it).
package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jpl-au/wphooks/hook"
	lua "github.com/yuin/gopher-lua"
)

// DefaultLoadTimeout bounds how long a script's top-level chunk may run.
// Dispatch through Run has no timeout.
const DefaultLoadTimeout = 5 * time.Second

// Runtime binds a sandboxed Lua state to a registry.
type Runtime struct {
	mu  sync.Mutex
	L   *lua.LState
	reg *hook.Registry

	log         *slog.Logger
	out         io.Writer
	loadTimeout time.Duration
	loaded      []string
	closed      bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) { rt.log = l }
}

// WithOutput redirects Lua's print. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(rt *Runtime) { rt.out = w }
}

// WithLoadTimeout bounds script loading. Zero disables the bound.
func WithLoadTimeout(d time.Duration) Option {
	return func(rt *Runtime) { rt.loadTimeout = d }
}

// New creates a Runtime whose scripts register into reg.
func New(reg *hook.Registry, opts ...Option) *Runtime {
	rt := &Runtime{
		reg:         reg,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:         os.Stdout,
		loadTimeout: DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(rt)
	}

	rt.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(rt.L)
	rt.installGlobals()
	return rt
}

// openSafeLibraries opens the libraries scripts need to transform values.
// io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Registry returns the registry scripts register into.
func (rt *Runtime) Registry() *hook.Registry { return rt.reg }

// Loaded returns the names of scripts loaded so far, in load order.
func (rt *Runtime) Loaded() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	out := make([]string, len(rt.loaded))
	copy(out, rt.loaded)
	return out
}

// LoadFile executes the script at path.
func (rt *Runtime) LoadFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return rt.LoadString(path, string(src))
}

// LoadString executes src as a script called name.
func (rt *Runtime) LoadString(name, src string) error {
	start := time.Now()
	err := rt.Run(func() error {
		fn, err := rt.L.Load(strings.NewReader(src), name)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSyntax, name, err)
		}

		if rt.loadTimeout > 0 {
			ctx, cancel := context.WithTimeout(context.Background(), rt.loadTimeout)
			defer cancel()
			rt.L.SetContext(ctx)
			defer rt.L.RemoveContext()
		}

		rt.L.Push(fn)
		if err := rt.L.PCall(0, lua.MultRet, nil); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrScript, name, err)
		}
		return nil
	})
	if err != nil {
		rt.log.Warn("script load failed", "script", name, "error", err)
		return err
	}

	rt.mu.Lock()
	rt.loaded = append(rt.loaded, name)
	rt.mu.Unlock()
	rt.log.Debug("script loaded", "script", name, "took", time.Since(start))
	return nil
}

// Run calls fn while holding the Lua state. Panics raised by hook callbacks
// inside fn, including Lua errors, are returned as errors.
func (rt *Runtime) Run(fn func() error) (err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.closed {
		return ErrClosed
	}

	top := rt.L.GetTop()
	defer func() {
		if r := recover(); r != nil {
			rt.L.SetTop(top)
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrCallback, e)
				return
			}
			err = fmt.Errorf("%w: %v", ErrCallback, r)
		}
	}()
	return fn()
}

// ApplyFilters dispatches a filter under Run and exports the result to plain
// Go values.
func (rt *Runtime) ApplyFilters(tag string, value any, args ...any) (any, error) {
	var out any
	err := rt.Run(func() error {
		out = Export(rt.reg.ApplyFilters(tag, value, args...))
		return nil
	})
	return out, err
}

// DoAction dispatches an action under Run.
func (rt *Runtime) DoAction(tag string, args ...any) error {
	return rt.Run(func() error {
		rt.reg.DoAction(tag, args...)
		return nil
	})
}

// Close releases the Lua state. Run, and everything built on it, returns
// ErrClosed afterwards.
func (rt *Runtime) Close() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.closed {
		return nil
	}
	rt.closed = true
	rt.L.Close()
	return nil
}
