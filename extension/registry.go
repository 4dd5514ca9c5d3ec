// registry.go implements the extension registration system.
//
// Separated from extension.go to isolate the global registry state.
// Extensions self-register during init(), before main() runs.
//
// Design: Duplicate names panic, following database/sql.Register. Two
// extensions with one name is a build mistake, not a runtime condition.
// Registration order is kept so commands, Go hook callbacks and MCP tools
// are attached in the same order on every run.

package extension

import (
	"sync"

	"github.com/jpl-au/wphooks/hook"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string // registration order
)

// Register adds an extension to the registry. Called from init() functions.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}

	registry[name] = e
	order = append(order, name)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// AttachHooks lets every Hooker extension register its Go callbacks on reg,
// in registration order.
func AttachHooks(reg *hook.Registry) {
	for _, ext := range All() {
		if h, ok := ext.(Hooker); ok {
			h.Hooks(reg)
		}
	}
}

// NoScriptCommands collects the commands declared by Scriptless extensions.
func NoScriptCommands() map[string]bool {
	cmds := make(map[string]bool)
	for _, ext := range All() {
		if s, ok := ext.(Scriptless); ok {
			for _, name := range s.NoScriptCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}
