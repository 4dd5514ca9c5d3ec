// context.go defines the Context interface for extension access to wphooks
// internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context gives extensions the registry, the script runtime and the
// configuration, and nothing else.
//
// Design: Context is an interface so extensions can be tested with a fake.
// Extensions receive it during Init(), not at construction, because they
// register before any script is loaded.

package extension

import (
	"github.com/jpl-au/wphooks/hook"
	"github.com/jpl-au/wphooks/internal/config"
	"github.com/jpl-au/wphooks/internal/script"
)

// Context provides extensions controlled access to wphooks internals.
type Context interface {
	// Registry returns the hook registry shared by scripts and extensions.
	Registry() *hook.Registry

	// Runtime returns the script runtime. Dispatch that may reach script
	// callbacks must go through it.
	Runtime() *script.Runtime

	// Config returns user configuration.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	rt  *script.Runtime
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(rt *script.Runtime, cfg *config.Config) Context {
	return &extContext{rt: rt, cfg: cfg}
}

func (c *extContext) Registry() *hook.Registry { return c.rt.Registry() }
func (c *extContext) Runtime() *script.Runtime { return c.rt }
func (c *extContext) Config() *config.Config   { return c.cfg }
