// Package all imports all core wphooks extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/wphooks/extension/asset"
	_ "github.com/jpl-au/wphooks/extension/core"
	_ "github.com/jpl-au/wphooks/extension/hooks"
)
