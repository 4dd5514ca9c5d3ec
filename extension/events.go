// events.go defines the hook tags wphooks itself fires.
//
// Separated from extension.go so scripts and extensions have one place to
// find the lifecycle tags they can hook into.
//
// Design: Lifecycle tags are ordinary actions on the shared registry.
// Callbacks observe; they cannot veto. A failing callback on wphooks_init
// fails the command, the same as a failing script load.

package extension

// Lifecycle actions.
const (
	// ActionInit fires once all scripts are loaded and extensions are
	// initialised. Args: the names of the loaded scripts ([]string).
	ActionInit = "wphooks_init"

	// ActionShutdown fires after the command finishes, before the runtime
	// closes. Args: the command name.
	ActionShutdown = "wphooks_shutdown"
)

// Filters applied to command output.
const (
	// FilterApplyResult filters the value "wphooks apply" prints, after the
	// requested tag has run. Args: the tag.
	FilterApplyResult = "wphooks_apply_result"
)
