// Package validate provides input validation at wphooks' user-facing
// boundaries: command-line arguments, MCP tool parameters and config values.
//
// The hook registry itself accepts any tag; these checks reject only input
// that cannot have been meant, such as an empty tag typed on the command
// line or a base URL carrying a query string.
//
// All validation errors wrap one of the sentinel errors defined in
// errors.go. Use errors.Is() for checking:
//
//	if errors.Is(err, validate.ErrInvalidTag) {
//	    // handle invalid tag
//	}
package validate
