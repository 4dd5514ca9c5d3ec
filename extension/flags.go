// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "base-url" -> FlagBaseURL).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagActions  = "actions"  // Restrict listing to actions
	FlagAll      = "all"      // Include every project
	FlagDiff     = "diff"     // Show diff output
	FlagDryRun   = "dry-run"  // Preview without changing anything
	FlagFailed   = "failed"   // Only failed operations
	FlagFilters  = "filters"  // Restrict listing to filters
	FlagHead     = "head"     // Queue in the head instead of the footer
	FlagJSON     = "json"     // Decode values and arguments as JSON
	FlagLocal    = "local"    // Use local scope
	FlagLong     = "long"     // Long format output
	FlagMinified = "minified" // Use the minified script build

	// String flags

	FlagBaseURL   = "base-url"   // Plugin root URL
	FlagFile      = "file"       // Local copy of the registry script
	FlagOlderThan = "older-than" // Retention period
	FlagSince     = "since"      // Lower time bound
	FlagSource    = "source"     // Audit source prefix
	FlagTag       = "tag"        // Hook tag filter
	FlagVer       = "ver"        // Script version token

	// Int flags

	FlagLimit = "limit" // Maximum entries
)
