/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions access these via exported accessor functions rather than
// directly accessing the variables.
//
// Design: Flags are package-level variables bound to the root command.
// Accessors let extensions read them without coupling to cobra internals.
// The JSON() helper simplifies output format detection across all commands.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var validOutputFormats = []string{"json"}

var (
	output  string
	scripts []string
	dir     string
	verbose bool
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Scripts returns the scripts named with --script, in flag order.
func Scripts() []string {
	s := make([]string, len(scripts))
	copy(s, scripts)
	return s
}

// Dir returns the project directory flag value.
func Dir() string { return dir }

// Verbose returns true if diagnostic logging is requested.
func Verbose() bool { return verbose }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// Colour returns true when output goes to a terminal and may carry ANSI
// colour.
func Colour() bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringArrayVarP(&scripts, "script", "s", nil, "Hook script to load (repeatable, loaded after scripts.paths)")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Project directory (local config, .env and relative script paths resolve here)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log script loading to stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagFilename("script", "lua")
}
