// apply.go implements the "wphooks apply" command for running filter chains.
//
// Separated from hooks.go to isolate value parsing and result rendering.
//
// Design: Values are plain strings unless --json is given, so the common
// case of filtering text needs no quoting. The printed result passes
// through wphooks_apply_result after the requested tag, letting scripts
// post-process every apply without touching the tag itself.

package hooks

import (
	"fmt"

	"github.com/jpl-au/wphooks/cmd"
	"github.com/jpl-au/wphooks/extension"
	"github.com/jpl-au/wphooks/hook"
	"github.com/jpl-au/wphooks/internal/diff"
	"github.com/jpl-au/wphooks/internal/format"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/jpl-au/wphooks/internal/validate"
	"github.com/spf13/cobra"
)

func (e *Extension) newApplyCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "apply <tag> <value> [args...]",
		Short: "Run a value through a filter chain",
		Long: `Run a value through every filter registered for tag, in priority order,
and print the result. Extra arguments are passed to every callback.
A tag with no filters prints the value unchanged.

Examples:
  wphooks -s greet.lua apply greet hello
  wphooks apply price 40 2 --json          # numbers, not strings
  wphooks apply title "Hello" --diff       # show what the chain changed`,
		Args: cobra.MinimumNArgs(2),
		RunE: e.runApply,
	}
	c.Flags().Bool(extension.FlagJSON, false, "Decode value and args as JSON")
	c.Flags().Bool(extension.FlagDiff, false, "Show a diff of input and result")
	return c
}

func (e *Extension) runApply(c *cobra.Command, args []string) error {
	asJSON, _ := c.Flags().GetBool(extension.FlagJSON)
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)
	tag := args[0]
	if err := validate.Tag(tag); err != nil {
		return cmd.PrintJSONError(err)
	}

	value, err := format.ParseValue(args[1], asJSON)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	extra, err := format.ParseValues(args[2:], asJSON)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	callbacks := e.rt.Registry().Count(hook.NamespaceFilter, tag)
	result, err := e.rt.ApplyFilters(tag, value, extra...)
	if err == nil {
		result, err = e.rt.ApplyFilters(extension.FilterApplyResult, result, tag)
	}

	log.Event("hooks:apply", "filter").
		Tag(tag).
		Callbacks(callbacks).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("apply %q: %w", tag, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"tag":       tag,
			"input":     value,
			"result":    result,
			"callbacks": callbacks,
		})
	}

	if showDiff {
		r := diff.Compute(format.Value(value)+"\n", format.Value(result)+"\n", tag+" (input)", tag+" (filtered)")
		if !r.Changed() {
			fmt.Fprintf(cmd.Out(), "%s: no change (%d callbacks)\n", tag, callbacks)
			return nil
		}
		fmt.Fprint(cmd.Out(), r.Format(cmd.Colour()))
		return nil
	}

	fmt.Fprintln(cmd.Out(), format.Value(result))
	return nil
}
