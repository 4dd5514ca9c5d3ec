// do.go implements the "wphooks do" command for firing actions.

package hooks

import (
	"fmt"

	"github.com/jpl-au/wphooks/cmd"
	"github.com/jpl-au/wphooks/extension"
	"github.com/jpl-au/wphooks/hook"
	"github.com/jpl-au/wphooks/internal/format"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/jpl-au/wphooks/internal/validate"
	"github.com/spf13/cobra"
)

func (e *Extension) newDoCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "do <tag> [args...]",
		Short: "Fire an action",
		Long: `Call every action callback registered for tag, in priority order, with
the given arguments. Anything the callbacks print appears first, followed
by how many times the action has fired in this run.

Examples:
  wphooks -s site.lua do init
  wphooks do save_post 42 '{"title":"Hi"}' --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runDo,
	}
	c.Flags().Bool(extension.FlagJSON, false, "Decode args as JSON")
	return c
}

func (e *Extension) runDo(c *cobra.Command, args []string) error {
	asJSON, _ := c.Flags().GetBool(extension.FlagJSON)
	tag := args[0]
	if err := validate.Tag(tag); err != nil {
		return cmd.PrintJSONError(err)
	}

	extra, err := format.ParseValues(args[1:], asJSON)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	reg := e.rt.Registry()
	callbacks := reg.Count(hook.NamespaceAction, tag)
	err = e.rt.DoAction(tag, extra...)
	did := reg.DidAction(tag)

	log.Event("hooks:do", "action").
		Tag(tag).
		Callbacks(callbacks).
		Detail("did_action", did).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("do %q: %w", tag, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"tag":        tag,
			"callbacks":  callbacks,
			"did_action": did,
		})
	}
	fmt.Fprintf(cmd.Out(), "%s: %d callbacks, did_action %d\n", tag, callbacks, did)
	return nil
}
