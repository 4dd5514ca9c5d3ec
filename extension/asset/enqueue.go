// enqueue.go implements "wphooks asset enqueue".
//
// Separated from url.go because enqueueing dispatches hooks: the URL passes
// through wphooks_script_src, the tag through wphooks_script_tag, and
// wphooks_enqueue_scripts fires once the script is queued. Scripts loaded
// with --script can rewrite any of these.

package asset

import (
	"bytes"
	"fmt"

	"github.com/jpl-au/wphooks/cmd"
	"github.com/jpl-au/wphooks/extension"
	"github.com/jpl-au/wphooks/hook"
	"github.com/jpl-au/wphooks/internal/asset"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/spf13/cobra"
)

func newEnqueueCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "enqueue",
		Short: "Queue the registry script and print its tag",
		Long: `Queue the registry script under the handle actions-and-filters and print
the resulting script tag. The version query parameter comes from --ver,
asset.version, or a hash of --file / asset.file, in that order.

Examples:
  wphooks asset enqueue --base-url /wp-content/plugins/site --ver 1.4.0
  wphooks -s cdn.lua asset enqueue --file public/js/actions-and-filters.min.js`,
		Args: cobra.NoArgs,
		RunE: runEnqueue,
	}
	addURLFlags(c.Flags())
	c.Flags().String(extension.FlagVer, "", "Version token (default asset.version)")
	c.Flags().String(extension.FlagFile, "", "Local copy of the script to hash (default asset.file)")
	c.Flags().Bool(extension.FlagHead, false, "Queue in the head instead of the footer")
	return c
}

func runEnqueue(c *cobra.Command, _ []string) error {
	opts, err := options(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	rt := cmd.Context().Runtime()
	reg := hook.FromContext(c.Context())
	if reg == nil {
		reg = rt.Registry()
	}

	doc := asset.NewDocument()
	var (
		handle string
		buf    bytes.Buffer
	)
	err = rt.Run(func() error {
		var err error
		handle, err = asset.EnqueueScripts(reg, doc, opts)
		if err != nil {
			return err
		}
		return doc.Render(&buf, !opts.Head, reg)
	})

	log.Event("asset:enqueue", "enqueue").
		Tag(asset.ActionEnqueueScripts).
		Callbacks(reg.Count(hook.NamespaceAction, asset.ActionEnqueueScripts)).
		Detail("handle", handle).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("enqueue: %w", err))
	}

	if cmd.JSON() {
		s, _ := doc.Queued(handle)
		return cmd.PrintJSON(map[string]any{
			"handle": handle,
			"script": s,
			"html":   buf.String(),
		})
	}
	fmt.Fprint(cmd.Out(), buf.String())
	return nil
}
