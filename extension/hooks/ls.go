// ls.go implements the "wphooks ls" command for listing registrations.
//
// Separated from hooks.go to isolate namespace selection and the two
// listing formats.
//
// Design: Without a tag, ls lists every tag with its callback count. With
// a tag, or with -l, it lists callbacks in dispatch order, including
// registrations that are not callable, so a listing explains why a
// callback never ran.

package hooks

import (
	"fmt"
	"io"

	"github.com/jpl-au/wphooks/cmd"
	"github.com/jpl-au/wphooks/extension"
	"github.com/jpl-au/wphooks/hook"
	"github.com/jpl-au/wphooks/internal/format"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/jpl-au/wphooks/internal/validate"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [tag]",
		Short: "List registered hooks",
		Long: `List registered action and filter tags with their callback counts.
Given a tag, list its callbacks in the order they run.

Examples:
  wphooks -s site.lua ls
  wphooks ls --filters
  wphooks ls the_title`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runLs,
	}
	c.Flags().BoolP(extension.FlagLong, "l", false, "List callbacks of every tag")
	c.Flags().Bool(extension.FlagFilters, false, "Only filters")
	c.Flags().Bool(extension.FlagActions, false, "Only actions")
	c.MarkFlagsMutuallyExclusive(extension.FlagFilters, extension.FlagActions)
	return c
}

// tagListing is the JSON form of one tag's callbacks.
type tagListing struct {
	Namespace hook.Namespace    `json:"namespace"`
	Tag       string            `json:"tag"`
	Entries   []format.EntryRow `json:"entries"`
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	long, _ := c.Flags().GetBool(extension.FlagLong)
	onlyFilters, _ := c.Flags().GetBool(extension.FlagFilters)
	onlyActions, _ := c.Flags().GetBool(extension.FlagActions)

	selector := ""
	switch {
	case onlyFilters:
		selector = "filter"
	case onlyActions:
		selector = "action"
	}
	if len(args) > 0 {
		if err := validate.Tag(args[0]); err != nil {
			return cmd.PrintJSONError(err)
		}
	}

	namespaces, err := format.Namespaces(selector)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	reg := e.rt.Registry()
	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	if len(args) == 0 && !long {
		rows := format.Summarise(reg, namespaces...)
		log.Event("hooks:ls", "list").Detail("count", len(rows)).Write(nil)
		if cmd.JSON() {
			if rows == nil {
				rows = []format.TagSummary{}
			}
			return cmd.PrintJSON(rows)
		}
		return format.Tags(w, rows)
	}

	listings := []tagListing{}
	for _, ns := range namespaces {
		tags := reg.Tags(ns)
		if len(args) > 0 {
			tags = []string{args[0]}
		}
		for _, tag := range tags {
			entries := reg.Entries(ns, tag)
			if len(entries) == 0 {
				continue
			}
			listings = append(listings, tagListing{Namespace: ns, Tag: tag, Entries: format.Rows(entries)})
			if err := format.Entries(w, ns, tag, entries); err != nil {
				return err
			}
		}
	}

	tag := ""
	if len(args) > 0 {
		tag = args[0]
	}
	log.Event("hooks:ls", "list").Tag(tag).Detail("count", len(listings)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(listings)
	}
	if len(args) > 0 && len(listings) == 0 {
		fmt.Fprintf(w, "no callbacks registered for %q\n", args[0])
	}
	return nil
}
