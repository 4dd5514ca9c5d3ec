// log.go implements the "wphooks log" command for reading the audit log.
//
// Separated from extension.go to isolate query flags and the prune
// subcommand.
//
// Design: log reads the same database every other command writes to, so it
// is scriptless: inspecting what a broken script did must not require
// loading it again. Listings default to the current project; pruning is
// global because the database is shared.

package core

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jpl-au/wphooks/cmd"
	"github.com/jpl-au/wphooks/extension"
	"github.com/jpl-au/wphooks/internal/duration"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/jpl-au/wphooks/internal/progress"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show the audit log",
		Long: `Show recorded hook operations for this project, newest first.

Examples:
  wphooks log                      # last 20 entries
  wphooks log --tag the_title      # one tag
  wphooks log --since 7d --failed  # failures this week
  wphooks log --source mcp: -n 0   # every MCP tool call
  wphooks log prune --older-than 3m`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().String(extension.FlagTag, "", "Only entries for this tag")
	c.Flags().String(extension.FlagSource, "", "Only sources with this prefix (e.g. hooks:, mcp:)")
	c.Flags().String(extension.FlagSince, "", "Only entries newer than this (12h, 7d, 4w, 3m)")
	c.Flags().Bool(extension.FlagFailed, false, "Only failed operations")
	c.Flags().BoolP(extension.FlagAll, "A", false, "Include every project")
	c.Flags().IntP(extension.FlagLimit, "n", 20, "Maximum entries (0 for all)")
	c.AddCommand(newLogPruneCmd())
	return c
}

func runLog(c *cobra.Command, _ []string) error {
	q := log.Query{}
	q.Tag, _ = c.Flags().GetString(extension.FlagTag)
	q.Source, _ = c.Flags().GetString(extension.FlagSource)
	q.FailedOnly, _ = c.Flags().GetBool(extension.FlagFailed)
	q.AllProjects, _ = c.Flags().GetBool(extension.FlagAll)
	q.Limit, _ = c.Flags().GetInt(extension.FlagLimit)

	if since, _ := c.Flags().GetString(extension.FlagSince); since != "" {
		cutoff, err := duration.Cutoff(time.Now(), since)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		q.Since = cutoff
	}

	records, err := log.Find(q)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("log: %w", err))
	}

	if cmd.JSON() {
		if records == nil {
			records = []log.Record{}
		}
		return cmd.PrintJSON(records)
	}
	return printRecords(cmd.Out(), records)
}

func printRecords(w io.Writer, records []log.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "no entries")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSOURCE\tACTION\tTAG\tCALLBACKS\tRESULT")
	for _, r := range records {
		result := "ok"
		if !r.Success {
			result = "error: " + r.Error
		}
		tag := r.Tag
		if tag == "" {
			tag = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			time.UnixMilli(r.Start).Format("2006-01-02 15:04:05"),
			r.Source, r.Action, tag, r.Callbacks, result)
	}
	return tw.Flush()
}

func newLogPruneCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "prune",
		Short: "Delete old audit log entries",
		Long: `Delete audit log entries older than a retention period, across all
projects. Use --dry-run to see how many would go.`,
		Args: cobra.NoArgs,
		RunE: runLogPrune,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Retention period (12h, 7d, 4w, 3m)")
	c.Flags().Bool(extension.FlagDryRun, false, "Count without deleting")
	_ = c.MarkFlagRequired(extension.FlagOlderThan)
	return c
}

func runLogPrune(c *cobra.Command, _ []string) error {
	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	cutoff, err := duration.Cutoff(time.Now(), olderThan)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	spin := progress.NewSpinner("Pruning audit log")
	if !dryRun {
		spin.Start()
	}
	n, err := log.Prune(cutoff, dryRun)
	spin.Stop()

	log.Event("core:log", "prune").
		Detail("older_than", olderThan).
		Detail("dry_run", dryRun).
		Detail("count", n).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("prune: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"count": n, "dry_run": dryRun})
	}
	if dryRun {
		fmt.Fprintf(cmd.Out(), "Would delete %d entries\n", n)
	} else {
		fmt.Fprintf(cmd.Out(), "Deleted %d entries\n", n)
	}
	return nil
}
