/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE loads hook scripts lazily. Only commands that
// dispatch hooks trigger script loading, so config, guide and version keep
// working when a configured script is broken. The noScriptCommands map
// controls which commands skip it.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/jpl-au/wphooks/hook"
	"github.com/jpl-au/wphooks/internal/config"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/jpl-au/wphooks/internal/repo"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wphooks",
	Short: "WordPress-style actions and filters for scripts and tooling",
	Long: `Run WordPress-style actions and filters outside the browser.

Hook scripts written in Lua register callbacks with wpbones_add_filter and
wpbones_add_action; wphooks dispatches them from the command line or an MCP
server, and delivers the browser-side registry script to pages.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if dir != "" {
			if err := os.Chdir(dir); err != nil {
				return fmt.Errorf("change to project directory: %w", err)
			}
		}

		// .env is optional; a missing file is not an error.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load .env: %w", err)
		}

		log.SetProject(repo.Root(config.Home()))

		cmdName := topLevelCmdName(cmd)
		if noScriptCommands[cmdName] {
			return nil
		}

		if err := initExtensions(cmdName); err != nil {
			if JSON() {
				_ = PrintJSON(map[string]string{"error": err.Error()})
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}
			return fmt.Errorf("initialise extensions: %w", err)
		}
		cmd.SetContext(hook.WithRegistry(cmd.Context(), extRuntime.Registry()))
		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "wphooks apply greet hello", returns "apply".
// For "wphooks asset url", returns "asset".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions, executes the command, fires
// the shutdown action and closes the script runtime. Exit code 1 indicates
// error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	registerExtensions()
	ran, err := rootCmd.ExecuteC()

	name := ""
	if ran != nil {
		name = topLevelCmdName(ran)
	}
	if closeErr := shutdown(name); closeErr != nil {
		fmt.Fprintf(os.Stderr, "warning: shutdown: %v\n", closeErr)
	}

	if err != nil {
		log.Close()
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
