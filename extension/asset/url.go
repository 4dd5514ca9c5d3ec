// url.go implements "wphooks asset url".

package asset

import (
	"fmt"

	"github.com/jpl-au/wphooks/cmd"
	"github.com/jpl-au/wphooks/internal/asset"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/spf13/cobra"
)

func newURLCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "url",
		Short: "Print the registry script URL",
		Long: `Print the URL of the registry script. Hooks are not applied; use
"wphooks asset enqueue" to see the filtered tag.

Examples:
  wphooks asset url --base-url https://example.com/wp-content/plugins/site
  wphooks asset url --minified=false`,
		Args: cobra.NoArgs,
		RunE: runURL,
	}
	addURLFlags(c.Flags())
	return c
}

func runURL(c *cobra.Command, _ []string) error {
	opts, err := options(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	url := asset.ScriptURL(opts.BaseURL, opts.Minified)

	log.Event("asset:url", "url").Detail("url", url).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"handle": asset.Handle, "url": url, "minified": opts.Minified})
	}
	fmt.Fprintln(cmd.Out(), url)
	return nil
}
