// guide.go implements the "wphooks guide" command for documentation access.
//
// Separated from extension.go to isolate documentation rendering logic
// including terminal detection and glamour markdown formatting.
//
// Design: Guides are embedded in the binary via the guide package, so the
// documentation is available without external files. Terminal output gets
// glamour rendering; pipes and redirects get raw markdown.

package core

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/wphooks/cmd"
	"github.com/jpl-au/wphooks/guide"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the wphooks usage guide",
		Long: `Outputs the wphooks guide.

  wphooks guide           # main guide
  wphooks guide hooks     # priorities and dispatch order
  wphooks guide script    # the Lua script API`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"name": name, "content": content})
			}

			if cmd.Colour() {
				rendered, err := glamour.Render(content, "dark")
				if err == nil {
					fmt.Fprint(cmd.Out(), rendered)
					return nil
				}
			}

			fmt.Fprint(cmd.Out(), content)
			return nil
		},
	}
}
