// version.go implements "wphooks asset version".

package asset

import (
	"fmt"

	"github.com/jpl-au/wphooks/cmd"
	"github.com/jpl-au/wphooks/internal/asset"
	"github.com/jpl-au/wphooks/internal/log"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version <file>",
		Short: "Print the version token for a copy of the script",
		Long: `Hash a local copy of the registry script into the token used as its
?ver= query parameter, so the URL changes whenever the file does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			token, err := asset.VersionToken(args[0])
			log.Event("asset:version", "hash").Detail("file", args[0]).Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("version %s: %w", args[0], err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"file": args[0], "version": token})
			}
			fmt.Fprintln(cmd.Out(), token)
			return nil
		},
	}
}
