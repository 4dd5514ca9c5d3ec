// options.go merges asset flags over configuration.
//
// Separated from the commands so url and enqueue resolve flags the same
// way. A flag only overrides config when it was given on the command line.

package asset

import (
	"github.com/jpl-au/wphooks/cmd"
	"github.com/jpl-au/wphooks/extension"
	"github.com/jpl-au/wphooks/internal/asset"
	"github.com/jpl-au/wphooks/internal/config"
	"github.com/jpl-au/wphooks/internal/validate"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addURLFlags registers the flags that shape the script URL.
func addURLFlags(fs *pflag.FlagSet) {
	fs.String(extension.FlagBaseURL, "", "Plugin root URL (default asset.base_url)")
	fs.Bool(extension.FlagMinified, true, "Use the .min.js build (default asset.minified)")
}

// options builds asset options from config, overridden by any flags set.
func options(c *cobra.Command) (asset.Options, error) {
	cfg := &config.Config{}
	if ctx := cmd.Context(); ctx != nil {
		cfg = ctx.Config()
	}
	opts := asset.Options{
		BaseURL:  cfg.Asset.BaseURL,
		Minified: cfg.Minified(),
		Version:  cfg.Asset.Version,
		File:     cfg.Asset.File,
	}

	fs := c.Flags()
	if fs.Changed(extension.FlagBaseURL) {
		opts.BaseURL, _ = fs.GetString(extension.FlagBaseURL)
		if err := validate.BaseURL(opts.BaseURL); err != nil {
			return opts, err
		}
	}
	if fs.Changed(extension.FlagMinified) {
		opts.Minified, _ = fs.GetBool(extension.FlagMinified)
	}
	if fs.Lookup(extension.FlagVer) != nil && fs.Changed(extension.FlagVer) {
		opts.Version, _ = fs.GetString(extension.FlagVer)
	}
	if fs.Lookup(extension.FlagFile) != nil && fs.Changed(extension.FlagFile) {
		opts.File, _ = fs.GetString(extension.FlagFile)
	}
	if fs.Lookup(extension.FlagHead) != nil {
		opts.Head, _ = fs.GetBool(extension.FlagHead)
	}
	return opts, nil
}
