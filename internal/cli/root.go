// Package cli provides the Cobra command structure for po4a-man.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/comradekingu/po4a/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	debug   []string
	verbose bool
	config  string
	color   string
}

// NewRootCommand creates the root po4a-man command with all
// subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "po4a-man",
		Short: "Translate man pages through a message catalog",
		Long: `po4a-man converts nroff/man source documents into translatable
message catalogs and back.

The extract command pulls every translatable paragraph out of a man
page into a PO template, presenting font changes and inline macros as
compact markup a translator can work with. The translate command
re-injects a translated catalog into a faithful nroff reproduction of
the original document.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if len(flags.debug) > 0 {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringSliceVar(&flags.debug, "debug", nil,
		"enable debug streams: splitargs, pretrans, postrans, fonts")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "increase diagnostic chatter")
	pf.StringVar(&flags.config, "config", "", "path to config file")
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(newExtractCommand(flags))
	rootCmd.AddCommand(newTranslateCommand(flags))
	rootCmd.AddCommand(newMacrosCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
