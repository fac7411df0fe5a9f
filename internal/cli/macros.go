package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comradekingu/po4a/internal/ui/pretty"
	"github.com/comradekingu/po4a/pkg/config"
	"github.com/comradekingu/po4a/pkg/nroff"
)

func newMacrosCommand(rf *rootFlags) *cobra.Command {
	var cfg config.Config
	var mdoc bool

	cmd := &cobra.Command{
		Use:   "macros",
		Short: "List the macro dispatch table",
		Long: `List every macro the parser understands and how each one is
handled, including the amendments from configuration and flags.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMacros(rf, &cfg, mdoc)
		},
	}

	addParserFlags(cmd, &cfg)
	cmd.Flags().BoolVar(&mdoc, "mdoc", false, "include the mdoc(7) dialect table")

	return cmd
}

func runMacros(rf *rootFlags, cfg *config.Config, mdoc bool) error {
	final, err := resolveConfig(rf, cfg)
	if err != nil {
		return err
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(rf.color, os.Stdout))
	for _, m := range nroff.MacroList(final.ParserOptions(), mdoc) {
		fmt.Printf("%s %s\n",
			styles.MacroName.Render(fmt.Sprintf(".%-4s", m.Name)),
			styles.HandlerKind.Render(m.Kind))
	}
	return nil
}
