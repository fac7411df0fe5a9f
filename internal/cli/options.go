package cli

import (
	"github.com/spf13/cobra"

	"github.com/comradekingu/po4a/internal/configloader"
	"github.com/comradekingu/po4a/pkg/config"
)

// addParserFlags registers the macro table and parser options shared by
// extract and translate.
func addParserFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	f.StringVar(&cfg.GroffCode, "groff-code", "",
		"policy for .de/.ie/.if blocks: fail, verbatim or translate")
	f.StringVar(&cfg.Charset, "charset", "", "input charset")
	f.StringSliceVar(&cfg.Untranslated, "untranslated", nil,
		"macros to pass through verbatim")
	f.StringSliceVar(&cfg.NoArg, "noarg", nil,
		"macros passed verbatim that take no argument")
	f.StringSliceVar(&cfg.TranslateJoined, "translate-joined", nil,
		"macros whose argument string is translated as one unit")
	f.StringSliceVar(&cfg.TranslateEach, "translate-each", nil,
		"macros whose arguments are translated independently")
	f.StringSliceVar(&cfg.Inline, "inline", nil,
		"macros embedded into the surrounding paragraph")
	f.StringSliceVar(&cfg.NoWrap, "no-wrap", nil,
		"additional begin:end no-wrap macro pairs")
}

// resolveConfig merges CLI flags with discovered configuration.
func resolveConfig(rf *rootFlags, cfg *config.Config) (*config.Config, error) {
	cfg.Verbose = rf.verbose
	cfg.Debug = rf.debug

	res, err := configloader.Load(configloader.LoadOptions{
		ExplicitPath: rf.config,
		CLIConfig:    cfg,
	})
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}
