package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comradekingu/po4a/internal/logging"
	"github.com/comradekingu/po4a/pkg/catalog"
	"github.com/comradekingu/po4a/pkg/config"
	"github.com/comradekingu/po4a/pkg/fsutil"
	"github.com/comradekingu/po4a/pkg/nroff"
	"github.com/comradekingu/po4a/pkg/po"
)

type translateFlags struct {
	master string
	poFile string
	output string
}

func newTranslateCommand(rf *rootFlags) *cobra.Command {
	var cfg config.Config
	flags := &translateFlags{}

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Inject a translated catalog back into a man page",
		Long: `Parse the master man page, replace each translatable paragraph with
its translation from the PO file, and write a faithful nroff
reproduction. Untranslated messages keep the original text.

Examples:
  po4a-man translate -m man/foo.1 -p po/fr.po -o man/fr/foo.1
  po4a-man translate -m man/foo.1 -p po/fr.po        # to stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTranslate(cmd.Context(), rf, &cfg, flags)
		},
	}

	addParserFlags(cmd, &cfg)
	cmd.Flags().StringVarP(&flags.master, "master", "m", "", "master man page (required)")
	cmd.Flags().StringVarP(&flags.poFile, "po", "p", "", "translated PO file (required)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"write the translated page here instead of stdout")
	_ = cmd.MarkFlagRequired("master")
	_ = cmd.MarkFlagRequired("po")

	return cmd
}

func runTranslate(ctx context.Context, rf *rootFlags, cfg *config.Config, flags *translateFlags) error {
	logger := logging.Default()

	final, err := resolveConfig(rf, cfg)
	if err != nil {
		return err
	}
	popts := final.ParserOptions()
	popts.Logger = logger

	pf, err := os.Open(flags.poFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", flags.poFile, err)
	}
	poFile, err := po.Parse(pf)
	pf.Close()
	if err != nil {
		return err
	}

	master, err := os.Open(flags.master)
	if err != nil {
		return fmt.Errorf("open %s: %w", flags.master, err)
	}
	defer master.Close()

	translator := catalog.NewTranslator(poFile)
	var buf bytes.Buffer
	parser := nroff.NewParser(nroff.NewSource(master, flags.master), translator, &buf, popts)
	if err := parser.Run(); err != nil {
		return err
	}

	if flags.output == "" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else if err := fsutil.WriteAtomic(ctx, flags.output, buf.Bytes(), 0); err != nil {
		return err
	}

	logger.Info("document translated",
		logging.FieldPath, flags.master,
		logging.FieldTranslated, translator.Found,
		logging.FieldUntranslated, translator.Missing)
	if final.Verbose && translator.Missing > 0 {
		for _, id := range translator.MissingIDs() {
			logger.Warn("message has no translation", "msgid", id)
		}
	}
	return nil
}
