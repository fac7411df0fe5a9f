package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/comradekingu/po4a/internal/logging"
	"github.com/comradekingu/po4a/internal/ui/pretty"
	"github.com/comradekingu/po4a/pkg/catalog"
	"github.com/comradekingu/po4a/pkg/config"
	"github.com/comradekingu/po4a/pkg/nroff"
	"github.com/comradekingu/po4a/pkg/runner"
)

type extractFlags struct {
	output string
	jobs   int
}

func newExtractCommand(rf *rootFlags) *cobra.Command {
	var cfg config.Config
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "Extract translatable messages into a PO template",
		Long: `Extract every translatable paragraph from the given man pages into
a PO template. Directories are searched for man page files; explicit
file arguments are always taken.

Examples:
  po4a-man extract man/foo.1 -o foo.pot
  po4a-man extract man/ -o package.pot
  po4a-man extract --groff-code verbatim man/bar.8`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), args, rf, &cfg, flags)
		},
	}

	addParserFlags(cmd, &cfg)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"write the template here instead of stdout")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0,
		"number of parallel workers (default: one per CPU)")

	return cmd
}

func runExtract(ctx context.Context, args []string, rf *rootFlags, cfg *config.Config, flags *extractFlags) error {
	logger := logging.Default()
	cfg.Jobs = flags.jobs

	final, err := resolveConfig(rf, cfg)
	if err != nil {
		return err
	}
	popts := final.ParserOptions()
	popts.Logger = logger

	var mu sync.Mutex
	extracted := map[string]*catalog.Extractor{}

	run := runner.New(func(_ context.Context, path string) runner.DocOutcome {
		f, err := os.Open(path)
		if err != nil {
			return runner.DocOutcome{Path: path, Error: err}
		}
		defer f.Close()

		// Fresh catalog and parser per document; nothing is shared
		// between workers.
		ext := catalog.NewExtractor()
		parser := nroff.NewParser(nroff.NewSource(f, path), ext, io.Discard, popts)
		perr := parser.Run()

		mu.Lock()
		extracted[path] = ext
		mu.Unlock()
		return runner.DocOutcome{Path: path, Messages: len(ext.Entries()), Error: perr}
	})

	result, err := run.Run(ctx, runner.Options{
		Paths:  args,
		Ignore: final.Ignore,
		Jobs:   final.Jobs,
	})
	if err != nil {
		return err
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(rf.color, os.Stderr))
	for _, d := range result.Docs {
		if d.Error != nil {
			fmt.Fprintln(os.Stderr, styles.FormatError(d.Path, d.Error))
		}
	}

	merged := catalog.NewExtractor()
	for _, d := range result.Docs {
		if d.Error == nil {
			merged.Merge(extracted[d.Path])
		}
	}

	if err := writeTemplate(merged, flags.output); err != nil {
		return err
	}

	if final.Verbose {
		fmt.Fprint(os.Stderr, styles.FormatSummary(result.Stats))
	}
	logger.Info("extraction finished",
		logging.FieldDocsProcessed, result.Stats.DocsProcessed,
		logging.FieldDocsFailed, result.Stats.DocsFailed,
		logging.FieldMessages, len(merged.Entries()))

	return result.FirstError()
}

func writeTemplate(merged *catalog.Extractor, output string) error {
	file := merged.File()
	if output == "" {
		return file.WriteTemplate(os.Stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := file.WriteTemplate(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", output, err)
	}
	return f.Close()
}
