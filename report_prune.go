package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
	"github.com/everafter-app/everafter/src/go/i18n-report/internal/prune"
)

func runPrune(args []string) error {
	fs := pflag.NewFlagSet("prune", pflag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "Report what would change without writing any file")
	common := addCommonFlags(fs)
	fs.Parse(args)

	a, err := newApp(common)
	if err != nil {
		return err
	}
	return reportPrune(a, *dryRun)
}

// reportPrune removes unused keys from the primary locale, rebuilds the
// secondary locale in the pruned shape and regenerates the type file.
// All three files are read before anything is scanned or written.
func reportPrune(a *app, dryRun bool) error {
	t := &prune.Transformer{
		Fs: a.fs,
		Paths: prune.Paths{
			Primary:   a.cfg.LocalePath(a.cfg.Primary),
			Secondary: a.cfg.LocalePath(a.cfg.Secondary),
			Types:     a.cfg.TypesPath(),
		},
		ImportPath: a.cfg.TypesImport,
		DryRun:     dryRun,
		Logger:     a.log,
	}
	in, err := t.Load()
	if err != nil {
		return err
	}

	res, err := a.scanUsage(locale.Flatten(in.Primary.Tree))
	if err != nil {
		return err
	}
	report := res.Usage.Report()
	printCounts(a, report.Total, report.Used, len(report.Unused))

	out, err := t.Apply(in, report.Unused)
	if err != nil {
		return err
	}
	if n := len(out.Prune.Skipped); n > 0 {
		a.log.Warn().Int("count", n).Strs("keys", out.Prune.Skipped).Msg("keys could not be navigated and were left alone")
	}

	var files []string
	for _, f := range out.Files {
		files = append(files, a.rel(f.Path))
	}
	if dryRun {
		fmt.Fprintf(a.stdout, "Dry run: would prune %d unused keys.\n", len(out.Prune.Removed))
		for _, f := range out.Files {
			if f.Changed {
				fmt.Fprintf(a.stdout, "  would update %s\n", a.rel(f.Path))
			}
		}
		return nil
	}
	fmt.Fprintf(a.stdout, "Pruned %d unused keys. Updated %s.\n", len(out.Prune.Removed), strings.Join(files, ", "))
	return nil
}
