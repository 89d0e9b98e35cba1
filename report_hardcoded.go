package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/scan"
)

func runHardcoded(args []string) error {
	fs := pflag.NewFlagSet("hardcoded", pflag.ExitOnError)
	format := fs.String("format", "text", "Output format: text, json, yaml")
	common := addCommonFlags(fs)
	fs.Parse(args)

	if err := checkFormat(*format, reportFormats); err != nil {
		return err
	}
	a, err := newApp(common)
	if err != nil {
		return err
	}
	return reportHardcoded(a, *format)
}

func reportHardcoded(a *app, format string) error {
	hits, err := scan.ScanHardcoded(a.fs, a.cfg.SourceRoot(), a.cfg.ScanOptions(a.log))
	if err != nil {
		return err
	}

	if format != "text" {
		if hits == nil {
			hits = []scan.HardcodedText{}
		}
		return a.encode(hits, format)
	}

	if len(hits) == 0 {
		fmt.Fprintln(a.stdout, "No hardcoded strings found.")
		return nil
	}

	fmt.Fprintf(a.stdout, "Found %d potential hardcoded strings:\n\n", len(hits))
	for _, h := range hits {
		fmt.Fprintf(a.stdout, "  %s:%d\n    %s\n\n", h.File, h.Line, h.Context)
	}
	return nil
}
