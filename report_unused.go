package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

func runUnused(args []string) error {
	fs := pflag.NewFlagSet("unused", pflag.ExitOnError)
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
	return reportUnused(a, *format)
}

// reportUnused prints the key counts followed by every primary key that
// no source file references.
func reportUnused(a *app, format string) error {
	src, err := a.loadPrimaryLenient()
	if err != nil {
		return err
	}
	res, err := a.scanUsage(locale.Flatten(src.Tree))
	if err != nil {
		return err
	}

	report := res.Usage.Report()
	if format != "text" {
		return a.encode(report, format)
	}
	printCounts(a, report.Total, report.Used, len(report.Unused))
	for _, k := range report.Unused {
		fmt.Fprintln(a.stdout, k)
	}
	return nil
}

func printCounts(a *app, total, used, unused int) {
	fmt.Fprintf(a.stdout, "Total keys: %d\n", total)
	fmt.Fprintf(a.stdout, "Used keys: %d\n", used)
	fmt.Fprintf(a.stdout, "Unused keys: %d\n", unused)
}
