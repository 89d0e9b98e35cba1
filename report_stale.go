package main

import (
	"github.com/spf13/pflag"
)

func runStale(args []string) error {
	fs := pflag.NewFlagSet("stale", pflag.ExitOnError)
	code := fs.String("locale", "", "Target locale code (required)")
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
	target, err := a.targetLocale(*code)
	if err != nil {
		return err
	}
	return reportStale(a, target, *format)
}

func reportStale(a *app, code, format string) error {
	_, stale, err := compareLocale(a, code)
	if err != nil {
		return err
	}
	return a.outputStrings(stale, format, "stale keys in "+localeLabel(code))
}
