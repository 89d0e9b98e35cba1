package main

import (
	"github.com/spf13/pflag"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

func runMissing(args []string) error {
	fs := pflag.NewFlagSet("missing", pflag.ExitOnError)
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
	return reportMissing(a, target, *format)
}

func reportMissing(a *app, code, format string) error {
	missing, _, err := compareLocale(a, code)
	if err != nil {
		return err
	}
	return a.outputStrings(missing, format, "missing keys in "+localeLabel(code))
}

// compareLocale returns the primary keys absent from the locale and the
// locale keys absent from the primary, each in file order.
func compareLocale(a *app, code string) (missing, stale []string, err error) {
	primary, err := a.loadLocale(a.cfg.Primary)
	if err != nil {
		return nil, nil, err
	}
	target, err := a.loadLocale(code)
	if err != nil {
		return nil, nil, err
	}
	primaryKeys := locale.Flatten(primary.Tree)
	targetKeys := locale.Flatten(target.Tree)
	for _, k := range primaryKeys.Keys() {
		if !targetKeys.Contains(k) {
			missing = append(missing, k)
		}
	}
	for _, k := range targetKeys.Keys() {
		if !primaryKeys.Contains(k) {
			stale = append(stale, k)
		}
	}
	return missing, stale, nil
}
