package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

// placeholder is a key of a secondary locale whose value is identical to
// the primary value, usually English text backfilled by prune.
type placeholder struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func runUntranslated(args []string) error {
	fs := pflag.NewFlagSet("untranslated", pflag.ExitOnError)
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
	return reportUntranslated(a, target, *format)
}

func reportUntranslated(a *app, code, format string) error {
	hits, err := findPlaceholders(a, code)
	if err != nil {
		return err
	}

	if format != "text" {
		if hits == nil {
			hits = []placeholder{}
		}
		return a.encode(hits, format)
	}

	if len(hits) == 0 {
		fmt.Fprintf(a.stdout, "No untranslated keys found in %s.\n", localeLabel(code))
		return nil
	}

	fmt.Fprintf(a.stdout, "Found %d keys in %s still holding the %s text:\n\n", len(hits), localeLabel(code), a.cfg.Primary)
	for _, h := range hits {
		fmt.Fprintf(a.stdout, "  %s\n    %s\n\n", h.Key, h.Value)
	}
	return nil
}

// findPlaceholders returns the keys present in both locales whose values
// are equal, in primary file order.
func findPlaceholders(a *app, code string) ([]placeholder, error) {
	primary, err := a.loadLocale(a.cfg.Primary)
	if err != nil {
		return nil, err
	}
	target, err := a.loadLocale(code)
	if err != nil {
		return nil, err
	}
	values := locale.Values(target.Tree)

	var hits []placeholder
	for _, k := range locale.Flatten(primary.Tree).Keys() {
		pv := locale.Lookup(primary.Tree, k)
		tv, ok := values[k]
		if !ok || !locale.Equal(pv, tv) || locale.LeafText(pv) == "" {
			continue
		}
		hits = append(hits, placeholder{Key: k, Value: locale.LeafText(pv)})
	}
	return hits, nil
}
