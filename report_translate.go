package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
	"github.com/everafter-app/everafter/src/go/i18n-report/internal/scan"
)

type translatePair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func runTranslate(args []string) error {
	fs := pflag.NewFlagSet("translate", pflag.ExitOnError)
	code := fs.String("locale", "", "Target locale code (required)")
	format := fs.String("format", "text", "Output format: text, json, yaml")
	batch := fs.Int("batch", 0, "Batch number (1-indexed); requires --batches")
	batches := fs.Int("batches", 0, "Total number of batches")
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
	return reportTranslate(a, target, *format, *batch, *batches)
}

// reportTranslate outputs key=value pairs, with the primary text as
// value, for keys that the locale lacks or still holds the primary text
// for and that the source code uses. Keys under a dynamic access prefix
// count as used.
func reportTranslate(a *app, code, format string, batch, batches int) error {
	primary, err := a.loadLocale(a.cfg.Primary)
	if err != nil {
		return err
	}
	target, err := a.loadLocale(code)
	if err != nil {
		return err
	}
	keys := locale.Flatten(primary.Tree)
	res, err := a.scanUsage(keys)
	if err != nil {
		return err
	}
	dynamics, err := scan.ScanDynamic(a.fs, a.cfg.SourceRoot(), a.cfg.ScanOptions(a.log))
	if err != nil {
		return err
	}
	var prefixes []string
	for _, d := range dynamics {
		if d.Prefix != "" {
			prefixes = append(prefixes, d.Prefix+".")
		}
	}

	primaryValues := locale.Values(primary.Tree)
	targetValues := locale.Values(target.Tree)
	var pairs []translatePair
	for _, k := range keys.Keys() {
		pv := primaryValues[k]
		if tv, ok := targetValues[k]; ok && !locale.Equal(pv, tv) {
			continue
		}
		if !res.Usage.IsUsed(k) && !hasAnyPrefix(k, prefixes) {
			continue
		}
		pairs = append(pairs, translatePair{k, locale.LeafText(pv)})
	}

	// Apply batch slicing if requested.
	if batches > 0 {
		if batch < 1 || batch > batches {
			return fmt.Errorf("--batch must be between 1 and %d", batches)
		}
		total := len(pairs)
		size := (total + batches - 1) / batches
		start := (batch - 1) * size
		end := start + size
		if start > total {
			start = total
		}
		if end > total {
			end = total
		}
		pairs = pairs[start:end]
	}

	if format != "text" {
		if pairs == nil {
			pairs = []translatePair{}
		}
		return a.encode(pairs, format)
	}

	if len(pairs) == 0 {
		fmt.Fprintf(a.stdout, "No used keys to translate in %s.\n", localeLabel(code))
		return nil
	}

	label := fmt.Sprintf("Found %d used keys to translate in %s", len(pairs), localeLabel(code))
	if batches > 0 {
		label += fmt.Sprintf(" (batch %d of %d)", batch, batches)
	}
	fmt.Fprintf(a.stdout, "%s:\n\n", label)
	for _, p := range pairs {
		fmt.Fprintf(a.stdout, "%s=%s\n", p.Key, p.Value)
	}
	return nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
