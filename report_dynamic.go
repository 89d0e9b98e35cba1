package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
	"github.com/everafter-app/everafter/src/go/i18n-report/internal/scan"
)

func runDynamic(args []string) error {
	fs := pflag.NewFlagSet("dynamic", pflag.ExitOnError)
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
	return reportDynamic(a, *format)
}

type dynamicReportEntry struct {
	Pattern string   `json:"pattern" yaml:"pattern"`
	Source  string   `json:"source" yaml:"source"`
	Matches []string `json:"matches" yaml:"matches"`
}

// reportDynamic lists computed key accesses with the primary keys each
// one could reach. It is informational and does not affect usage.
func reportDynamic(a *app, format string) error {
	dynamics, err := scan.ScanDynamic(a.fs, a.cfg.SourceRoot(), a.cfg.ScanOptions(a.log))
	if err != nil {
		return err
	}
	src, err := a.loadPrimaryLenient()
	if err != nil {
		return err
	}
	keys := locale.Flatten(src.Tree).Keys()

	// Deduplicate patterns (same access from different lines).
	seen := make(map[string]bool)
	var unique []scan.DynamicAccess
	for _, d := range dynamics {
		if !seen[d.Pattern()] {
			seen[d.Pattern()] = true
			unique = append(unique, d)
		}
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].Pattern() < unique[j].Pattern()
	})

	entries := []dynamicReportEntry{}
	for _, d := range unique {
		matches := []string{}
		for _, k := range keys {
			if d.Prefix == "" || strings.HasPrefix(k, d.Prefix+".") {
				matches = append(matches, k)
			}
		}
		entries = append(entries, dynamicReportEntry{
			Pattern: d.Pattern(),
			Source:  fmt.Sprintf("%s:%d", d.File, d.Line),
			Matches: matches,
		})
	}

	if format != "text" {
		return a.encode(entries, format)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.stdout, "No dynamic key patterns found.")
		return nil
	}

	fmt.Fprintf(a.stdout, "Found %d dynamic key patterns:\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(a.stdout, "  %s\n", e.Pattern)
		fmt.Fprintf(a.stdout, "    source:  %s\n", e.Source)
		fmt.Fprintf(a.stdout, "    matches: %d keys\n", len(e.Matches))
		for _, k := range e.Matches {
			fmt.Fprintf(a.stdout, "      %s\n", k)
		}
		fmt.Fprintln(a.stdout)
	}
	return nil
}
