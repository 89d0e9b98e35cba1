package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
	"github.com/everafter-app/everafter/src/go/i18n-report/internal/scan"
)

func runReferences(args []string) error {
	fs := pflag.NewFlagSet("references", pflag.ExitOnError)
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
	return reportReferences(a, *format)
}

func reportReferences(a *app, format string) error {
	src, err := a.loadPrimaryLenient()
	if err != nil {
		return err
	}
	keys := locale.Flatten(src.Tree)
	res, err := a.scanUsage(keys)
	if err != nil {
		return err
	}

	if format != "text" {
		refs := res.References
		if refs == nil {
			refs = map[string][]scan.Location{}
		}
		return a.encode(refs, format)
	}

	for _, k := range res.Usage.Used() {
		fmt.Fprintf(a.stdout, "%s:\n", k)
		for _, loc := range res.References[k] {
			fmt.Fprintf(a.stdout, "  %s:%d\n", loc.File, loc.Line)
		}
	}
	return nil
}
