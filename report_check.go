package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

func runCheck(args []string) error {
	fs := pflag.NewFlagSet("check", pflag.ExitOnError)
	code := fs.String("locale", "", "Target locale code (default: every secondary locale)")
	common := addCommonFlags(fs)
	fs.Parse(args)

	a, err := newApp(common)
	if err != nil {
		return err
	}
	var codes []string
	if *code != "" {
		target, err := a.targetLocale(*code)
		if err != nil {
			return err
		}
		codes = []string{target}
	} else {
		all, err := a.cfg.Locales(a.fs)
		if err != nil {
			return err
		}
		for _, c := range all {
			if c != a.cfg.Primary {
				codes = append(codes, c)
			}
		}
	}
	return reportCheck(a, codes)
}

// reportCheck counts unused keys and, per locale, stale and missing keys.
// Any non-zero count fails the check.
func reportCheck(a *app, codes []string) error {
	primary, err := a.loadLocale(a.cfg.Primary)
	if err != nil {
		return err
	}
	res, err := a.scanUsage(locale.Flatten(primary.Tree))
	if err != nil {
		return err
	}

	// Print results.
	passed := true
	printResult := func(label string, count int) {
		status := "OK"
		if count > 0 {
			status = "FAIL"
			passed = false
		}
		fmt.Fprintf(a.stdout, "  %-30s %3d  %s\n", label+":", count, status)
	}

	printResult("unused keys", len(res.Usage.Unused()))
	for _, code := range codes {
		missing, stale, err := compareLocale(a, code)
		if err != nil {
			return err
		}
		printResult("stale keys in "+code, len(stale))
		printResult("keys missing from "+code, len(missing))
	}

	if passed {
		fmt.Fprintln(a.stdout, "All checks passed.")
		return nil
	}
	return fmt.Errorf("checks failed")
}
