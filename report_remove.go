package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
	"github.com/everafter-app/everafter/src/go/i18n-report/internal/prune"
)

func runRemove(args []string) error {
	fs := pflag.NewFlagSet("remove", pflag.ExitOnError)
	stale := fs.Bool("stale", false, "Remove stale keys from all locale files (keys not in the primary locale)")
	common := addCommonFlags(fs)
	fs.Parse(args)

	a, err := newApp(common)
	if err != nil {
		return err
	}
	if *stale {
		return removeStaleKeys(a)
	}

	// Read keys to remove from stdin.
	keys, err := readKeys(a.stdin)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("no valid keys provided on stdin")
	}
	return removeKeys(a, keys)
}

// removeKeys removes keys from every locale file and regenerates the
// type file when the primary locale changed. Sections left empty are
// kept.
func removeKeys(a *app, keys []string) error {
	codes, err := a.cfg.Locales(a.fs)
	if err != nil {
		return err
	}
	for _, code := range codes {
		if err := removeFromLocale(a, code, keys); err != nil {
			return err
		}
	}
	return nil
}

// removeStaleKeys removes keys from each secondary locale file that do
// not exist in the primary locale.
func removeStaleKeys(a *app) error {
	primary, err := a.loadLocale(a.cfg.Primary)
	if err != nil {
		return err
	}
	primaryKeys := locale.Flatten(primary.Tree)

	codes, err := a.cfg.Locales(a.fs)
	if err != nil {
		return err
	}
	for _, code := range codes {
		if code == a.cfg.Primary {
			continue
		}
		src, err := a.loadLocale(code)
		if err != nil {
			return err
		}
		var stale []string
		for _, k := range locale.Flatten(src.Tree).Keys() {
			if !primaryKeys.Contains(k) {
				stale = append(stale, k)
			}
		}
		if len(stale) == 0 {
			continue
		}
		if err := removeFromLocale(a, code, stale); err != nil {
			return err
		}
	}
	return nil
}

func removeFromLocale(a *app, code string, keys []string) error {
	src, err := a.loadLocale(code)
	if err != nil {
		return err
	}
	res := prune.Prune(src.Tree, keys, a.log)
	if len(res.Removed) == 0 {
		return nil
	}
	path := a.cfg.LocalePath(code)
	if err := locale.Write(a.fs, path, src, a.cfg.TypesImport); err != nil {
		return err
	}
	a.log.Info().Int("removed", len(res.Removed)).Str("file", a.rel(path)).Msg("removed keys")

	if code != a.cfg.Primary {
		return nil
	}
	// The primary locale defines the shape of the type file.
	changed, err := prune.WriteTypes(a.fs, a.cfg.TypesPath(), src.Tree, src.TypeName)
	if err != nil {
		return err
	}
	if changed {
		a.log.Info().Str("file", a.rel(a.cfg.TypesPath())).Msg("regenerated types")
	}
	return nil
}

// readKeys reads dotted translation keys, one per line. Lines that are
// not valid dotted keys are skipped, so the output of `unused` or `stale`
// can be piped directly.
func readKeys(r io.Reader) ([]string, error) {
	var keys []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key := strings.TrimSpace(scanner.Text())
		if isValidDottedKey(key) {
			keys = append(keys, key)
		}
	}
	return keys, scanner.Err()
}
