package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/config"
	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
	"github.com/everafter-app/everafter/src/go/i18n-report/internal/scan"
)

// loadLocale reads and parses the locale file for code.
func (a *app) loadLocale(code string) (*locale.Source, error) {
	path := a.cfg.LocalePath(code)
	src, err := locale.Load(a.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("locale file %s not found", a.rel(path))
	}
	return src, err
}

// loadPrimaryLenient loads the primary locale for read-only reports. A
// syntax error in the object literal is logged and treated as an empty
// tree so the report still runs; a missing file or missing export is
// fatal.
func (a *app) loadPrimaryLenient() (*locale.Source, error) {
	src, err := a.loadLocale(a.cfg.Primary)
	var perr *locale.ParseError
	if errors.As(err, &perr) {
		a.log.Warn().Err(err).Msg("could not parse primary locale, treating it as empty")
		return &locale.Source{Name: a.cfg.Primary, Tree: locale.NewMapping()}, nil
	}
	return src, err
}

// scanUsage scans the source tree for references to keys.
func (a *app) scanUsage(keys *locale.KeySpace) (*scan.Result, error) {
	res, err := scan.Scan(a.fs, a.cfg.SourceRoot(), keys, a.cfg.ScanOptions(a.log))
	if err != nil {
		return nil, err
	}
	a.log.Debug().Int("files", res.Files).Int("keys", keys.Len()).Msg("scanned source tree")
	return res, nil
}

// targetLocale validates a --locale value for commands comparing a locale
// against the primary one.
func (a *app) targetLocale(code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("--locale is required")
	}
	if err := config.ValidateLocale(code); err != nil {
		return "", err
	}
	if code == a.cfg.Primary {
		return "", fmt.Errorf("--locale must differ from the primary locale %q", code)
	}
	return code, nil
}

// localeLabel renders a code with its English name, e.g. "es (Spanish)".
func localeLabel(code string) string {
	name := config.LanguageName(code)
	if name == code {
		return code
	}
	return code + " (" + name + ")"
}

// constName derives the exported constant name for a new locale file,
// e.g. "ptBR" for "pt-BR".
func constName(code string) string {
	return strings.NewReplacer("-", "", "_", "").Replace(code)
}

// isValidDottedKey returns true if s looks like a dotted translation key
// (e.g., "common.save", "invitation.details.venue").
func isValidDottedKey(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
		for _, c := range part {
			if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-') {
				return false
			}
		}
	}
	return true
}

// stripYAMLQuotes removes outer YAML quotes from a value string.
func stripYAMLQuotes(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		inner := s[1 : len(s)-1]
		return strings.ReplaceAll(inner, "''", "'")
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner := s[1 : len(s)-1]
		inner = strings.ReplaceAll(inner, `\"`, `"`)
		inner = strings.ReplaceAll(inner, `\\`, `\`)
		return inner
	}
	return s
}
