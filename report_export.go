package main

import (
	"bytes"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/config"
	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

var exportFormats = []string{"yaml", "json", "toml"}

func runExport(args []string) error {
	fs := pflag.NewFlagSet("export", pflag.ExitOnError)
	code := fs.String("locale", "", "Locale code (default: the primary locale)")
	format := fs.String("format", "yaml", "Output format: yaml, json, toml")
	common := addCommonFlags(fs)
	fs.Parse(args)

	if err := checkFormat(*format, exportFormats); err != nil {
		return err
	}
	a, err := newApp(common)
	if err != nil {
		return err
	}
	target := *code
	if target == "" {
		target = a.cfg.Primary
	}
	if err := config.ValidateLocale(target); err != nil {
		return err
	}
	return reportExport(a, target, *format)
}

// reportExport dumps a locale tree. The toml format is a flat go-i18n
// message file.
func reportExport(a *app, code, format string) error {
	src, err := a.loadLocale(code)
	if err != nil {
		return err
	}
	switch format {
	case "json":
		return locale.EncodeJSON(a.stdout, src.Tree)
	case "toml":
		var buf bytes.Buffer
		if err := locale.EncodeTOML(&buf, src.Tree); err != nil {
			return err
		}
		want := len(locale.Messages(src.Tree))
		if err := checkMessageFile(code, buf.Bytes(), want); err != nil {
			return err
		}
		a.log.Debug().Int("messages", want).Str("locale", code).Msg("exported message file")
		_, err = a.stdout.Write(buf.Bytes())
		return err
	default:
		return locale.EncodeYAML(a.stdout, src.Tree)
	}
}

// checkMessageFile loads data into a go-i18n bundle and checks that it
// yields one message per ID. A top-level key named like a plural form
// ("one", "other", ...) makes go-i18n read the whole file as one message.
func checkMessageFile(code string, data []byte, want int) error {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	mf, err := bundle.ParseMessageFileBytes(data, code+".toml")
	if err != nil {
		return fmt.Errorf("exported %s messages do not load: %w", code, err)
	}
	if len(mf.Messages) != want {
		return fmt.Errorf("exported %s messages load as %d messages, want %d", code, len(mf.Messages), want)
	}
	return nil
}
