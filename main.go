// i18n-report generates reports for translation maintenance of the
// TypeScript locale files under src/locales.
//
// Usage:
//
//	i18n-report <subcommand> [flags] [args]
//
// Run "i18n-report" with no arguments for a list of subcommands.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var subcommands = map[string]func([]string) error{
	"unused":       runUnused,
	"prune":        runPrune,
	"references":   runReferences,
	"missing":      runMissing,
	"stale":        runStale,
	"untranslated": runUntranslated,
	"translate":    runTranslate,
	"merge":        runMerge,
	"remove":       runRemove,
	"dynamic":      runDynamic,
	"hardcoded":    runHardcoded,
	"export":       runExport,
	"check":        runCheck,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage()
		return
	}

	run, ok := subcommands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: i18n-report <subcommand> [flags] [args]

Subcommands:
  unused        Keys in the primary locale not referenced in source code
  prune         Remove unused keys, realign the secondary locale, regenerate types
  references    Where each used key is referenced (file:line)
  missing       Keys in the primary locale absent from a target locale
  stale         Keys in a locale file absent from the primary locale
  untranslated  Keys of a locale still holding the primary (English) text
  translate     Used keys a locale lacks, with English values
  merge         Read flat translations and write them into a locale file
  remove        Remove keys from all locale files (stdin or --stale)
  dynamic       Computed key accesses the scanner cannot resolve
  hardcoded     Hardcoded English strings in TSX/JSX files (heuristic)
  export        Dump a locale as YAML, JSON or TOML
  check         Lint check: unused + stale + missing translations

Every subcommand accepts --root and --log-level.
Run "i18n-report <subcommand> -h" for subcommand-specific flags.`)
}
