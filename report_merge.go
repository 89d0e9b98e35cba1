package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
	"github.com/everafter-app/everafter/src/go/i18n-report/internal/prune"
)

// mergeEntry holds a translated key-value pair.
type mergeEntry struct {
	key   string
	value string
}

func runMerge(args []string) error {
	fs := pflag.NewFlagSet("merge", pflag.ExitOnError)
	code := fs.String("locale", "", "Target locale code (required)")
	common := addCommonFlags(fs)
	fs.Parse(args)

	a, err := newApp(common)
	if err != nil {
		return err
	}
	target, err := a.targetLocale(*code)
	if err != nil {
		return err
	}
	return reportMerge(a, target, fs.Args())
}

// reportMerge reads flat key=value pairs and writes them into the locale
// file, creating it if needed. The result is realigned to the primary
// locale, so keys the primary does not have are dropped and keys still
// missing get the primary text. Input sources:
//   - File arguments: markdown with ```yaml fences, or raw flat text
//   - Stdin (when no files given): raw flat text
func reportMerge(a *app, code string, files []string) error {
	primary, err := a.loadLocale(a.cfg.Primary)
	if err != nil {
		return err
	}
	localePath := a.cfg.LocalePath(code)
	target, err := locale.Load(a.fs, localePath)
	if errors.Is(err, os.ErrNotExist) {
		a.log.Info().Str("file", a.rel(localePath)).Msg("creating locale file")
		target = &locale.Source{Name: constName(code), TypeName: primary.TypeName, Tree: locale.NewMapping()}
	} else if err != nil {
		return err
	}

	// Build input reader from file arguments or stdin.
	var inputReader io.Reader
	if len(files) > 0 {
		var combined strings.Builder
		for _, path := range files {
			data, err := afero.ReadFile(a.fs, path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			combined.WriteString(extractTranslationText(data))
		}
		inputReader = strings.NewReader(combined.String())
	} else {
		inputReader = a.stdin
	}

	newEntries, err := parseMergeInput(inputReader)
	if err != nil {
		return err
	}
	if len(newEntries) == 0 {
		return fmt.Errorf("no translation entries found in input")
	}

	primaryValues := locale.Values(primary.Tree)
	existing := locale.Flatten(target.Tree)
	added, ignored := 0, 0
	for _, e := range newEntries {
		pv, ok := primaryValues[e.key]
		if !ok {
			a.log.Warn().Str("key", e.key).Msg("ignoring key not present in the primary locale")
			ignored++
			continue
		}
		if !existing.Contains(e.key) {
			added++
		}
		setPath(target.Tree, e.key, mergeValue(pv, e.value))
	}
	target.Tree = prune.Align(primary.Tree, target.Tree)

	if err := locale.Write(a.fs, localePath, target, a.cfg.TypesImport); err != nil {
		return err
	}
	a.log.Info().
		Int("added", added).
		Int("ignored", ignored).
		Int("total", locale.Flatten(target.Tree).Len()).
		Str("file", a.rel(localePath)).
		Msg("merged translations")
	return nil
}

// mergeValue converts a flat value to the kind of the primary value.
// Array items are separated by " | ", as printed by translate.
func mergeValue(primary *yaml.Node, value string) *yaml.Node {
	if locale.IsArray(primary) {
		return locale.NewArray(strings.Split(value, " | ")...)
	}
	return locale.NewString(value)
}

// setPath stores value at a dotted path, creating missing sections. A
// path running through a non-section value replaces that value.
func setPath(tree *yaml.Node, path string, value *yaml.Node) {
	parts := strings.Split(path, ".")
	node := tree
	for _, part := range parts[:len(parts)-1] {
		child := locale.Child(node, part)
		if !locale.IsMapping(child) {
			child = locale.NewMapping()
			locale.Set(node, part, child)
		}
		node = child
	}
	locale.Set(node, parts[len(parts)-1], value)
}

// extractTranslationText extracts flat translation content from raw bytes:
// the content of ```yaml fences when present, otherwise the text itself.
func extractTranslationText(data []byte) string {
	content := string(data)
	if !strings.Contains(content, "```yaml") {
		return content
	}

	var extracted strings.Builder
	inFence := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "```yaml" {
			inFence = true
			continue
		}
		if trimmed == "```" && inFence {
			inFence = false
			continue
		}
		if inFence {
			extracted.WriteString(line)
			extracted.WriteString("\n")
		}
	}
	if extracted.Len() == 0 {
		return content
	}
	return extracted.String()
}

// parseMergeInput reads flat key=value or key: value lines from a reader.
// Blank lines, comments and lines without a dotted key are skipped.
func parseMergeInput(r io.Reader) ([]mergeEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var entries []mergeEntry
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" || trimmed == "---" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		// Parse key-value pair: try "key: value" then "key=value".
		var key, value string
		if idx := strings.Index(trimmed, ": "); idx > 0 {
			candidate := trimmed[:idx]
			if isValidDottedKey(candidate) {
				key = candidate
				value = stripYAMLQuotes(trimmed[idx+2:])
			}
		}
		if key == "" {
			if idx := strings.Index(trimmed, "="); idx > 0 {
				candidate := trimmed[:idx]
				if isValidDottedKey(candidate) {
					key = candidate
					value = trimmed[idx+1:]
				}
			}
		}
		if key == "" {
			continue
		}
		entries = append(entries, mergeEntry{key: key, value: value})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return entries, nil
}
