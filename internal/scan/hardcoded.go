package scan

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// HardcodedText is a user-facing string literal in JSX that bypasses the
// translation object.
type HardcodedText struct {
	Location `yaml:",inline"`

	Text    string `json:"text" yaml:"text"`
	Context string `json:"context" yaml:"context"`
}

// Patterns for hardcoded English in JSX. These are heuristics and miss
// strings built in code or passed through helpers.
var (
	// Attributes that should be bound to t.* instead of a literal.
	jsxAttrPattern = regexp.MustCompile(`(?:^|\s)(placeholder|title|alt|aria-label|label)="([^"{}]{3,})"`)
	// Text between a closing ">" and an opening "</" on the same line.
	jsxTextPattern = regexp.MustCompile(`>\s*([A-Z][A-Za-z0-9 ,.!?']{2,}?)\s*</`)
	// A line holding nothing but capitalised words, between tags.
	jsxBareTextPattern = regexp.MustCompile(`^[A-Z][A-Za-z]{2,}(?: [A-Za-z,.!?']+)*$`)
	// Values that are identifiers, numbers, URLs, paths or expressions.
	notTextPattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$|^\d|^http|^/|^#|^\$|^@|^\{`)
	// Single capitalised word, e.g. "Guests".
	titleWordPattern = regexp.MustCompile(`^[A-Z][a-z]{2,}$`)
)

var jsxExtensions = map[string]bool{".tsx": true, ".jsx": true}

// findHardcoded returns hardcoded JSX strings in src, one per line at most.
func findHardcoded(src string) []HardcodedText {
	var hits []HardcodedText
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") {
			continue
		}
		text := ""
		for _, m := range jsxAttrPattern.FindAllStringSubmatch(trimmed, -1) {
			if notTextPattern.MatchString(m[2]) {
				continue
			}
			if strings.Contains(m[2], " ") || titleWordPattern.MatchString(m[2]) {
				text = m[2]
				break
			}
		}
		if text == "" {
			for _, m := range jsxTextPattern.FindAllStringSubmatch(trimmed, -1) {
				if v := strings.TrimSpace(m[1]); !notTextPattern.MatchString(v) {
					text = v
					break
				}
			}
		}
		if text == "" && jsxBareTextPattern.MatchString(trimmed) && i > 0 && i+1 < len(lines) {
			prev := strings.TrimSpace(lines[i-1])
			next := strings.TrimSpace(lines[i+1])
			if strings.HasSuffix(prev, ">") && strings.HasPrefix(next, "<") {
				text = trimmed
			}
		}
		if text != "" {
			hits = append(hits, HardcodedText{
				Location: Location{Line: i + 1},
				Text:     text,
				Context:  trimmed,
			})
		}
	}
	return hits
}

// ScanHardcoded reports hardcoded JSX strings in .tsx and .jsx files,
// skipping test files.
func ScanHardcoded(fsys afero.Fs, root string, opts Options) ([]HardcodedText, error) {
	var out []HardcodedText
	err := eachSource(fsys, root, opts, func(rel, src string) {
		base := filepath.Base(rel)
		if !jsxExtensions[filepath.Ext(base)] || strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
			return
		}
		for _, h := range findHardcoded(src) {
			h.File = rel
			out = append(out, h)
		}
	})
	return out, err
}
