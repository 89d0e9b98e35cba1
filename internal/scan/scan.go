package scan

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

// Location is a file and 1-based line.
type Location struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
}

// Options control a corpus scan.
type Options struct {
	Extensions []string
	Exclude    []string
	Sections   []string
	Logger     zerolog.Logger
}

// Result is the outcome of a corpus scan.
type Result struct {
	Usage *Usage
	// References lists where each used key was found, with file paths
	// relative to the scanned root.
	References map[string][]Location
	Files      int
}

// Scan walks root, extracts references from every source file one at a
// time and aggregates them against keys. Only walk failures are
// returned; unreadable files are logged and skipped.
func Scan(fsys afero.Fs, root string, keys *locale.KeySpace, opts Options) (*Result, error) {
	extractor := DefaultExtractor(opts.Sections)
	res := &Result{
		Usage:      NewUsage(keys),
		References: make(map[string][]Location),
	}
	err := eachSource(fsys, root, opts, func(rel, src string) {
		res.Files++
		refs := extractor.Find(src, keys)
		if len(refs) == 0 {
			return
		}
		lines := newLineIndex(src)
		seen := make(map[string]bool)
		for _, r := range refs {
			res.Usage.Add(r.Key)
			loc := Location{File: rel, Line: lines.line(r.Offset)}
			id := fmt.Sprintf("%s:%d", r.Key, loc.Line)
			if seen[id] {
				continue
			}
			seen[id] = true
			res.References[r.Key] = append(res.References[r.Key], loc)
		}
		opts.Logger.Debug().Str("file", rel).Int("references", len(refs)).Msg("scanned")
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func relPath(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return file
	}
	return filepath.ToSlash(rel)
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(src string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (idx lineIndex) line(offset int) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > offset })
}
