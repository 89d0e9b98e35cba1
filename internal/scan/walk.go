// Package scan finds translation key references in a tree of source files.
//
// Matching is textual: each Strategy applies regular expressions to a
// file's full text and keeps only matches that name a known key. There is
// no parsing and no scope tracking, so dynamic key construction is missed
// and unrelated identifiers named t are treated as the translation object.
package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// DefaultExtensions are the source file extensions scanned by default.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// Walker enumerates source files below a root directory.
type Walker struct {
	extensions map[string]bool
	exclude    []glob.Glob
}

// NewWalker returns a walker for the given extensions. Exclude patterns
// are globs matched against slash-separated paths relative to the root;
// a matching directory is not descended into.
func NewWalker(extensions, exclude []string) (*Walker, error) {
	w := &Walker{extensions: make(map[string]bool, len(extensions))}
	for _, e := range extensions {
		w.extensions[e] = true
	}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		w.exclude = append(w.exclude, g)
	}
	return w, nil
}

// Walk returns the paths of all matching files under root in directory
// entry order. Failing to read root or any directory below it aborts the
// walk.
func (w *Walker) Walk(fsys afero.Fs, root string) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path != root && w.excluded(root, path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if w.extensions[filepath.Ext(info.Name())] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func (w *Walker) excluded(root, path string) bool {
	if len(w.exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range w.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
