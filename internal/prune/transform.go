package prune

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

// Paths are the files the transform reads and rewrites.
type Paths struct {
	Primary   string
	Secondary string
	Types     string
}

// Inputs hold everything read from disk before any file is written,
// including the raw file contents used to tell whether an output changes.
type Inputs struct {
	Primary   *locale.Source
	Secondary *locale.Source
	raw       map[string]string
}

// FileChange is one output of the transform.
type FileChange struct {
	Path    string `json:"path" yaml:"path"`
	Changed bool   `json:"changed" yaml:"changed"`
}

// Outcome is the result of a transform run. Written is false for dry
// runs.
type Outcome struct {
	Prune   Result       `json:"prune" yaml:"prune"`
	Files   []FileChange `json:"files" yaml:"files"`
	Written bool         `json:"written" yaml:"written"`
}

// Transformer prunes the primary locale and regenerates the secondary
// locale and type file from it. ImportPath is the module the rendered
// locale files import their type from.
type Transformer struct {
	Fs         afero.Fs
	Paths      Paths
	ImportPath string
	DryRun     bool
	Logger     zerolog.Logger
}

// Load reads and parses both locales and the existing type file. A
// missing type file is not an error; every other read or parse failure
// is.
func (t *Transformer) Load() (*Inputs, error) {
	in := &Inputs{raw: make(map[string]string, 3)}
	for _, path := range []string{t.Paths.Primary, t.Paths.Secondary} {
		data, err := afero.ReadFile(t.Fs, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		src, err := locale.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		in.raw[path] = string(data)
		if path == t.Paths.Primary {
			in.Primary = src
		} else {
			in.Secondary = src
		}
	}

	data, err := afero.ReadFile(t.Fs, t.Paths.Types)
	switch {
	case err == nil:
		in.raw[t.Paths.Types] = string(data)
	case errors.Is(err, os.ErrNotExist):
		t.Logger.Warn().Str("file", t.Paths.Types).Msg("type file not found, it will be created")
	default:
		return nil, fmt.Errorf("reading %s: %w", t.Paths.Types, err)
	}
	return in, nil
}

// Apply prunes unused from the primary tree, realigns the secondary tree
// and writes all three outputs unless DryRun is set. in is modified.
func (t *Transformer) Apply(in *Inputs, unused []string) (*Outcome, error) {
	out := &Outcome{Prune: Prune(in.Primary.Tree, unused, t.Logger)}
	if n := len(out.Prune.Skipped); n > 0 {
		t.Logger.Debug().Int("count", n).Msg("keys skipped during prune")
	}
	in.Secondary.Tree = Align(in.Primary.Tree, in.Secondary.Tree)

	typeName := in.Primary.TypeName
	if typeName == "" {
		typeName = DefaultTypeName
	}
	rendered := []struct{ path, text string }{
		{t.Paths.Primary, locale.Render(in.Primary.Name, in.Primary.TypeName, t.ImportPath, in.Primary.Tree)},
		{t.Paths.Secondary, locale.Render(in.Secondary.Name, in.Secondary.TypeName, t.ImportPath, in.Secondary.Tree)},
		{t.Paths.Types, TypeDeclaration(in.Primary.Tree, typeName, LanguageBlock(in.raw[t.Paths.Types]))},
	}

	for _, r := range rendered {
		old, existed := in.raw[r.path]
		out.Files = append(out.Files, FileChange{Path: r.path, Changed: !existed || old != r.text})
	}
	if t.DryRun {
		return out, nil
	}

	for _, r := range rendered {
		if err := t.Fs.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
			return out, fmt.Errorf("writing %s: %w", r.path, err)
		}
		if err := afero.WriteFile(t.Fs, r.path, []byte(r.text), 0644); err != nil {
			return out, fmt.Errorf("writing %s: %w", r.path, err)
		}
		t.Logger.Debug().Str("file", r.path).Msg("wrote")
	}
	out.Written = true
	return out, nil
}

// Run loads the inputs and applies the transform with a fixed unused
// list.
func (t *Transformer) Run(unused []string) (*Outcome, error) {
	in, err := t.Load()
	if err != nil {
		return nil, err
	}
	return t.Apply(in, unused)
}
