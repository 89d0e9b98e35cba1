package locale

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Load reads and parses the locale source at path. Read errors are
// returned unwrapped so callers can test them with os.IsNotExist.
func Load(fsys afero.Fs, path string) (*Source, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	src, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return src, nil
}

// Write renders src and overwrites path with it.
func Write(fsys afero.Fs, path string, src *Source, importPath string) error {
	out := Render(src.Name, src.TypeName, importPath, src.Tree)
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
