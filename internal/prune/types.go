package prune

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

// DefaultTypeName is the interface name used when the locale source has
// no type annotation.
const DefaultTypeName = "Translations"

var languageBlockPattern = regexp.MustCompile(`export type Language\s*=[^;]*;`)

// LanguageBlock returns the `export type Language = ...;` declaration of
// an existing type file, or "" if it has none.
func LanguageBlock(existing string) string {
	return languageBlockPattern.FindString(existing)
}

// TypeDeclaration renders the type file for tree: languageBlock verbatim
// (when set), then an interface mirroring the tree's shape.
func TypeDeclaration(tree *yaml.Node, typeName, languageBlock string) string {
	if typeName == "" {
		typeName = DefaultTypeName
	}
	var b strings.Builder
	if languageBlock != "" {
		b.WriteString(languageBlock)
		b.WriteString("\n\n")
	}
	b.WriteString("export interface ")
	b.WriteString(typeName)
	b.WriteString(" {\n")
	writeMembers(&b, tree, 1)
	b.WriteString("}\n")
	return b.String()
}

// WriteTypes regenerates the type file at path from tree, keeping the
// Language declaration of the file already there. A missing file is
// created. It reports whether the file content changed.
func WriteTypes(fsys afero.Fs, path string, tree *yaml.Node, typeName string) (bool, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	text := TypeDeclaration(tree, typeName, LanguageBlock(string(data)))
	if err == nil && string(data) == text {
		return false, nil
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(text), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

func writeMembers(b *strings.Builder, n *yaml.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	locale.Entries(n, func(key string, v *yaml.Node) {
		b.WriteString(indent)
		b.WriteString(locale.Key(key))
		b.WriteString(": ")
		if locale.IsMapping(v) && len(v.Content) == 0 {
			b.WriteString("{};\n")
			return
		}
		if locale.IsMapping(v) {
			b.WriteString("{\n")
			writeMembers(b, v, depth+1)
			b.WriteString(indent)
			b.WriteString("};\n")
			return
		}
		b.WriteString(leafType(v))
		b.WriteString(";\n")
	})
}

func leafType(n *yaml.Node) string {
	switch {
	case locale.IsArray(n):
		return "string[]"
	case n.Tag == "!!bool":
		return "boolean"
	case n.Tag == "!!int" || n.Tag == "!!float":
		return "number"
	case n.Tag == "!!null":
		return "null"
	default:
		return "string"
	}
}
