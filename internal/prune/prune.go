// Package prune removes unused keys from the primary locale and rebuilds
// the secondary locale and the type declaration to match it.
package prune

import (
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

// Result records what Prune did with each requested path.
type Result struct {
	// Removed paths had their entry deleted.
	Removed []string `json:"removed" yaml:"removed"`
	// Absent paths resolved to an existing mapping that no longer held
	// the last segment, e.g. on a second run.
	Absent []string `json:"absent" yaml:"absent"`
	// Skipped paths had an intermediate segment that was missing or not a
	// mapping.
	Skipped []string `json:"skipped" yaml:"skipped"`
}

// Prune deletes each dotted path from tree in place. Parents left empty
// by a deletion are kept. Paths that cannot be navigated are skipped
// without touching the tree.
func Prune(tree *yaml.Node, paths []string, logger zerolog.Logger) Result {
	var res Result
	for _, path := range paths {
		parts := strings.Split(path, ".")
		parent := tree
		for _, part := range parts[:len(parts)-1] {
			parent = locale.Child(parent, part)
			if !locale.IsMapping(parent) {
				parent = nil
				break
			}
		}
		switch {
		case !locale.IsMapping(parent):
			logger.Debug().Str("key", path).Msg("skipping key: path does not resolve to a section")
			res.Skipped = append(res.Skipped, path)
		case locale.Delete(parent, parts[len(parts)-1]):
			res.Removed = append(res.Removed, path)
		default:
			res.Absent = append(res.Absent, path)
		}
	}
	return res
}

// Align rebuilds secondary in the shape of template. Every template key
// is present in the result with a value of the same kind: the secondary
// value when its kind matches, otherwise a copy of the template value.
// Keys only present in secondary are dropped.
func Align(template, secondary *yaml.Node) *yaml.Node {
	out := locale.NewMapping()
	locale.Entries(template, func(key string, tv *yaml.Node) {
		sv := locale.Child(secondary, key)
		switch {
		case locale.IsMapping(tv):
			locale.Set(out, key, Align(tv, sv))
		case locale.IsArray(tv):
			if locale.IsArray(sv) {
				locale.Set(out, key, locale.Copy(sv))
			} else {
				locale.Set(out, key, locale.Copy(tv))
			}
		case locale.IsString(tv) && locale.IsString(sv):
			locale.Set(out, key, locale.Copy(sv))
		default:
			locale.Set(out, key, locale.Copy(tv))
		}
	})
	return out
}
