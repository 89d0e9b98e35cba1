package scan

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

// AliasMap maps a local identifier to the top-level section it was
// destructured from.
type AliasMap map[string]string

// AliasResolver builds the alias map for one file.
type AliasResolver interface {
	Resolve(src string) AliasMap
}

// DestructuringResolver recognises `const { invitation, guests: g } = t`.
// It is scope-unaware: all statements in a file feed one map and a later
// binding of the same local name wins.
type DestructuringResolver struct {
	sections map[string]bool
}

var (
	destructurePattern = regexp.MustCompile(`const\s*\{([^}]*)\}\s*=\s*t\b`)
	localIdentPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// NewDestructuringResolver returns a resolver accepting the given
// section names.
func NewDestructuringResolver(sections []string) *DestructuringResolver {
	r := &DestructuringResolver{sections: make(map[string]bool, len(sections))}
	for _, s := range sections {
		r.sections[s] = true
	}
	return r
}

func (r *DestructuringResolver) Resolve(src string) AliasMap {
	aliases := make(AliasMap)
	for _, m := range destructurePattern.FindAllStringSubmatchIndex(src, -1) {
		// Only a bare `t` counts, not `t.x`, `t[...]`, `t?.x` or `t()`.
		rest := strings.TrimLeft(src[m[1]:], " \t")
		if rest != "" && strings.IndexByte(".[(?", rest[0]) >= 0 {
			continue
		}
		for _, binding := range strings.Split(src[m[2]:m[3]], ",") {
			section, local := parseBinding(binding)
			if section == "" || !r.sections[section] {
				continue
			}
			aliases[local] = section
		}
	}
	return aliases
}

// parseBinding splits `name`, `name: alias` or `name = default` into the
// section name and the local identifier.
func parseBinding(binding string) (section, local string) {
	binding = strings.TrimSpace(binding)
	if binding == "" || strings.HasPrefix(binding, "...") {
		return "", ""
	}
	if i := strings.IndexByte(binding, '='); i >= 0 {
		binding = strings.TrimSpace(binding[:i])
	}
	section, local = binding, binding
	if i := strings.IndexByte(binding, ':'); i >= 0 {
		section = strings.TrimSpace(binding[:i])
		local = strings.TrimSpace(binding[i+1:])
	}
	if !localIdentPattern.MatchString(section) || !localIdentPattern.MatchString(local) {
		return "", ""
	}
	return section, local
}

// DestructuredAccess matches `alias.path` and `alias['leaf']` for aliases
// produced by its resolver, rewriting them to `section.path` before the
// key lookup.
type DestructuredAccess struct {
	resolver AliasResolver
	patterns *lru.Cache[string, aliasPatterns]
}

type aliasPatterns struct {
	dot     *regexp.Regexp
	bracket *regexp.Regexp
	index   *regexp.Regexp
}

const aliasCacheSize = 256

// NewDestructuredAccess returns the strategy backed by resolver.
func NewDestructuredAccess(resolver AliasResolver) *DestructuredAccess {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, aliasPatterns](aliasCacheSize)
	return &DestructuredAccess{resolver: resolver, patterns: cache}
}

func (d *DestructuredAccess) Name() string { return "destructured" }

func (d *DestructuredAccess) Find(src string, keys *locale.KeySpace) []Reference {
	var refs []Reference
	for local, section := range d.resolver.Resolve(src) {
		p := d.compiled(local)
		for _, m := range p.dot.FindAllStringSubmatchIndex(src, -1) {
			if key := section + src[m[2]:m[3]]; keys.Contains(key) {
				refs = append(refs, Reference{Key: key, Offset: m[0]})
			}
		}
		for _, m := range p.bracket.FindAllStringSubmatchIndex(src, -1) {
			if key := section + "." + src[m[2]:m[3]]; keys.Contains(key) {
				refs = append(refs, Reference{Key: key, Offset: m[0]})
			}
		}
	}
	return refs
}

// compiled returns the patterns for a local identifier. The same aliases
// recur across files, so compiled patterns are cached.
func (d *DestructuredAccess) compiled(local string) aliasPatterns {
	if p, ok := d.patterns.Get(local); ok {
		return p
	}
	quoted := regexp.QuoteMeta(local)
	p := aliasPatterns{
		dot:     regexp.MustCompile(`\b` + quoted + `((?:\.` + segment + `)+)`),
		bracket: regexp.MustCompile(`\b` + quoted + `\[['"](` + segment + `)['"]\]`),
		index:   regexp.MustCompile(`\b` + quoted + `((?:\.` + segment + `)*)` + index),
	}
	d.patterns.Add(local, p)
	return p
}
