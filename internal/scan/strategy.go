package scan

import (
	"regexp"
	"sort"
	"strings"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

// DefaultSections are the top-level sections of the translation object
// that may appear without a leading `t.`. The list is maintained by hand
// and must follow the first-level keys of the English locale.
var DefaultSections = []string{
	"common",
	"nav",
	"auth",
	"wedding",
	"guests",
	"rsvp",
	"weddingParty",
	"invitation",
	"customization",
	"date",
	"validation",
	"errors",
	"success",
	"language",
}

// Reference is a key found in a source text at a byte offset.
type Reference struct {
	Key    string
	Offset int
}

// Strategy finds references to known keys in one file's text.
type Strategy interface {
	Name() string
	Find(src string, keys *locale.KeySpace) []Reference
}

const segment = `[A-Za-z0-9_]+`

// DirectAccess matches `t.a.b[.c...]`. Single-segment access such as
// `t.a` is never matched. The whole chain after `t.` must be a key.
type DirectAccess struct{}

var directPattern = regexp.MustCompile(`\bt\.(` + segment + `(?:\.` + segment + `)+)`)

func (DirectAccess) Name() string { return "direct" }

func (DirectAccess) Find(src string, keys *locale.KeySpace) []Reference {
	var refs []Reference
	for _, m := range directPattern.FindAllStringSubmatchIndex(src, -1) {
		if key := src[m[2]:m[3]]; keys.Contains(key) {
			refs = append(refs, Reference{Key: key, Offset: m[0]})
		}
	}
	return refs
}

// SectionAccess matches a known section name followed by a dotted path,
// with no `t.` prefix, e.g. `guests.editGuestTitle` where guests was
// passed in as a prop.
type SectionAccess struct {
	pattern *regexp.Regexp
}

// NewSectionAccess builds the strategy for the given section names.
func NewSectionAccess(sections []string) *SectionAccess {
	if len(sections) == 0 {
		return &SectionAccess{}
	}
	return &SectionAccess{pattern: regexp.MustCompile(`\b(` + alternation(sections) + `)((?:\.` + segment + `)+)`)}
}

func (s *SectionAccess) Name() string { return "section" }

func (s *SectionAccess) Find(src string, keys *locale.KeySpace) []Reference {
	if s.pattern == nil {
		return nil
	}
	var refs []Reference
	for _, m := range s.pattern.FindAllStringSubmatchIndex(src, -1) {
		if key := src[m[2]:m[3]] + src[m[4]:m[5]]; keys.Contains(key) {
			refs = append(refs, Reference{Key: key, Offset: m[0]})
		}
	}
	return refs
}

// BracketAccess matches the three bracket forms `t['a'].b.c`,
// `t.a['b']` and `t['a']['b']`. The last form only covers two levels.
type BracketAccess struct{}

var (
	bracketDotPattern     = regexp.MustCompile(`\bt\[['"](` + segment + `)['"]\]((?:\.` + segment + `)+)`)
	dotBracketPattern     = regexp.MustCompile(`\bt\.(` + segment + `)\[['"](` + segment + `)['"]\]`)
	bracketBracketPattern = regexp.MustCompile(`\bt\[['"](` + segment + `)['"]\]\[['"](` + segment + `)['"]\]`)
)

func (BracketAccess) Name() string { return "bracket" }

func (BracketAccess) Find(src string, keys *locale.KeySpace) []Reference {
	var refs []Reference
	add := func(key string, offset int) {
		if keys.Contains(key) {
			refs = append(refs, Reference{Key: key, Offset: offset})
		}
	}
	for _, m := range bracketDotPattern.FindAllStringSubmatchIndex(src, -1) {
		add(src[m[2]:m[3]]+src[m[4]:m[5]], m[0])
	}
	for _, m := range dotBracketPattern.FindAllStringSubmatchIndex(src, -1) {
		add(src[m[2]:m[3]]+"."+src[m[4]:m[5]], m[0])
	}
	for _, m := range bracketBracketPattern.FindAllStringSubmatchIndex(src, -1) {
		add(src[m[2]:m[3]]+"."+src[m[4]:m[5]], m[0])
	}
	return refs
}

// alternation joins names into a regexp alternation, longest first.
func alternation(names []string) string {
	sorted := make([]string, 0, len(names))
	for _, n := range names {
		sorted = append(sorted, regexp.QuoteMeta(n))
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	return strings.Join(sorted, "|")
}
