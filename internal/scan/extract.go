package scan

import (
	"sort"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

// Extractor unions the references found by several strategies.
type Extractor struct {
	strategies []Strategy
}

// NewExtractor returns an extractor over the given strategies.
func NewExtractor(strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

// DefaultExtractor returns the direct, section, bracket and destructured
// strategies for the given section names.
func DefaultExtractor(sections []string) *Extractor {
	return NewExtractor(
		DirectAccess{},
		NewSectionAccess(sections),
		BracketAccess{},
		NewDestructuredAccess(NewDestructuringResolver(sections)),
	)
}

func (e *Extractor) Name() string { return "composite" }

// Find returns every strategy's references ordered by offset. A key may
// appear more than once when several strategies match it.
func (e *Extractor) Find(src string, keys *locale.KeySpace) []Reference {
	var refs []Reference
	for _, s := range e.strategies {
		refs = append(refs, s.Find(src, keys)...)
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Offset < refs[j].Offset
	})
	return refs
}
