package scan

import (
	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

// Usage accumulates which keys of a key space are referenced anywhere in
// the corpus.
type Usage struct {
	keys *locale.KeySpace
	used map[string]struct{}
}

// Report summarises a Usage.
type Report struct {
	Total  int      `json:"total" yaml:"total"`
	Used   int      `json:"used" yaml:"used"`
	Unused []string `json:"unused" yaml:"unused"`
}

// NewUsage returns an empty usage record for keys.
func NewUsage(keys *locale.KeySpace) *Usage {
	return &Usage{keys: keys, used: make(map[string]struct{})}
}

// Add marks keys as used. Keys outside the key space are ignored.
func (u *Usage) Add(keys ...string) {
	for _, k := range keys {
		if u.keys.Contains(k) {
			u.used[k] = struct{}{}
		}
	}
}

// IsUsed reports whether key has been marked used.
func (u *Usage) IsUsed(key string) bool {
	_, ok := u.used[key]
	return ok
}

// Used returns the used keys in key space order.
func (u *Usage) Used() []string {
	return u.filter(true)
}

// Unused returns the keys never marked used, in key space order.
func (u *Usage) Unused() []string {
	return u.filter(false)
}

func (u *Usage) filter(used bool) []string {
	out := []string{}
	for _, k := range u.keys.Keys() {
		if u.IsUsed(k) == used {
			out = append(out, k)
		}
	}
	return out
}

// Report returns the total, used count and unused keys.
func (u *Usage) Report() Report {
	unused := u.Unused()
	return Report{
		Total:  u.keys.Len(),
		Used:   u.keys.Len() - len(unused),
		Unused: unused,
	}
}
