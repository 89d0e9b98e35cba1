package scan

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

var testKeys = locale.NewKeySpace(
	"invitation.rsvpTitle",
	"invitation.details.venue",
	"guests.editGuestTitle",
	"weddingParty.title",
	"wedding.title",
	"common.save",
	"top",
)

func keysOf(refs []Reference) []string {
	set := map[string]bool{}
	for _, r := range refs {
		set[r.Key] = true
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestDirectAccess(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"two segments", `<h1>{t.invitation.rsvpTitle}</h1>`, []string{"invitation.rsvpTitle"}},
		{"three segments", `t.invitation.details.venue`, []string{"invitation.details.venue"}},
		{"this.t", `this.t.common.save`, []string{"common.save"}},
		{"single segment never matches", `t.top`, nil},
		{"unknown key", `t.invitation.missing`, nil},
		{"trailing member is part of the chain", `t.common.save.toUpperCase()`, nil},
		{"identifier ending in t", `const at = x; at.common.save`, nil},
		{"no t prefix", `invitation.rsvpTitle`, nil},
		{"several", "t.common.save\nt.wedding.title", []string{"common.save", "wedding.title"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := keysOf(DirectAccess{}.Find(tc.src, testKeys))
			if tc.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestSectionAccess(t *testing.T) {
	s := NewSectionAccess(DefaultSections)
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"prop access", `props.guests.editGuestTitle`, []string{"guests.editGuestTitle"}},
		{"bare", `{invitation.rsvpTitle}`, []string{"invitation.rsvpTitle"}},
		{"longer section wins", `weddingParty.title`, []string{"weddingParty.title"}},
		{"shorter section", `wedding.title`, []string{"wedding.title"}},
		{"not a section", `top.x`, nil},
		{"suffix of identifier", `myguests.editGuestTitle`, nil},
		{"unknown key", `guests.unknown`, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := keysOf(s.Find(tc.src, testKeys))
			if tc.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tc.want, got)
			}
		})
	}

	assert.Empty(t, NewSectionAccess(nil).Find(`guests.editGuestTitle`, testKeys))
}

func TestBracketAccess(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"bracket then dot", `t['invitation'].rsvpTitle`, []string{"invitation.rsvpTitle"}},
		{"bracket then deep dot", `t["invitation"].details.venue`, []string{"invitation.details.venue"}},
		{"dot then bracket", `t.invitation['rsvpTitle']`, []string{"invitation.rsvpTitle"}},
		{"dot then bracket double quotes", `t.invitation["rsvpTitle"]`, []string{"invitation.rsvpTitle"}},
		{"two brackets", `t['invitation']['rsvpTitle']`, []string{"invitation.rsvpTitle"}},
		{"three brackets not supported", `t['invitation']['details']['venue']`, nil},
		{"computed index", `t.invitation[key]`, nil},
		{"spaces not accepted", `t[ 'invitation' ].rsvpTitle`, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := keysOf(BracketAccess{}.Find(tc.src, testKeys))
			if tc.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestBracketEquivalence(t *testing.T) {
	keys := locale.NewKeySpace("invitation.rsvpTitle")
	e := DefaultExtractor(DefaultSections)
	for _, src := range []string{
		`t['invitation'].rsvpTitle`,
		`t.invitation['rsvpTitle']`,
		`t['invitation']['rsvpTitle']`,
	} {
		assert.Contains(t, keysOf(e.Find(src, keys)), "invitation.rsvpTitle", src)
	}
}

func TestStrategyIndependence(t *testing.T) {
	keys := locale.NewKeySpace("invitation.rsvpTitle")
	direct := DirectAccess{}
	destructured := NewDestructuredAccess(NewDestructuringResolver(DefaultSections))
	e := DefaultExtractor(DefaultSections)

	src := `t.invitation.rsvpTitle`
	assert.Equal(t, []string{"invitation.rsvpTitle"}, keysOf(direct.Find(src, keys)))
	assert.Contains(t, keysOf(e.Find(src, keys)), "invitation.rsvpTitle")

	src = "const { invitation } = t;\ninvitation.rsvpTitle"
	assert.Empty(t, direct.Find(src, keys))
	assert.Equal(t, []string{"invitation.rsvpTitle"}, keysOf(destructured.Find(src, keys)))
	assert.Contains(t, keysOf(e.Find(src, keys)), "invitation.rsvpTitle")
}

func TestExtractorFindOrdersByOffset(t *testing.T) {
	src := "t.wedding.title\nconst { invitation: inv } = t;\ninv.rsvpTitle\nt.common.save"
	refs := DefaultExtractor(DefaultSections).Find(src, testKeys)
	for i := 1; i < len(refs); i++ {
		assert.LessOrEqual(t, refs[i-1].Offset, refs[i].Offset)
	}
	assert.Equal(t, []string{"common.save", "invitation.rsvpTitle", "wedding.title"}, keysOf(refs))
}
