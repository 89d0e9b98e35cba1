package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

func TestReadKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"one per line", "common.save\nrsvp.yes\n", []string{"common.save", "rsvp.yes"}},
		{"whitespace trimmed", "  common.save  \n", []string{"common.save"}},
		{"report headers skipped", "Total keys: 5\nUnused keys: 1\ncommon.cancel\n", []string{"common.cancel"}},
		{"list output", "Found 1 stale keys in es (Spanish):\n  old.key\n", []string{"old.key"}},
		{"empty", "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readKeys(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRemoveKeys(t *testing.T) {
	files := testFixture()
	files["/repo/src/locales/index.ts"] = "export * from './en';"
	a, _ := newTestApp(t, files)

	require.NoError(t, removeKeys(a, []string{"common.cancel", "rsvp.yes", "missing.key"}))

	en, err := locale.Load(a.fs, "/repo/src/locales/en.ts")
	require.NoError(t, err)
	assert.Equal(t, []string{"common.save", "rsvp.no", "wedding.days"}, locale.Flatten(en.Tree).Keys())

	es, err := locale.Load(a.fs, "/repo/src/locales/es.ts")
	require.NoError(t, err)
	assert.Equal(t, []string{"common.save", "old.key"}, locale.Flatten(es.Tree).Keys())

	assert.Equal(t, "export * from './en';", readFile(t, a, "/repo/src/locales/index.ts"))
}

func TestRemoveKeysRegeneratesTypes(t *testing.T) {
	a, _ := newTestApp(t, testFixture())

	require.NoError(t, removeKeys(a, []string{"common.cancel"}))
	assert.Equal(t, `export type Language = 'en' | 'es';

export interface Translations {
  common: {
    save: string;
  };
  rsvp: {
    yes: string;
    no: string;
  };
  wedding: {
    days: string[];
  };
}
`, readFile(t, a, "/repo/src/types/i18n.ts"))
}

func TestRemoveStaleKeysLeavesTypes(t *testing.T) {
	a, _ := newTestApp(t, testFixture())

	require.NoError(t, removeStaleKeys(a))
	assert.Equal(t, testTypes, readFile(t, a, "/repo/src/types/i18n.ts"))
}

func TestRemoveKeysUntouchedFile(t *testing.T) {
	a, _ := newTestApp(t, testFixture())

	require.NoError(t, removeKeys(a, []string{"rsvp.no"}))
	// Nothing matched in es, so it keeps its original formatting.
	assert.Equal(t, testES, readFile(t, a, "/repo/src/locales/es.ts"))
}

func TestRemoveStaleKeys(t *testing.T) {
	files := testFixture()
	files["/repo/src/locales/fr.ts"] = `export const fr = {
  common: { save: 'Enregistrer', close: 'Fermer' },
};
`
	a, _ := newTestApp(t, files)

	require.NoError(t, removeStaleKeys(a))

	es, err := locale.Load(a.fs, "/repo/src/locales/es.ts")
	require.NoError(t, err)
	assert.Equal(t, []string{"common.save", "common.cancel"}, locale.Flatten(es.Tree).Keys())
	// The emptied section stays.
	assert.True(t, locale.IsMapping(locale.Child(es.Tree, "old")))

	fr, err := locale.Load(a.fs, "/repo/src/locales/fr.ts")
	require.NoError(t, err)
	assert.Equal(t, []string{"common.save"}, locale.Flatten(fr.Tree).Keys())

	assert.Equal(t, testEN, readFile(t, a, "/repo/src/locales/en.ts"))
}
