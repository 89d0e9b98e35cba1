package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/locale"
)

func TestParseMergeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []mergeEntry
	}{
		{
			name:  "key=value format",
			input: "a.b=hello\nc.d=world\n",
			want: []mergeEntry{
				{key: "a.b", value: "hello"},
				{key: "c.d", value: "world"},
			},
		},
		{
			name:  "key: value format",
			input: "a.b: hello\nc.d: world\n",
			want: []mergeEntry{
				{key: "a.b", value: "hello"},
				{key: "c.d", value: "world"},
			},
		},
		{
			name:  "key: value with YAML quotes",
			input: "a.b: 'quoted value'\nc.d: \"double quoted\"\n",
			want: []mergeEntry{
				{key: "a.b", value: "quoted value"},
				{key: "c.d", value: "double quoted"},
			},
		},
		{
			name:  "value containing equals and colon",
			input: "rsvp.note=Dress code: black tie = formal\n",
			want: []mergeEntry{
				{key: "rsvp.note", value: "Dress code: black tie = formal"},
			},
		},
		{
			name:  "comments are skipped",
			input: "# just a comment\na.b=hello\n",
			want: []mergeEntry{
				{key: "a.b", value: "hello"},
			},
		},
		{
			name:  "YAML separator skipped",
			input: "---\na.b=hello\n",
			want: []mergeEntry{
				{key: "a.b", value: "hello"},
			},
		},
		{
			name:  "invalid key lines ignored",
			input: "not a valid line\na.b=hello\n",
			want: []mergeEntry{
				{key: "a.b", value: "hello"},
			},
		},
		{
			name:  "mixed formats",
			input: "a.b=one\nc.d: two\ne.f: 'three'\n",
			want: []mergeEntry{
				{key: "a.b", value: "one"},
				{key: "c.d", value: "two"},
				{key: "e.f", value: "three"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseMergeInput(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractTranslationText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "raw flat text passes through",
			input: "a.b=hello\nc.d=world\n",
			want:  "a.b=hello\nc.d=world\n",
		},
		{
			name: "markdown yaml fence",
			input: `Some text before

` + "```yaml" + `
a.b=hello
c.d=world
` + "```" + `

Some text after
`,
			want: "a.b=hello\nc.d=world\n",
		},
		{
			name:  "empty fence falls back to the whole text",
			input: "```yaml\n```\n",
			want:  "```yaml\n```\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractTranslationText([]byte(tc.input)))
		})
	}
}

func TestReportMergeNewLocale(t *testing.T) {
	files := testFixture()
	files["/repo/work/fr.md"] = "Translations:\n\n```yaml\ncommon.save=Enregistrer\nrsvp.yes: 'Accepte avec joie'\nwedding.days=Samedi | Dimanche\nunknown.key=ignored\n```\n"
	a, _ := newTestApp(t, files)

	require.NoError(t, reportMerge(a, "fr", []string{"/repo/work/fr.md"}))
	assert.Equal(t, `import { Translations } from '../types/i18n';

export const fr: Translations = {
  common: {
    save: 'Enregistrer',
    cancel: 'Cancel',
  },
  rsvp: {
    yes: 'Accepte avec joie',
    no: 'Regretfully declines',
  },
  wedding: {
    days: [
      'Samedi',
      'Dimanche',
    ],
  },
};
`, readFile(t, a, "/repo/src/locales/fr.ts"))
}

func TestReportMergeExistingLocale(t *testing.T) {
	a, _ := newTestApp(t, testFixture())
	a.stdin = strings.NewReader("common.cancel=Cancelar\n")

	require.NoError(t, reportMerge(a, "es", nil))
	src, err := locale.Load(a.fs, "/repo/src/locales/es.ts")
	require.NoError(t, err)
	assert.Equal(t, "es", src.Name)
	assert.Equal(t, "Translations", src.TypeName)
	assert.Equal(t, "Guardar", locale.Lookup(src.Tree, "common.save").Value)
	assert.Equal(t, "Cancelar", locale.Lookup(src.Tree, "common.cancel").Value)
	assert.Equal(t, "Joyfully accepts", locale.Lookup(src.Tree, "rsvp.yes").Value)
	// Keys the primary locale lacks are dropped.
	assert.Nil(t, locale.Lookup(src.Tree, "old.key"))
}

func TestReportMergeNoEntries(t *testing.T) {
	a, _ := newTestApp(t, testFixture())
	a.stdin = strings.NewReader("# nothing here\n")

	err := reportMerge(a, "es", nil)
	assert.EqualError(t, err, "no translation entries found in input")
	assert.Equal(t, testES, readFile(t, a, "/repo/src/locales/es.ts"))
}

func TestSetPath(t *testing.T) {
	tree := locale.NewMapping()
	locale.Set(tree, "a", locale.NewString("leaf"))

	setPath(tree, "b.c.d", locale.NewString("deep"))
	setPath(tree, "a.x", locale.NewString("replaces leaf"))

	assert.Equal(t, "deep", locale.Lookup(tree, "b.c.d").Value)
	assert.Equal(t, "replaces leaf", locale.Lookup(tree, "a.x").Value)
}
