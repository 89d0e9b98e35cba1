package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		en   string
		es   string
		want []placeholder
	}{
		{
			name: "copied string",
			es:   testES,
			want: []placeholder{{Key: "common.cancel", Value: "Cancel"}},
		},
		{
			name: "copied array",
			es:   `export const es = { wedding: { days: ['Saturday', 'Sunday'] } };`,
			want: []placeholder{{Key: "wedding.days", Value: "Saturday | Sunday"}},
		},
		{
			name: "partly translated array",
			es:   `export const es = { wedding: { days: ['Sábado', 'Sunday'] } };`,
			want: nil,
		},
		{
			name: "empty values are not placeholders",
			en:   `export const en = { common: { save: '' } };`,
			es:   `export const es = { common: { save: '' } };`,
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			files := testFixture()
			files["/repo/src/locales/es.ts"] = tc.es
			if tc.en != "" {
				files["/repo/src/locales/en.ts"] = tc.en
			}
			a, _ := newTestApp(t, files)

			got, err := findPlaceholders(a, "es")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReportUntranslated(t *testing.T) {
	a, out := newTestApp(t, testFixture())

	require.NoError(t, reportUntranslated(a, "es", "text"))
	assert.Equal(t, "Found 1 keys in es (Spanish) still holding the en text:\n\n  common.cancel\n    Cancel\n\n", out.String())
}

func TestReportUntranslatedMissingLocale(t *testing.T) {
	a, _ := newTestApp(t, testFixture())

	err := reportUntranslated(a, "fr", "text")
	assert.EqualError(t, err, "locale file src/locales/fr.ts not found")
}
