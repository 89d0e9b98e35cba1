package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/config"
)

const (
	testEN = `import { Translations } from '../types/i18n';

export const en: Translations = {
  common: {
    save: 'Save',
    cancel: 'Cancel',
  },
  rsvp: {
    yes: 'Joyfully accepts',
    no: 'Regretfully declines',
  },
  wedding: {
    days: ['Saturday', 'Sunday'],
  },
};
`
	testES = `import { Translations } from '../types/i18n';

export const es: Translations = {
  common: {
    save: 'Guardar',
    cancel: 'Cancel',
  },
  old: {
    key: 'viejo',
  },
};
`
	testTypes = `export type Language = 'en' | 'es';

export interface Translations {
  common: {
    save: string;
    cancel: string;
  };
}
`
	testApp = `import { t } from './i18n';

export function Reply({ status }) {
  return <button>{t.common.save}</button>;
}

export const label = (status) => t.rsvp[status];
`
)

// testFixture is the default project: en and es locales, a type file and
// one component using common.save and a computed rsvp lookup.
func testFixture() map[string]string {
	return map[string]string{
		"/repo/package.json":           "{}",
		"/repo/src/locales/en.ts":      testEN,
		"/repo/src/locales/es.ts":      testES,
		"/repo/src/types/i18n.ts":      testTypes,
		"/repo/src/components/App.tsx": testApp,
	}
}

// newTestApp builds an app over an in-memory project rooted at /repo.
func newTestApp(t *testing.T, files map[string]string) (*app, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	out := &bytes.Buffer{}
	return &app{
		fs:     fs,
		cfg:    config.Default("/repo"),
		log:    zerolog.Nop(),
		stdout: out,
		stdin:  strings.NewReader(""),
	}, out
}

func readFile(t *testing.T, a *app, path string) string {
	t.Helper()
	data, err := afero.ReadFile(a.fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestProjectRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/site/package.json", []byte("{}"), 0o644))
	require.NoError(t, fs.MkdirAll("/work/site/src/components", 0o755))
	require.NoError(t, fs.MkdirAll("/elsewhere/deep", 0o755))

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"at root", "/work/site", "/work/site"},
		{"nested", "/work/site/src/components", "/work/site"},
		{"no package.json", "/elsewhere/deep", "/elsewhere/deep"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, projectRoot(fs, tc.dir))
		})
	}
}

func TestRel(t *testing.T) {
	a, _ := newTestApp(t, nil)
	assert.Equal(t, "src/locales/en.ts", a.rel("/repo/src/locales/en.ts"))
	assert.Equal(t, "relative", a.rel("relative"))
}

func TestLocaleHelpers(t *testing.T) {
	a, _ := newTestApp(t, nil)

	_, err := a.targetLocale("")
	assert.EqualError(t, err, "--locale is required")
	_, err = a.targetLocale("en")
	assert.Error(t, err)
	_, err = a.targetLocale("not a tag")
	assert.Error(t, err)
	code, err := a.targetLocale("es")
	require.NoError(t, err)
	assert.Equal(t, "es", code)

	assert.Equal(t, "es (Spanish)", localeLabel("es"))
	assert.Equal(t, "ptBR", constName("pt-BR"))
	assert.Equal(t, "zhHantTW", constName("zh_Hant_TW"))
}

func TestIsValidDottedKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"common.save", true},
		{"weddingParty.roles.best-man", true},
		{"guests.0", true},
		{"common", false},
		{"common..save", false},
		{".save", false},
		{"common.save now", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			assert.Equal(t, tc.want, isValidDottedKey(tc.key))
		})
	}
}

func TestStripYAMLQuotes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`'it''s'`, "it's"},
		{`"say \"hi\""`, `say "hi"`},
		{`plain`, "plain"},
		{`'`, "'"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, stripYAMLQuotes(tc.in))
		})
	}
}
