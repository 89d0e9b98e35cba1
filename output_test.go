package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("yaml", reportFormats))
	assert.EqualError(t, checkFormat("toml", reportFormats), `unknown format "toml" (want text, json, yaml)`)
	assert.NoError(t, checkFormat("toml", exportFormats))
}

func TestOutputStrings(t *testing.T) {
	tests := []struct {
		name   string
		items  []string
		format string
		want   string
	}{
		{"text", []string{"a.b", "c.d"}, "text", "Found 2 stale keys:\n  a.b\n  c.d\n"},
		{"text empty", nil, "text", "No stale keys found.\n"},
		{"json", []string{"a.b"}, "json", "[\n  \"a.b\"\n]\n"},
		{"json empty", nil, "json", "[]\n"},
		{"yaml", []string{"a.b"}, "yaml", "- a.b\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, out := newTestApp(t, nil)
			require.NoError(t, a.outputStrings(tc.items, tc.format, "stale keys"))
			assert.Equal(t, tc.want, out.String())
		})
	}
}
