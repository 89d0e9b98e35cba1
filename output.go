package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var reportFormats = []string{"text", "json", "yaml"}

// checkFormat rejects a --format value outside allowed.
func checkFormat(format string, allowed []string) error {
	if !slices.Contains(allowed, format) {
		return fmt.Errorf("unknown format %q (want %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// encode writes v to stdout as JSON or YAML.
func (a *app) encode(v any, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputStrings prints a list of strings in text, JSON or YAML format.
func (a *app) outputStrings(items []string, format, label string) error {
	if format != "text" {
		if items == nil {
			items = []string{}
		}
		return a.encode(items, format)
	}

	if len(items) == 0 {
		fmt.Fprintf(a.stdout, "No %s found.\n", label)
		return nil
	}

	fmt.Fprintf(a.stdout, "Found %d %s:\n", len(items), label)
	for _, item := range items {
		fmt.Fprintf(a.stdout, "  %s\n", item)
	}
	return nil
}
