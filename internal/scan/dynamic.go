package scan

import (
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// DynamicAccess is a key lookup through a computed index, which the
// extractor cannot resolve. Prefix is the statically known part of the
// key (possibly empty) and Expr the index expression.
type DynamicAccess struct {
	Prefix string `json:"prefix" yaml:"prefix"`
	Expr   string `json:"expr" yaml:"expr"`

	Location `yaml:",inline"`
}

// Pattern renders the access as `prefix.[expr]`.
func (d DynamicAccess) Pattern() string {
	if d.Prefix == "" {
		return "[" + d.Expr + "]"
	}
	return d.Prefix + ".[" + d.Expr + "]"
}

// index is a computed `[...]` whose content does not start with a quote.
const index = `\[\s*([^'"\]\s][^\]]*?)\s*\]`

var (
	dynamicPattern        = regexp.MustCompile(`\bt((?:\.` + segment + `)*)` + index)
	dynamicBracketPattern = regexp.MustCompile(`\bt\[['"](` + segment + `)['"]\]` + index)
)

type dynamicMatch struct {
	prefix string
	expr   string
	offset int
}

// findDynamic returns the computed accesses on t and on the destructured
// section aliases d resolves in src.
func findDynamic(src string, d *DestructuredAccess) []dynamicMatch {
	var out []dynamicMatch
	for _, m := range dynamicPattern.FindAllStringSubmatchIndex(src, -1) {
		out = append(out, dynamicMatch{
			prefix: strings.TrimPrefix(src[m[2]:m[3]], "."),
			expr:   src[m[4]:m[5]],
			offset: m[0],
		})
	}
	for _, m := range dynamicBracketPattern.FindAllStringSubmatchIndex(src, -1) {
		out = append(out, dynamicMatch{prefix: src[m[2]:m[3]], expr: src[m[4]:m[5]], offset: m[0]})
	}
	for local, section := range d.resolver.Resolve(src) {
		for _, m := range d.compiled(local).index.FindAllStringSubmatchIndex(src, -1) {
			out = append(out, dynamicMatch{
				prefix: section + src[m[2]:m[3]],
				expr:   src[m[4]:m[5]],
				offset: m[0],
			})
		}
	}
	return out
}

// ScanDynamic lists computed key accesses in the corpus under root.
func ScanDynamic(fsys afero.Fs, root string, opts Options) ([]DynamicAccess, error) {
	aliases := NewDestructuredAccess(NewDestructuringResolver(opts.Sections))
	var out []DynamicAccess
	err := eachSource(fsys, root, opts, func(rel, src string) {
		lines := newLineIndex(src)
		for _, m := range findDynamic(src, aliases) {
			out = append(out, DynamicAccess{
				Prefix:   m.prefix,
				Expr:     m.expr,
				Location: Location{File: rel, Line: lines.line(m.offset)},
			})
		}
	})
	return out, err
}

// eachSource walks root and calls fn with each readable source file.
func eachSource(fsys afero.Fs, root string, opts Options, fn func(rel, src string)) error {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	walker, err := NewWalker(exts, opts.Exclude)
	if err != nil {
		return err
	}
	files, err := walker.Walk(fsys, root)
	if err != nil {
		return err
	}
	for _, file := range files {
		data, err := afero.ReadFile(fsys, file)
		if err != nil {
			opts.Logger.Warn().Err(err).Str("file", file).Msg("skipping unreadable file")
			continue
		}
		fn(relPath(root, file), string(data))
	}
	return nil
}
