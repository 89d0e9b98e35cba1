package locale

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const indentUnit = "  "

// Render returns locale source text for tree: an optional import of the
// type, then `export const <name>: <typeName> = {...};`.
func Render(name, typeName, importPath string, tree *yaml.Node) string {
	var b strings.Builder
	if typeName != "" && importPath != "" {
		fmt.Fprintf(&b, "import { %s } from '%s';\n\n", typeName, importPath)
	}
	b.WriteString("export const ")
	b.WriteString(name)
	if typeName != "" {
		b.WriteString(": ")
		b.WriteString(typeName)
	}
	b.WriteString(" = ")
	if tree == nil {
		tree = NewMapping()
	}
	writeValue(&b, tree, 0)
	b.WriteString(";\n")
	return b.String()
}

func writeValue(b *strings.Builder, n *yaml.Node, depth int) {
	switch n.Kind {
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		Entries(n, func(k string, v *yaml.Node) {
			b.WriteString(strings.Repeat(indentUnit, depth+1))
			b.WriteString(Key(k))
			b.WriteString(": ")
			writeValue(b, v, depth+1)
			b.WriteString(",\n")
		})
		b.WriteString(strings.Repeat(indentUnit, depth))
		b.WriteString("}")
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for _, item := range n.Content {
			b.WriteString(strings.Repeat(indentUnit, depth+1))
			writeValue(b, item, depth+1)
			b.WriteString(",\n")
		}
		b.WriteString(strings.Repeat(indentUnit, depth))
		b.WriteString("]")
	default:
		if IsString(n) {
			b.WriteString(Quote(n.Value))
			return
		}
		b.WriteString(n.Value)
	}
}

// Key renders k as an object key, quoting it unless it is an identifier.
func Key(k string) string {
	if identPattern.MatchString(k) {
		return k
	}
	return Quote(k)
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Quote renders s as a single-quoted string literal.
func Quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}
