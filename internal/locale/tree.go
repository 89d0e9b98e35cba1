// Package locale reads, flattens and writes translation trees.
//
// A translation tree is an ordered yaml.Node tree: mapping nodes are named
// sections, sequence nodes are string arrays and scalar nodes are leaves.
// Arrays are leaves as far as key paths are concerned.
package locale

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// NewMapping returns an empty mapping node.
func NewMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// NewString returns a string leaf.
func NewString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// NewArray returns a sequence node holding string leaves.
func NewArray(items ...string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, item := range items {
		n.Content = append(n.Content, NewString(item))
	}
	return n
}

// IsMapping reports whether n is a named mapping.
func IsMapping(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.MappingNode
}

// IsArray reports whether n is an array.
func IsArray(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.SequenceNode
}

// IsString reports whether n is a string leaf.
func IsString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && (n.Tag == "!!str" || n.Tag == "")
}

// Child returns the value stored under key in mapping n, or nil.
func Child(n *yaml.Node, key string) *yaml.Node {
	if !IsMapping(n) {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// Set stores value under key in mapping n, replacing an existing entry in
// place or appending a new one.
func Set(n *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			n.Content[i+1] = value
			return
		}
	}
	n.Content = append(n.Content, NewString(key), value)
}

// Delete removes key from mapping n. It returns false when n is not a
// mapping or has no such key.
func Delete(n *yaml.Node, key string) bool {
	if !IsMapping(n) {
		return false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			n.Content = append(n.Content[:i], n.Content[i+2:]...)
			return true
		}
	}
	return false
}

// Entries calls fn for each key/value pair of mapping n in order.
func Entries(n *yaml.Node, fn func(key string, value *yaml.Node)) {
	if !IsMapping(n) {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i].Value, n.Content[i+1])
	}
}

// Lookup resolves a dotted key path. It returns nil when any segment is
// missing or an intermediate node is not a mapping.
func Lookup(tree *yaml.Node, path string) *yaml.Node {
	node := tree
	for _, part := range strings.Split(path, ".") {
		node = Child(node, part)
		if node == nil {
			return nil
		}
	}
	return node
}

// Copy returns a deep copy of n.
func Copy(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Content = make([]*yaml.Node, len(n.Content))
	for i, child := range n.Content {
		c.Content[i] = Copy(child)
	}
	return &c
}

// Equal reports whether two leaves hold the same text. Arrays compare
// item by item.
func Equal(a, b *yaml.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Value != b.Value || len(a.Content) != len(b.Content) {
		return false
	}
	for i := range a.Content {
		if !Equal(a.Content[i], b.Content[i]) {
			return false
		}
	}
	return true
}

// LeafText renders a leaf as a single line of text. Array items are joined
// with " | ".
func LeafText(n *yaml.Node) string {
	if IsArray(n) {
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			items = append(items, item.Value)
		}
		return strings.Join(items, " | ")
	}
	if n == nil {
		return ""
	}
	return n.Value
}
