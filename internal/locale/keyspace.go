package locale

import (
	"gopkg.in/yaml.v3"
)

// KeySpace is the ordered set of dotted key paths of a translation tree.
type KeySpace struct {
	keys  []string
	index map[string]struct{}
}

// NewKeySpace builds a key space from keys in the given order. Duplicates
// keep their first position.
func NewKeySpace(keys ...string) *KeySpace {
	ks := &KeySpace{index: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		ks.add(k)
	}
	return ks
}

func (ks *KeySpace) add(key string) {
	if _, ok := ks.index[key]; ok {
		return
	}
	ks.index[key] = struct{}{}
	ks.keys = append(ks.keys, key)
}

// Contains reports whether key is in the key space.
func (ks *KeySpace) Contains(key string) bool {
	if ks == nil {
		return false
	}
	_, ok := ks.index[key]
	return ok
}

// Keys returns the key paths in flattening order.
func (ks *KeySpace) Keys() []string {
	if ks == nil {
		return nil
	}
	out := make([]string, len(ks.keys))
	copy(out, ks.keys)
	return out
}

// Len returns the number of key paths.
func (ks *KeySpace) Len() int {
	if ks == nil {
		return 0
	}
	return len(ks.keys)
}

// Flatten returns the key space of tree: one dotted path per leaf,
// depth-first in insertion order. Arrays are not descended into.
func Flatten(tree *yaml.Node) *KeySpace {
	ks := NewKeySpace()
	flattenNode("", tree, func(key string, _ *yaml.Node) {
		ks.add(key)
	})
	return ks
}

// Values returns every leaf of tree keyed by its dotted path.
func Values(tree *yaml.Node) map[string]*yaml.Node {
	values := make(map[string]*yaml.Node)
	flattenNode("", tree, func(key string, leaf *yaml.Node) {
		values[key] = leaf
	})
	return values
}

// flattenNode walks a mapping node and reports each leaf with its
// dotted path.
func flattenNode(prefix string, node *yaml.Node, leaf func(string, *yaml.Node)) {
	Entries(node, func(k string, v *yaml.Node) {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if IsMapping(v) {
			flattenNode(key, v, leaf)
			return
		}
		leaf(key, v)
	})
}
