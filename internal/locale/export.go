package locale

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EncodeYAML writes tree as a YAML document, keeping key order.
func EncodeYAML(w io.Writer, tree *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return err
	}
	return enc.Close()
}

// EncodeJSON writes tree as indented JSON, keeping key order.
func EncodeJSON(w io.Writer, tree *yaml.Node) error {
	var buf bytes.Buffer
	if err := writeJSON(&buf, tree); err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		if !IsString(n) {
			buf.WriteString(n.Value)
			return nil
		}
		v, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(v)
	}
	return nil
}

// Messages flattens tree into message IDs and texts. Array items get
// their index as a final path segment and null leaves are skipped.
func Messages(tree *yaml.Node) map[string]string {
	msgs := make(map[string]string)
	flattenNode("", tree, func(key string, leaf *yaml.Node) {
		switch {
		case IsArray(leaf):
			for i, item := range leaf.Content {
				msgs[key+"."+strconv.Itoa(i)] = item.Value
			}
		case leaf.Tag == "!!null":
		default:
			msgs[key] = leaf.Value
		}
	})
	return msgs
}

// EncodeTOML writes tree as a flat TOML message file, one quoted dotted
// ID per line, sorted by ID.
func EncodeTOML(w io.Writer, tree *yaml.Node) error {
	data, err := toml.Marshal(Messages(tree))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
