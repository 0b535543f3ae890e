package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// resolve follows YAML aliases to the node they point at.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	n = resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// lookup returns the value node stored under key in a mapping node.
func lookup(m *yaml.Node, key string) *yaml.Node {
	m = resolve(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolve(m.Content[i+1])
		}
	}
	return nil
}

// lookupFirst returns the first non-null value found under any of keys.
func lookupFirst(m *yaml.Node, keys ...string) (*yaml.Node, string) {
	for _, k := range keys {
		if v := lookup(m, k); !isNull(v) {
			return v, k
		}
	}
	return nil, ""
}

// pair is one key/value entry of a mapping node.
type pair struct {
	key   string
	value *yaml.Node
}

// pairs lists the entries of a mapping node in source order.
func pairs(m *yaml.Node) []pair {
	m = resolve(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	out := make([]pair, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		out = append(out, pair{key: m.Content[i].Value, value: resolve(m.Content[i+1])})
	}
	return out
}

// scalarText returns the text of a scalar node, or "" for anything else.
func scalarText(n *yaml.Node) (string, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", false
	}
	return n.Value, true
}

// flatText renders any node as a single line of text: scalars as-is,
// sequences space-joined, mappings as space-joined key=value tokens.
func flatText(n *yaml.Node) string {
	n = resolve(n)
	if isNull(n) {
		return ""
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return cleanText(n.Value)
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if t := flatText(c); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, " ")
	case yaml.MappingNode:
		return keyValueTokens(n)
	}
	return ""
}

// keyValueTokens flattens a mapping to "k1=v1 k2=v2" in source order.
func keyValueTokens(m *yaml.Node) string {
	ps := pairs(m)
	tokens := make([]string, 0, len(ps))
	for _, p := range ps {
		tokens = append(tokens, p.key+"="+flatText(p.value))
	}
	return strings.Join(tokens, " ")
}

func kindName(n *yaml.Node) string {
	n = resolve(n)
	if n == nil {
		return "nothing"
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "null"
		}
		return "scalar"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.DocumentNode:
		return "document"
	}
	return "unknown"
}
