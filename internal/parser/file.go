package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrEmptyFile is returned by DecodeFile when the input holds no YAML document.
var ErrEmptyFile = errors.New("empty YAML file")

// DecodeFile decodes every YAML document in data and returns their root
// nodes in order. Documents that decode to nothing (comments only) are left out.
//
// Nodes are returned rather than maps so the normalizer sees mapping keys in
// source order.
func DecodeFile(data []byte) ([]*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	var roots []*yaml.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if len(doc.Content) == 0 {
			continue
		}
		roots = append(roots, doc.Content[0])
	}

	if len(roots) == 0 {
		return nil, ErrEmptyFile
	}
	return roots, nil
}
