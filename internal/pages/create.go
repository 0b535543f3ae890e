// Package pages writes new command files into the commands tree.
package pages

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/linux-command-library/lcl/internal/atomicfile"
	"github.com/linux-command-library/lcl/internal/library"
	"github.com/linux-command-library/lcl/internal/slugs"
)

// ErrInvalidCategory is returned for category names that cannot be used as a
// directory name.
var ErrInvalidCategory = errors.New("invalid category directory")

// fieldOrder is the key order used when a record is written out. Keys not
// listed follow in sorted order.
var fieldOrder = []string{
	"name", "command", "title", "category", "description", "usage", "syntax",
	"options", "examples", "tags", "notes", "related_commands", "risk",
}

// CreateOptions configures command file creation.
type CreateOptions struct {
	// Root is the commands directory.
	Root string

	// Record is the command as it will be written. Its "category" value
	// names the target directory.
	Record map[string]any
}

// CreateResult describes the file that was written.
type CreateResult struct {
	FilePath     string `json:"file"`
	RelativePath string `json:"relative_path"`
}

// PlanPath returns the path a new command called name should be written to:
// <root>/<category>/<slug>.yml, or <slug>-2.yml, <slug>-3.yml, ... when the
// name is already taken by a .yml or .yaml file. The path is checked to stay inside root.
func PlanPath(root, category, name string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" || category == "." || category == ".." ||
		strings.HasPrefix(category, ".") || strings.ContainsAny(category, `/\`) {
		return "", fmt.Errorf("%q: %w", category, ErrInvalidCategory)
	}

	dir := filepath.Join(root, category)
	base := slugs.Filename(name)

	for i := 1; ; i++ {
		stem := base
		if i > 1 {
			stem = base + "-" + strconv.Itoa(i)
		}
		path := filepath.Join(dir, stem+".yml")

		// Security: verify path is within the commands directory
		if err := library.ValidateWithinRoot(root, path); err != nil {
			return "", err
		}

		taken, err := stemTaken(filepath.Join(dir, stem))
		if err != nil {
			return "", err
		}
		if !taken {
			return path, nil
		}
	}
}

// stemTaken reports whether stem.yml or stem.yaml exists.
func stemTaken(stem string) (bool, error) {
	for _, ext := range []string{".yml", ".yaml"} {
		_, err := os.Stat(stem + ext)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("failed to check %s: %w", stem+ext, err)
		}
	}
	return false, nil
}

// Create writes opts.Record to a new file under its category directory.
func Create(opts CreateOptions) (*CreateResult, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("commands directory is required")
	}

	category, _ := opts.Record["category"].(string)
	name := recordName(opts.Record)

	path, err := PlanPath(opts.Root, category, name)
	if err != nil {
		return nil, err
	}

	content, err := Marshal(opts.Record)
	if err != nil {
		return nil, err
	}

	if err := atomicfile.WriteFile(path, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	rel, _ := filepath.Rel(opts.Root, path)
	return &CreateResult{FilePath: path, RelativePath: rel}, nil
}

// Marshal encodes a record as YAML with the conventional key order.
func Marshal(record map[string]any) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range orderedKeys(record) {
		var value yaml.Node
		if err := value.Encode(record[key]); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func orderedKeys(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	for _, k := range fieldOrder {
		if _, ok := record[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range record {
		if !slices.Contains(fieldOrder, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

func recordName(record map[string]any) string {
	for _, key := range []string{"name", "command", "title"} {
		if s, ok := record[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
