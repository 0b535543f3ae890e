package parser

import (
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/linux-command-library/lcl/internal/model"
)

// nameKeys is the explicit name fallback chain tried before the filename stem.
var nameKeys = []string{"name", "command", "title"}

// CategorySet is the strict-mode allow-list of category names.
type CategorySet map[string]struct{}

// NewCategorySet builds a CategorySet from names, ignoring blanks.
func NewCategorySet(names []string) CategorySet {
	set := make(CategorySet, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Contains reports whether name is allowed.
func (s CategorySet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the allowed names in sorted order.
func (s CategorySet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Source describes where a decoded YAML value came from and how its records
// should be categorized.
type Source struct {
	// Path is the file the value was read from.
	Path string

	// CategoryDir is the category inferred from the enclosing top-level
	// directory, or "" for files directly under the catalog root.
	CategoryDir string

	// Strict enables the category allow-list.
	Strict  bool
	Allowed CategorySet

	// RecordBase offsets record indexes, for files holding several YAML documents.
	RecordBase int
}

// Normalize turns one decoded YAML value into Documents.
//
// A mapping yields one record; a sequence yields one record per mapping
// element. Anything that cannot become a Document is reported in the
// returned issues and skipped.
func Normalize(root *yaml.Node, src Source) ([]model.Document, []Issue) {
	root = resolve(root)
	if root != nil && root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = resolve(root.Content[0])
	}

	var docs []model.Document
	var issues []Issue

	switch {
	case isNull(root):
		issues = append(issues, Issue{Kind: IssueRecordShape, Path: src.Path, Record: src.RecordBase, Message: "empty YAML document"})

	case root.Kind == yaml.MappingNode:
		doc, recIssues, ok := normalizeRecord(root, src, src.RecordBase)
		issues = append(issues, recIssues...)
		if ok {
			docs = append(docs, doc)
		}

	case root.Kind == yaml.SequenceNode:
		for i, item := range root.Content {
			record := src.RecordBase + i
			item = resolve(item)
			if item == nil || item.Kind != yaml.MappingNode {
				issues = append(issues, Issue{
					Kind:    IssueRecordShape,
					Path:    src.Path,
					Record:  record,
					Message: "list item is a " + kindName(item) + ", not a mapping",
				})
				continue
			}
			doc, recIssues, ok := normalizeRecord(item, src, record)
			issues = append(issues, recIssues...)
			if ok {
				docs = append(docs, doc)
			}
		}

	default:
		issues = append(issues, Issue{
			Kind:    IssueRecordShape,
			Path:    src.Path,
			Record:  -1,
			Message: "top-level value is a " + kindName(root) + ", not a mapping or list",
		})
	}

	return docs, issues
}

// RecordCount returns how many record slots a root value occupies, so the
// next YAML document in the same file can continue the numbering.
func RecordCount(root *yaml.Node) int {
	root = resolve(root)
	if root != nil && root.Kind == yaml.SequenceNode {
		return len(root.Content)
	}
	return 1
}

func normalizeRecord(m *yaml.Node, src Source, record int) (model.Document, []Issue, bool) {
	var issues []Issue
	stamp := func(in []Issue) {
		for _, is := range in {
			is.Path = src.Path
			is.Record = record
			issues = append(issues, is)
		}
	}

	name := recordName(m, src.Path)
	if name == "" {
		stamp([]Issue{{Kind: IssueRecordShape, Message: "record has no name and none could be derived"}})
		return model.Document{}, issues, false
	}

	doc := model.Document{
		Name: name,
		Provenance: model.Provenance{
			SourcePath:  src.Path,
			CategoryDir: src.CategoryDir,
			Record:      record,
		},
	}

	category, catIssues := recordCategory(m, src)
	stamp(catIssues)
	doc.Category = category

	var fieldIssues []Issue
	var fi []Issue

	doc.Description, fi = decodeText("description", lookup(m, "description"))
	fieldIssues = append(fieldIssues, fi...)

	usageNode, usageKey := lookupFirst(m, "usage", "syntax")
	doc.Usage, fi = decodeText(usageKey, usageNode)
	fieldIssues = append(fieldIssues, fi...)

	doc.Options, fi = decodeOptions(lookup(m, "options"))
	fieldIssues = append(fieldIssues, fi...)

	examplesNode, _ := lookupFirst(m, "examples", "Examples")
	doc.Examples, fi = decodeExamples(examplesNode)
	fieldIssues = append(fieldIssues, fi...)

	var tags []string
	tags, fi = decodeStringList("tags", lookup(m, "tags"), true)
	fieldIssues = append(fieldIssues, fi...)
	doc.Tags = tagSet(tags)

	doc.Notes, fi = decodeStringList("notes", lookup(m, "notes"), false)
	fieldIssues = append(fieldIssues, fi...)

	relatedNode, relatedKey := lookupFirst(m, "related_commands", "related")
	doc.Related, fi = decodeStringList(relatedKey, relatedNode, true)
	fieldIssues = append(fieldIssues, fi...)

	if risk, ok := scalarText(lookup(m, "risk")); ok {
		doc.Dangerous = strings.EqualFold(strings.TrimSpace(risk), "dangerous")
	}

	stamp(fieldIssues)

	var raw map[string]any
	if err := m.Decode(&raw); err == nil {
		doc.Raw = raw
	}

	doc.SearchText = model.Fold(optionSearchText(doc.Options))
	return doc, issues, true
}

// recordName walks the fallback chain: explicit keys, then the file stem.
func recordName(m *yaml.Node, path string) string {
	for _, key := range nameKeys {
		if v, ok := scalarText(lookup(m, key)); ok {
			if v = cleanText(v); v != "" {
				return v
			}
		}
	}
	base := filepath.Base(path)
	return cleanText(strings.TrimSuffix(base, filepath.Ext(base)))
}

func recordCategory(m *yaml.Node, src Source) (string, []Issue) {
	category := ""
	if v, ok := scalarText(lookup(m, "category")); ok {
		category = cleanText(v)
	}
	if category == "" {
		category = src.CategoryDir
	}
	if category == "" {
		return model.UncategorizedCategory, nil
	}
	if src.Strict && !src.Allowed.Contains(category) {
		return model.UncategorizedCategory, []Issue{{
			Kind:    IssueFieldShape,
			Field:   "category",
			Message: "category " + category + " is not in the allow-list; filed as " + model.UncategorizedCategory,
		}}
	}
	return category, nil
}

func tagSet(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := slices.Clone(tags)
	slices.Sort(out)
	return slices.Compact(out)
}
