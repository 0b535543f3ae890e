package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/linux-command-library/lcl/internal/model"
)

// Group is one category header and its documents in browse order.
type Group struct {
	Category  string           `json:"category"`
	Documents []model.Document `json:"documents"`
}

// Groups buckets docs by category. Categories are sorted case-insensitively
// and so are the names inside each category. The result does not depend on
// the order of docs.
func Groups(docs []model.Document) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, d := range docs {
		i, ok := index[d.Category]
		if !ok {
			i = len(groups)
			index[d.Category] = i
			groups = append(groups, Group{Category: d.Category})
		}
		groups[i].Documents = append(groups[i].Documents, d)
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		return cmp.Or(
			strings.Compare(model.Fold(a.Category), model.Fold(b.Category)),
			strings.Compare(a.Category, b.Category),
		)
	})
	for i := range groups {
		slices.SortStableFunc(groups[i].Documents, compareByName)
	}
	return groups
}

// Order returns docs in the default browse order: the concatenation of Groups.
func Order(docs []model.Document) []model.Document {
	out := make([]model.Document, 0, len(docs))
	for _, g := range Groups(docs) {
		out = append(out, g.Documents...)
	}
	return out
}

func compareByName(a, b model.Document) int {
	return cmp.Or(
		strings.Compare(model.Fold(a.Name), model.Fold(b.Name)),
		strings.Compare(a.Name, b.Name),
		strings.Compare(a.Provenance.SourcePath, b.Provenance.SourcePath),
		cmp.Compare(a.Provenance.Record, b.Provenance.Record),
	)
}
