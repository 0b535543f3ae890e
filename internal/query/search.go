// Package query implements the tiered command search and the default
// category browse order.
//
// Search runs in two tiers. An exact (case-folded) name match wins outright
// and suppresses everything else; only when no name matches exactly is the
// partial, multi-field match evaluated. There is no relevance scoring:
// results keep catalog order.
package query

import (
	"slices"
	"strings"
	"unicode"

	"github.com/linux-command-library/lcl/internal/model"
)

// DefaultCap is the maximum number of partial matches returned.
const DefaultCap = 50

// DefaultAliases maps lexical variants found in queries to the spellings used
// in category names. A term containing a key also matches a category that
// contains any of the key's values.
var DefaultAliases = map[string][]string{
	"networking":      {"network"},
	"archiving":       {"archive"},
	"archives":        {"archive"},
	"compressing":     {"compression"},
	"filtering":       {"filter"},
	"groups":          {"group"},
	"monitoring":      {"monitor"},
	"packages":        {"package"},
	"permissions":     {"permission"},
	"processes":       {"process"},
	"searching":       {"search"},
	"troubleshooting": {"troubleshoot"},
	"users":           {"user"},
	"wildcard":        {"wildcards"},
}

// separators are treated like whitespace when deciding whether a query is empty.
const separators = "_-,;/|."

// Tier identifies which stage of the search produced a result.
type Tier int

const (
	// TierBrowse is the empty query: every document in browse order.
	TierBrowse Tier = iota
	// TierExact means one or more names matched the query exactly.
	TierExact
	// TierPartial means the multi-field substring match produced results.
	TierPartial
	// TierNone means nothing matched.
	TierNone
)

func (t Tier) String() string {
	switch t {
	case TierBrowse:
		return "browse"
	case TierExact:
		return "exact"
	case TierPartial:
		return "partial"
	case TierNone:
		return "none"
	default:
		return "unknown"
	}
}

// MarshalText renders the tier by name in JSON output.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Source is anything that can hand out an ordered document list, such as a
// catalog snapshot.
type Source interface {
	Documents() []model.Document
}

// Documents adapts a plain slice to Source.
type Documents []model.Document

// Documents returns the slice itself.
func (d Documents) Documents() []model.Document { return d }

// Result is the outcome of one search.
type Result struct {
	Query     string           `json:"query"`
	Tier      Tier             `json:"tier"`
	Documents []model.Document `json:"documents"`

	// Total counts every match before the cap was applied.
	Total     int  `json:"total"`
	Truncated bool `json:"truncated"`
}

// Engine runs searches. The zero value uses DefaultCap and no aliases; use
// NewEngine to get the default alias table.
type Engine struct {
	cap     int
	aliases []alias
}

type alias struct {
	key    string
	values []string
}

// NewEngine returns an Engine with the given partial-match limit (<= 0 means
// DefaultCap) and alias table (nil means DefaultAliases).
func NewEngine(limit int, aliases map[string][]string) *Engine {
	if aliases == nil {
		aliases = DefaultAliases
	}
	e := &Engine{cap: limit}
	for key, values := range aliases {
		k := model.Fold(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		a := alias{key: k}
		for _, v := range values {
			if v = model.Fold(strings.TrimSpace(v)); v != "" {
				a.values = append(a.values, v)
			}
		}
		if len(a.values) > 0 {
			e.aliases = append(e.aliases, a)
		}
	}
	slices.SortFunc(e.aliases, func(a, b alias) int { return strings.Compare(a.key, b.key) })
	return e
}

// Cap returns the effective partial-match cap.
func (e *Engine) Cap() int {
	if e == nil || e.cap <= 0 {
		return DefaultCap
	}
	return e.cap
}

// Search evaluates query against the documents of src. It has no side
// effects; the same source and query always produce the same result.
func (e *Engine) Search(src Source, query string) Result {
	docs := src.Documents()
	q := NormalizeQuery(query)
	res := Result{Query: q}

	if q == "" {
		res.Tier = TierBrowse
		res.Documents = Order(docs)
		res.Total = len(res.Documents)
		return res
	}

	// Tier 1: exact name. Never mixed with partial matches.
	for _, d := range docs {
		if model.Fold(d.Name) == q {
			res.Documents = append(res.Documents, d)
		}
	}
	if len(res.Documents) > 0 {
		res.Tier = TierExact
		res.Total = len(res.Documents)
		return res
	}

	// Tier 2: any term in any field, catalog order, capped.
	terms := Terms(q)
	limit := e.Cap()
	res.Documents = []model.Document{}
	for _, d := range docs {
		if !e.matchesAny(d, terms) {
			continue
		}
		res.Total++
		if len(res.Documents) < limit {
			res.Documents = append(res.Documents, d)
		}
	}
	res.Truncated = res.Total > len(res.Documents)
	if res.Total == 0 {
		res.Tier = TierNone
	} else {
		res.Tier = TierPartial
	}
	return res
}

// NormalizeQuery trims and case-folds a query. A query made only of
// whitespace and separator characters normalizes to "".
func NormalizeQuery(query string) string {
	q := model.Fold(strings.TrimSpace(query))
	if isSeparatorOnly(q) {
		return ""
	}
	return q
}

// Terms splits a normalized query on whitespace, dropping separator-only terms.
func Terms(q string) []string {
	fields := strings.Fields(q)
	terms := fields[:0]
	for _, f := range fields {
		if !isSeparatorOnly(f) {
			terms = append(terms, f)
		}
	}
	return terms
}

func isSeparatorOnly(s string) bool {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
	}) == ""
}

var categorySpacer = strings.NewReplacer("_", " ", "-", " ")

func (e *Engine) matchesAny(d model.Document, terms []string) bool {
	name := model.Fold(d.Name)
	category := model.Fold(d.Category)
	spaced := categorySpacer.Replace(category)

	for _, term := range terms {
		if strings.Contains(name, term) ||
			strings.Contains(category, term) ||
			strings.Contains(spaced, term) ||
			strings.Contains(d.SearchText, term) {
			return true
		}
		if e.aliasMatch(term, category, spaced) {
			return true
		}
	}
	return false
}

func (e *Engine) aliasMatch(term, category, spaced string) bool {
	if e == nil {
		return false
	}
	for _, a := range e.aliases {
		if !strings.Contains(term, a.key) {
			continue
		}
		for _, v := range a.values {
			if strings.Contains(category, v) || strings.Contains(spaced, v) {
				return true
			}
		}
	}
	return false
}
