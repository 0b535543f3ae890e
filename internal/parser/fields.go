package parser

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/linux-command-library/lcl/internal/model"
)

// Keys accepted inside a structured option entry. Older files used
// flag/description or flag/meaning/explains; newer ones use flags/explanation.
var (
	optionFlagKeys        = []string{"flags", "flag"}
	optionExplanationKeys = []string{"explanation", "description", "meaning", "explains"}
)

func fieldIssue(field string, kind IssueKind, format string, args ...any) Issue {
	return Issue{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// decodeOptions converts any of the historical option shapes into a list of
// Options. Entries carrying corrupted text are dropped and reported.
func decodeOptions(n *yaml.Node) ([]model.Option, []Issue) {
	n = resolve(n)
	if isNull(n) {
		return nil, nil
	}

	var opts []model.Option
	var issues []Issue

	switch n.Kind {
	case yaml.ScalarNode:
		// options: "-v"
		if flags := splitFlags(cleanText(n.Value)); len(flags) > 0 {
			opts = append(opts, model.Option{Flags: flags})
		}

	case yaml.MappingNode:
		// options: {"-v": "verbose output", "-q": "quiet"}
		for _, p := range pairs(n) {
			opts = append(opts, model.Option{
				Flags:       splitFlags(cleanText(p.key)),
				Explanation: flatText(p.value),
			})
		}

	case yaml.SequenceNode:
		for i, item := range n.Content {
			opt, ok, issue := decodeOptionEntry(item)
			if issue != "" {
				issues = append(issues, fieldIssue(fmt.Sprintf("options[%d]", i), IssueFieldShape, "%s", issue))
			}
			if ok {
				opts = append(opts, opt)
			}
		}

	default:
		issues = append(issues, fieldIssue("options", IssueFieldShape, "unsupported options shape %s", kindName(n)))
		return nil, issues
	}

	kept := opts[:0]
	for _, opt := range opts {
		if anyCorrupted(append(slices.Clone(opt.Flags), opt.Explanation)...) {
			issues = append(issues, fieldIssue("options", IssueCorrupted, "dropped corrupted option %q", opt.FlagText()))
			continue
		}
		if len(opt.Flags) == 0 {
			if opt.Explanation == "" {
				continue
			}
			opt.Flags = nil
		}
		kept = append(kept, opt)
	}
	return kept, issues
}

// splitFlags splits "-a, --all" into its spellings.
func splitFlags(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// decodeOptionEntry decodes one element of an options sequence.
func decodeOptionEntry(item *yaml.Node) (model.Option, bool, string) {
	item = resolve(item)
	if isNull(item) {
		return model.Option{}, false, ""
	}

	switch item.Kind {
	case yaml.ScalarNode:
		flags := splitFlags(cleanText(item.Value))
		if len(flags) == 0 {
			return model.Option{}, false, ""
		}
		return model.Option{Flags: flags}, true, ""

	case yaml.MappingNode:
		flagsNode, _ := lookupFirst(item, optionFlagKeys...)
		explNode, _ := lookupFirst(item, optionExplanationKeys...)
		if flagsNode == nil && explNode == nil {
			// {"-v": "verbose output"} written as a list element.
			ps := pairs(item)
			if len(ps) == 1 {
				return model.Option{
					Flags:       splitFlags(cleanText(ps[0].key)),
					Explanation: flatText(ps[0].value),
				}, true, ""
			}
			return model.Option{}, false, "option entry has no flag or explanation"
		}

		opt := model.Option{Explanation: flatText(explNode)}
		switch {
		case flagsNode == nil:
		case flagsNode.Kind == yaml.SequenceNode:
			for _, f := range flagsNode.Content {
				opt.Flags = append(opt.Flags, splitFlags(flatText(f))...)
			}
		default:
			opt.Flags = splitFlags(flatText(flagsNode))
		}
		if len(opt.Flags) == 0 && opt.Explanation == "" {
			return model.Option{}, false, "option entry is empty"
		}
		return opt, true, ""

	default:
		return model.Option{}, false, fmt.Sprintf("unsupported option entry %s", kindName(item))
	}
}

// decodeExamples flattens examples into free-text lines.
func decodeExamples(n *yaml.Node) ([]string, []Issue) {
	n = resolve(n)
	if isNull(n) {
		return nil, nil
	}

	var out []string
	var issues []Issue

	switch n.Kind {
	case yaml.ScalarNode:
		if v := cleanText(n.Value); v != "" {
			out = append(out, v)
		}

	case yaml.MappingNode:
		for _, p := range pairs(n) {
			out = append(out, p.key+": "+flatText(p.value))
		}

	case yaml.SequenceNode:
		for i, item := range n.Content {
			item = resolve(item)
			if isNull(item) {
				continue
			}
			switch item.Kind {
			case yaml.ScalarNode:
				if v := cleanText(item.Value); v != "" {
					out = append(out, v)
				}
			case yaml.MappingNode:
				if v := keyValueTokens(item); v != "" {
					out = append(out, v)
				}
			case yaml.SequenceNode:
				if v := flatText(item); v != "" {
					out = append(out, v)
				}
			default:
				issues = append(issues, fieldIssue(fmt.Sprintf("examples[%d]", i), IssueFieldShape, "unsupported example entry %s", kindName(item)))
			}
		}

	default:
		issues = append(issues, fieldIssue("examples", IssueFieldShape, "unsupported examples shape %s", kindName(n)))
	}

	return out, issues
}

// decodeStringList reads a list of strings from a sequence or a single scalar.
// With splitCommas, a scalar like "net, dns" yields two entries.
func decodeStringList(field string, n *yaml.Node, splitCommas bool) ([]string, []Issue) {
	n = resolve(n)
	if isNull(n) {
		return nil, nil
	}

	switch n.Kind {
	case yaml.ScalarNode:
		if !splitCommas {
			if v := cleanText(n.Value); v != "" {
				return []string{v}, nil
			}
			return nil, nil
		}
		var out []string
		for _, part := range strings.Split(n.Value, ",") {
			if v := cleanText(part); v != "" {
				out = append(out, v)
			}
		}
		return out, nil

	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if v := flatText(item); v != "" {
				out = append(out, v)
			}
		}
		return out, nil

	default:
		return nil, []Issue{fieldIssue(field, IssueFieldShape, "expected a string or list, got %s", kindName(n))}
	}
}

// decodeText reads a free-text field. Sequences are joined line by line so a
// description written as a list still reads naturally.
func decodeText(field string, n *yaml.Node) (string, []Issue) {
	n = resolve(n)
	if isNull(n) {
		return "", nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return cleanText(n.Value), nil
	case yaml.SequenceNode:
		lines := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if v := flatText(item); v != "" {
				lines = append(lines, v)
			}
		}
		return strings.Join(lines, "\n"), nil
	default:
		return flatText(n), []Issue{fieldIssue(field, IssueFieldShape, "expected text, got %s", kindName(n))}
	}
}

// optionSearchText builds the folded search text for a set of options.
func optionSearchText(opts []model.Option) string {
	if len(opts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, opt := range opts {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(opt.Flags, " "))
		if opt.Explanation != "" {
			b.WriteByte(' ')
			b.WriteString(opt.Explanation)
		}
	}
	return b.String()
}
