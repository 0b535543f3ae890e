// Package export renders commands as Markdown.
package export

import (
	"fmt"
	"strings"

	"github.com/linux-command-library/lcl/internal/model"
	"github.com/linux-command-library/lcl/internal/slugs"
)

// Options controls optional parts of the Markdown output.
type Options struct {
	// SourceLink appends a link to the file the command was loaded from.
	SourceLink bool
}

// Markdown renders doc as a standalone Markdown document.
func Markdown(doc model.Document, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", doc.Name)
	if doc.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", doc.Description)
	}
	if doc.Dangerous {
		b.WriteString("\n> **Warning:** this command can destroy data or disrupt the system.\n")
	}

	if doc.Usage != "" {
		b.WriteString("\n## Usage\n\n")
		codeBlock(&b, doc.Usage)
	}

	if len(doc.Options) > 0 {
		b.WriteString("\n## Options\n\n")
		for _, opt := range doc.Options {
			flags := make([]string, 0, len(opt.Flags))
			for _, f := range opt.Flags {
				flags = append(flags, "`"+f+"`")
			}
			switch {
			case len(flags) == 0:
				fmt.Fprintf(&b, "- %s\n", opt.Explanation)
			case opt.Explanation == "":
				fmt.Fprintf(&b, "- %s\n", strings.Join(flags, ", "))
			default:
				fmt.Fprintf(&b, "- %s: %s\n", strings.Join(flags, ", "), opt.Explanation)
			}
		}
	}

	if len(doc.Examples) > 0 {
		b.WriteString("\n## Examples\n\n")
		for _, ex := range doc.Examples {
			codeBlock(&b, ex)
		}
	}

	if len(doc.Notes) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, note := range doc.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	if len(doc.Related) > 0 {
		related := make([]string, 0, len(doc.Related))
		for _, r := range doc.Related {
			related = append(related, "`"+r+"`")
		}
		fmt.Fprintf(&b, "\n**See also:** %s\n", strings.Join(related, ", "))
	}

	fmt.Fprintf(&b, "\n*category:* %s\n", doc.Category)
	if len(doc.Tags) > 0 {
		fmt.Fprintf(&b, "\n*tags:* %s\n", strings.Join(doc.Tags, ", "))
	}
	if opts.SourceLink && doc.Provenance.SourcePath != "" {
		fmt.Fprintf(&b, "\n[source](%s)\n", doc.Provenance.SourcePath)
	}

	return b.String()
}

func codeBlock(b *strings.Builder, body string) {
	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}
	fmt.Fprintf(b, "%sbash\n%s\n%s\n\n", fence, strings.TrimRight(body, "\n"), fence)
}

// Filename is the default export file name for doc.
func Filename(doc model.Document) string {
	return slugs.Filename(doc.Name) + ".md"
}
