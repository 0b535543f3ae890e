package editor

import (
	"fmt"
	"strings"
)

// Template returns the starting YAML for a new command.
func Template(name, category string, categories []string) []byte {
	if name == "" {
		name = "my-command"
	}
	if category == "" {
		category = "File_Directory_Mgmt"
	}

	var b strings.Builder
	b.WriteString("# New command. Save and quit to add it; quit without saving to cancel.\n")
	if len(categories) > 0 {
		b.WriteString("# Categories: " + strings.Join(categories, ", ") + "\n")
	}
	fmt.Fprintf(&b, "name: %s\n", name)
	fmt.Fprintf(&b, "category: %s\n", category)
	b.WriteString(`description: ""
usage: ""
options:
  - flags: ["-h", "--help"]
    explanation: show help and exit
examples:
  - ""
tags: []
# risk: dangerous
`)
	return []byte(b.String())
}
