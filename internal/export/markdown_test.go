package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linux-command-library/lcl/internal/model"
)

func TestMarkdown(t *testing.T) {
	doc := model.Document{
		Name:        "rm",
		Category:    "File_Directory_Mgmt",
		Description: "remove files or directories",
		Usage:       "rm [OPTION]... FILE...",
		Options: []model.Option{
			{Flags: []string{"-r", "--recursive"}, Explanation: "remove directories and their contents"},
			{Flags: []string{"-f"}},
		},
		Examples:   []string{"rm -rf build/"},
		Notes:      []string{"there is no undo"},
		Related:    []string{"rmdir", "shred"},
		Tags:       []string{"delete", "files"},
		Dangerous:  true,
		Provenance: model.Provenance{SourcePath: "data/commands/File_Directory_Mgmt/rm.yml"},
	}

	want := "# rm\n" +
		"\nremove files or directories\n" +
		"\n> **Warning:** this command can destroy data or disrupt the system.\n" +
		"\n## Usage\n\n```bash\nrm [OPTION]... FILE...\n```\n\n" +
		"\n## Options\n\n" +
		"- `-r`, `--recursive`: remove directories and their contents\n" +
		"- `-f`\n" +
		"\n## Examples\n\n```bash\nrm -rf build/\n```\n\n" +
		"\n## Notes\n\n- there is no undo\n" +
		"\n**See also:** `rmdir`, `shred`\n" +
		"\n*category:* File_Directory_Mgmt\n" +
		"\n*tags:* delete, files\n" +
		"\n[source](data/commands/File_Directory_Mgmt/rm.yml)\n"

	assert.Equal(t, want, Markdown(doc, Options{SourceLink: true}))
}

func TestMarkdownMinimal(t *testing.T) {
	got := Markdown(model.Document{Name: "true", Category: "uncategorized", Provenance: model.Provenance{SourcePath: "x.yml"}}, Options{})
	assert.Equal(t, "# true\n\n*category:* uncategorized\n", got)
}

func TestMarkdownFenceEscapes(t *testing.T) {
	got := Markdown(model.Document{Name: "x", Category: "c", Usage: "echo ```"}, Options{})
	assert.True(t, strings.Contains(got, "````bash\necho ```\n````"), got)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "net-cat.md", Filename(model.Document{Name: "Net Cat"}))
	assert.Equal(t, "command.md", Filename(model.Document{Name: "["}))
}
