package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linux-command-library/lcl/internal/parser"
	"github.com/linux-command-library/lcl/internal/testutil"
)

func collect(t *testing.T, root string, opts WalkOptions) ([]WalkResult, WalkStats) {
	t.Helper()
	var results []WalkResult
	stats, err := Walk(root, opts, func(r WalkResult) error {
		results = append(results, r)
		return nil
	})
	require.NoError(t, err)
	return results, stats
}

func relPaths(results []WalkResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, filepath.ToSlash(r.RelativePath))
	}
	return out
}

func TestWalkLenient(t *testing.T) {
	lib := testutil.NewLibrary(t).
		WithFile("Zeta/z.yml", "name: z\n").
		WithFile("Alpha/b.yaml", "name: b\n").
		WithFile("Alpha/a.yml", "name: a\n").
		WithFile("Alpha/nested/c.yml", "name: c\n").
		WithFile("Alpha/readme.txt", "not a command").
		WithFile("Alpha/.draft.yml", "name: hidden\n").
		WithFile(".git/config.yml", "name: git\n").
		WithFile("top.yml", "name: top\n").
		Build()

	results, stats := collect(t, lib.Path, WalkOptions{})

	assert.Equal(t, []string{
		"Alpha/a.yml",
		"Alpha/b.yaml",
		"Alpha/nested/c.yml",
		"Zeta/z.yml",
		"top.yml",
	}, relPaths(results))

	assert.Equal(t, "Alpha", results[2].CategoryDir)
	assert.Equal(t, "", results[4].CategoryDir)
	assert.Equal(t, "name: a\n", string(results[0].Content))
	// root, Alpha, Alpha/nested, Zeta
	assert.Equal(t, 4, stats.DirsScanned)
}

func TestWalkStrict(t *testing.T) {
	lib := testutil.NewLibrary(t).
		WithFile("Networking_Tools/ping.yml", "name: ping\n").
		WithFile("Scratch/tmp.yml", "name: tmp\n").
		WithFile("loose.yml", "name: loose\n").
		Build()

	opts := WalkOptions{
		Strict:  true,
		Allowed: parser.NewCategorySet([]string{"Networking_Tools", "Process_Management"}),
	}
	results, stats := collect(t, lib.Path, opts)

	assert.Equal(t, []string{"Networking_Tools/ping.yml"}, relPaths(results))
	assert.Equal(t, []string{"Process_Management"}, stats.MissingDirs)
}

func TestWalkDeterministic(t *testing.T) {
	lib := testutil.GrepFixture(t)

	first, _ := collect(t, lib.Path, WalkOptions{})
	second, _ := collect(t, lib.Path, WalkOptions{})
	assert.Equal(t, relPaths(first), relPaths(second))
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "nope"), WalkOptions{}, func(WalkResult) error { return nil })
	assert.Error(t, err)
}

func TestWalkRootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o644))

	_, err := Walk(path, WalkOptions{}, func(WalkResult) error { return nil })
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestIsCommandFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"grep.yml", true},
		{"grep.yaml", true},
		{"GREP.YML", true},
		{"grep.json", false},
		{"grep", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCommandFile(tt.name))
		})
	}
}

func TestValidateWithinRoot(t *testing.T) {
	root := t.TempDir()

	assert.NoError(t, ValidateWithinRoot(root, filepath.Join(root, "Cat", "new.yml")))
	assert.ErrorIs(t, ValidateWithinRoot(root, filepath.Join(root, "..", "escape.yml")), ErrPathOutsideRoot)
}
