package catalog

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linux-command-library/lcl/internal/model"
	"github.com/linux-command-library/lcl/internal/parser"
	"github.com/linux-command-library/lcl/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func names(docs []model.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Name)
	}
	return out
}

func TestBuildOrder(t *testing.T) {
	lib := testutil.NewLibrary(t).
		WithFile("B_Cat/zz.yml", "name: zz\n").
		WithFile("B_Cat/aa.yml", "- name: aa1\n- name: aa2\n").
		WithFile("A_Cat/mm.yml", "name: mm\n").
		WithFile("A_Cat/multi.yaml", "name: m1\n---\nname: m2\n").
		Build()

	snap := Build(Options{Root: lib.Path, Logger: quietLogger()})
	assert.Equal(t, []string{"mm", "m1", "m2", "aa1", "aa2", "zz"}, names(snap.Documents()))

	docs := snap.Documents()
	assert.Equal(t, 1, docs[2].Provenance.Record, "second YAML document continues record numbering")
	assert.Equal(t, "A_Cat", docs[0].Category)
	assert.Equal(t, filepath.Join(lib.Path, "A_Cat", "mm.yml"), docs[0].Provenance.SourcePath)
}

func TestBuildIdempotent(t *testing.T) {
	lib := testutil.GrepFixture(t)
	opts := Options{Root: lib.Path, Logger: quietLogger()}

	first := Build(opts).Documents()
	second := Build(opts).Documents()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("builds differ (-first +second):\n%s", diff)
	}
}

func TestBuildDiagnostics(t *testing.T) {
	lib := testutil.NewLibrary(t).
		WithFile("Cat/good.yml", "name: good\n").
		WithFile("Cat/broken.yml", "name: [oops\n").
		WithFile("Cat/empty.yml", "# nothing here\n").
		WithFile("Cat/list.yml", "- name: one\n- 42\n").
		WithFile("Cat/corrupt.yml", "name: bad\noptions:\n  \"-x\": \"Ã© bytes\"\n").
		Build()

	snap := Build(Options{Root: lib.Path, Logger: quietLogger()})
	d := snap.Diagnostics()

	assert.Equal(t, 3, snap.Len())
	assert.Equal(t, 3, d.FilesParsed)
	assert.Equal(t, 2, d.FilesSkipped)
	assert.Equal(t, 3, d.RecordsLoaded)
	assert.Equal(t, 1, d.RecordsSkipped)
	assert.Equal(t, 1, d.FieldIssues())
	assert.Equal(t, 2, d.DirsScanned)
	assert.Empty(t, d.RootError)

	kinds := map[parser.IssueKind]int{}
	for _, is := range d.Issues {
		kinds[is.Kind]++
	}
	assert.Equal(t, map[parser.IssueKind]int{
		parser.IssueFileParse:   2,
		parser.IssueRecordShape: 1,
		parser.IssueCorrupted:   1,
	}, kinds)
}

func TestBuildMissingRoot(t *testing.T) {
	snap := Build(Options{Root: filepath.Join(t.TempDir(), "missing"), Logger: quietLogger()})
	require.NotNil(t, snap)
	assert.True(t, snap.Empty())
	assert.NotEmpty(t, snap.Diagnostics().RootError)
}

func TestBuildStrict(t *testing.T) {
	lib := testutil.NewLibrary(t).
		WithFile("Networking_Tools/ping.yml", "name: ping\n").
		WithFile("Networking_Tools/odd.yml", "name: odd\ncategory: Misc\n").
		WithFile("Scratch/tmp.yml", "name: tmp\n").
		Build()

	snap := Build(Options{
		Root:    lib.Path,
		Strict:  true,
		Allowed: []string{"Networking_Tools", "WildCards"},
		Logger:  quietLogger(),
	})

	docs := snap.Documents()
	assert.Equal(t, []string{"odd", "ping"}, names(docs))
	assert.Equal(t, model.UncategorizedCategory, docs[0].Category)
	assert.Equal(t, "Networking_Tools", docs[1].Category)
	assert.Equal(t, []string{"WildCards"}, snap.Diagnostics().MissingDirs)
}

func TestSnapshotCategories(t *testing.T) {
	snap := Build(Options{Root: testutil.GrepFixture(t).Path, Logger: quietLogger()})

	want := []CategoryCount{
		{Name: "Networking_Tools", Count: 1},
		{Name: "System_Administration", Count: 1},
		{Name: "Text_Processing", Count: 2},
	}
	if diff := cmp.Diff(want, snap.Categories()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotFind(t *testing.T) {
	snap := Build(Options{Root: testutil.GrepFixture(t).Path, Logger: quietLogger()})

	doc, err := snap.Find("  GREP ")
	require.NoError(t, err)
	assert.Equal(t, "grep", doc.Name)

	_, err = snap.Find("awk")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotDocumentsIsACopy(t *testing.T) {
	snap := Build(Options{Root: testutil.GrepFixture(t).Path, Logger: quietLogger()})

	docs := snap.Documents()
	docs[0] = model.Document{Name: "changed"}
	assert.NotEqual(t, "changed", snap.Documents()[0].Name)
}

func TestNilSnapshot(t *testing.T) {
	var snap *Snapshot
	assert.True(t, snap.Empty())
	assert.Nil(t, snap.Documents())
	assert.Equal(t, Diagnostics{}, snap.Diagnostics())
}

func TestReloadSwapsSnapshot(t *testing.T) {
	lib := testutil.GrepFixture(t)
	cat := New(Options{Root: lib.Path, Logger: quietLogger()})

	held := cat.Snapshot()
	require.Equal(t, 4, held.Len())
	assert.Equal(t, uint64(1), held.Generation())

	lib.WriteFile("Text_Processing/awk.yml", "name: awk\n")
	fresh := cat.Reload()

	assert.Equal(t, 5, fresh.Len())
	assert.Equal(t, uint64(2), fresh.Generation())
	assert.Same(t, fresh, cat.Snapshot())

	// A reader holding the old snapshot keeps seeing it unchanged.
	assert.Equal(t, 4, held.Len())
	assert.NotContains(t, names(held.Documents()), "awk")
}

func TestConcurrentReadersDuringReload(t *testing.T) {
	lib := testutil.GrepFixture(t)
	cat := New(Options{Root: lib.Path, Logger: quietLogger()})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				snap := cat.Snapshot()
				n := snap.Len()
				assert.Len(t, snap.Documents(), n)
			}
		}()
	}
	for i := 0; i < 5; i++ {
		cat.Reload()
	}
	wg.Wait()

	assert.Equal(t, uint64(6), cat.Snapshot().Generation())
}

func TestBuildEmptyTree(t *testing.T) {
	lib := testutil.NewLibrary(t).WithDir("Empty_Category").Build()

	snap := Build(Options{Root: lib.Path, Logger: quietLogger()})
	assert.True(t, snap.Empty())
	assert.Empty(t, snap.Diagnostics().RootError)
	if diff := cmp.Diff([]CategoryCount{}, snap.Categories(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("categories mismatch:\n%s", diff)
	}
}
