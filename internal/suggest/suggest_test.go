package suggest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fixedMeta() Meta {
	return Meta{User: "sam", Host: "box", Now: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)}
}

func TestSave(t *testing.T) {
	repo := t.TempDir()
	s := Suggestion{Name: "Net Cat", Description: "arbitrary TCP and UDP connections", Category: "Networking_Tools"}

	path, err := Save(repo, s, fixedMeta())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(repo, ".inbox", "suggestions", "20260304-050607-net-cat.yml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "name: Net Cat\n"), string(data))

	var record map[string]any
	require.NoError(t, yaml.Unmarshal(data, &record))
	assert.Equal(t, "Networking_Tools", record["category"])
	assert.NotContains(t, record, "usage")
	assert.Equal(t, map[string]any{
		"type":       "suggestion",
		"created_at": "20260304-050607",
		"user":       "sam",
		"host":       "box",
	}, record["_meta"])

	again, err := Save(repo, s, fixedMeta())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(repo, ".inbox", "suggestions", "20260304-050607-net-cat-2.yml"), again)
}

func TestSaveLongAndOddNames(t *testing.T) {
	repo := t.TempDir()

	path, err := Save(repo, Suggestion{Name: strings.Repeat("abc ", 40)}, fixedMeta())
	require.NoError(t, err)
	slug := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), "20260304-050607-"), ".yml")
	assert.LessOrEqual(t, len(slug), maxSlug)

	path, err = Save(repo, Suggestion{Name: "!!"}, fixedMeta())
	require.NoError(t, err)
	assert.Equal(t, "20260304-050607-suggestion.yml", filepath.Base(path))
}

func TestSaveRequiresName(t *testing.T) {
	_, err := Save(t.TempDir(), Suggestion{Description: "x"}, fixedMeta())
	assert.Error(t, err)
}
