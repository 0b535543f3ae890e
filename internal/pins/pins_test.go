package pins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lcl", "pins.json")

	s, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, s.List())

	assert.True(t, s.Add("tar"))
	assert.True(t, s.Add("grep"))
	assert.False(t, s.Add("grep"), "duplicate")
	assert.False(t, s.Add("  "))
	require.NoError(t, s.Save())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `["grep", "tar"]`, string(content))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"grep", "tar"}, reopened.List())
	assert.True(t, reopened.Has("tar"))

	assert.True(t, reopened.Remove("tar"))
	assert.False(t, reopened.Remove("tar"))
	assert.Equal(t, []string{"grep"}, reopened.List())
}

func TestOpenCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pins.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pins.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, s.List())
}
