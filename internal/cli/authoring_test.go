package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linux-command-library/lcl/internal/testutil"
)

const validRecord = `name: tree
category: File_Directory_Mgmt
description: list contents of directories in a tree-like format
usage: tree [OPTION]... [DIR]...
options:
  "-a": list hidden files too
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateCommand(t *testing.T) {
	env := newCLIEnv(t)

	resp, err := env.runJSON("validate", writeTemp(t, "tree.yml", validRecord))
	require.NoError(t, err)
	assert.True(t, resp.OK)

	resp, err = env.runJSON("validate", writeTemp(t, "bad.yml", "name: tree\n"))
	require.Error(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrValidationFailed, resp.Error.Code)

	resp, err = env.runJSON("validate", filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Equal(t, ErrFileNotFound, resp.Error.Code)
}

func TestValidateCommandStrictCategory(t *testing.T) {
	record := writeTemp(t, "nethack.yml", testutil.CommandYAML("nethack", "Games", "dungeon crawler"))
	env := newCLIEnv(t)

	_, err := env.runJSON("validate", record)
	require.NoError(t, err)

	resp, err := env.runJSON("--strict", "validate", record)
	require.Error(t, err)
	assert.Equal(t, ErrValidationFailed, resp.Error.Code)
}

func TestNewCommandRequiresAdmin(t *testing.T) {
	lib := testutil.GrepFixture(t)

	resp, err := newCLIEnv(t).runJSON("--dir", lib.Path, "new", "--file", writeTemp(t, "tree.yml", validRecord))
	require.Error(t, err)
	assert.Equal(t, ErrNotAdmin, resp.Error.Code)
	lib.AssertFileNotExists("File_Directory_Mgmt/tree.yml")
}

func TestNewCommandFromFile(t *testing.T) {
	lib := testutil.GrepFixture(t)
	env := newCLIEnv(t).set("LCL_ADMIN", "1")

	resp, err := env.runJSON("--dir", lib.Path, "new", "--file", writeTemp(t, "tree.yml", validRecord))
	require.NoError(t, err)

	var data struct {
		RelativePath string `json:"relative_path"`
		Commands     int    `json:"commands"`
	}
	decodeData(t, resp, &data)
	assert.Equal(t, filepath.Join("File_Directory_Mgmt", "tree.yml"), data.RelativePath)
	assert.Equal(t, 5, data.Commands)
	lib.AssertFileContains("File_Directory_Mgmt/tree.yml", "name: tree")

	// A second copy gets a numbered file instead of overwriting.
	resp, err = env.runJSON("--dir", lib.Path, "new", "--file", writeTemp(t, "tree.yml", validRecord))
	require.NoError(t, err)
	decodeData(t, resp, &data)
	assert.Equal(t, filepath.Join("File_Directory_Mgmt", "tree-2.yml"), data.RelativePath)
}

func TestNewCommandRejectsInvalidRecord(t *testing.T) {
	lib := testutil.GrepFixture(t)
	env := newCLIEnv(t).set("LCL_ADMIN", "yes")

	resp, err := env.runJSON("--dir", lib.Path, "new", "--file", writeTemp(t, "bad.yml", "name: tree\ncategory: File_Directory_Mgmt\n"))
	require.Error(t, err)
	assert.Equal(t, ErrValidationFailed, resp.Error.Code)
	lib.AssertFileNotExists("File_Directory_Mgmt/tree.yml")
}

func TestNewCommandAdminToken(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "data", "commands")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Misc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Misc", "true.yml"), []byte(testutil.CommandYAML("true", "Misc", "do nothing")), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".lcl_admin_token"), []byte("s3cret\n"), 0o600))

	record := writeTemp(t, "tree.yml", validRecord)

	resp, err := newCLIEnv(t).set("LCL_ADMIN_TOKEN", "wrong").runJSON("--dir", dir, "new", "--file", record)
	require.Error(t, err)
	assert.Equal(t, ErrNotAdmin, resp.Error.Code)

	_, err = newCLIEnv(t).set("LCL_ADMIN_TOKEN", "s3cret").runJSON("--dir", dir, "new", "--file", record)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "File_Directory_Mgmt", "tree.yml"))
}

func TestSuggestCommand(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "data", "commands")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	env := newCLIEnv(t)
	resp, err := env.runJSON("--dir", dir, "suggest", "--name", "ncdu", "--description", "disk usage viewer")
	require.NoError(t, err)

	var data struct {
		File         string `json:"file"`
		RelativePath string `json:"relative_path"`
	}
	decodeData(t, resp, &data)
	assert.Equal(t, filepath.Join(".inbox", "suggestions"), filepath.Dir(data.RelativePath))
	content, err := os.ReadFile(data.File)
	require.NoError(t, err)
	assert.Contains(t, string(content), "name: ncdu")

	resp, err = env.runJSON("--dir", dir, "suggest", "--name", "ncdu")
	require.Error(t, err)
	assert.Equal(t, ErrInvalidInput, resp.Error.Code)
}

func TestPinCommands(t *testing.T) {
	lib := testutil.GrepFixture(t)
	env := newCLIEnv(t)

	var data struct {
		Name  string   `json:"name"`
		Added bool     `json:"added"`
		Pins  []string `json:"pins"`
	}

	resp, err := env.runJSON("--dir", lib.Path, "pin", "GREP")
	require.NoError(t, err)
	decodeData(t, resp, &data)
	assert.Equal(t, "grep", data.Name)
	assert.True(t, data.Added)

	resp, err = env.runJSON("--dir", lib.Path, "pin", "grep")
	require.NoError(t, err)
	decodeData(t, resp, &data)
	assert.False(t, data.Added)

	_, err = env.runJSON("--dir", lib.Path, "pin", "ping")
	require.NoError(t, err)

	resp, err = env.runJSON("pins")
	require.NoError(t, err)
	var names []string
	decodeData(t, resp, &names)
	assert.Equal(t, []string{"grep", "ping"}, names)
	assert.FileExists(t, filepath.Join(filepath.Dir(env.config), "pins.json"))

	_, err = env.runJSON("unpin", "grep")
	require.NoError(t, err)
	resp, err = env.runJSON("unpin", "grep")
	require.Error(t, err)
	assert.Equal(t, ErrCommandNotFound, resp.Error.Code)

	resp, err = env.runJSON("--dir", lib.Path, "pin", "nope")
	require.Error(t, err)
	assert.Equal(t, ErrCommandNotFound, resp.Error.Code)
}

func TestConfigCommands(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("config", "path")
	require.NoError(t, err)
	assert.Equal(t, env.config+"\n", out)

	resp, err := env.runJSON("config", "init")
	require.NoError(t, err)
	var initData struct {
		Created bool `json:"created"`
	}
	decodeData(t, resp, &initData)
	assert.True(t, initData.Created)

	resp, err = env.runJSON("config", "init")
	require.NoError(t, err)
	decodeData(t, resp, &initData)
	assert.False(t, initData.Created)

	_, err = env.runJSON("config", "set", "result_cap", "7")
	require.NoError(t, err)
	_, err = env.runJSON("config", "set", "strict_categories", "true")
	require.NoError(t, err)

	resp, err = env.runJSON("config")
	require.NoError(t, err)
	var show struct {
		ResultCap int  `json:"result_cap"`
		Strict    bool `json:"strict_categories"`
		Exists    bool `json:"exists"`
	}
	decodeData(t, resp, &show)
	assert.Equal(t, 7, show.ResultCap)
	assert.True(t, show.Strict)
	assert.True(t, show.Exists)

	resp, err = env.runJSON("config", "set", "result_cap", "-1")
	require.Error(t, err)
	assert.Equal(t, ErrInvalidInput, resp.Error.Code)

	resp, err = env.runJSON("config", "set", "nope", "1")
	require.Error(t, err)
	assert.Equal(t, ErrInvalidInput, resp.Error.Code)
}

func TestInvalidConfigIsReported(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, os.WriteFile(env.config, []byte("bogus_key = 1\n"), 0o644))

	resp, err := env.runJSON("config", "path")
	require.Error(t, err)
	assert.Equal(t, ErrConfigInvalid, resp.Error.Code)
}

func TestResultCapFromConfig(t *testing.T) {
	b := testutil.NewLibrary(t)
	for _, n := range []string{"a1", "a2", "a3"} {
		b.WithCommand("Misc", n, "x")
	}
	lib := b.Build()

	env := newCLIEnv(t)
	require.NoError(t, os.WriteFile(env.config, []byte("result_cap = 1\n"), 0o644))

	resp, err := env.runJSON("--dir", lib.Path, "search", "a")
	require.NoError(t, err)
	var res resultJSON
	decodeData(t, resp, &res)
	assert.Len(t, res.Documents, 1)
	assert.Equal(t, 3, res.Total)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.Total)
}
