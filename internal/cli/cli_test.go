package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linux-command-library/lcl/internal/testutil"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

// resetFlags restores every flag to its default so runs don't leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// cliEnv runs lcl in-process with an isolated environment and config file.
type cliEnv struct {
	t      *testing.T
	env    map[string]string
	config string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	return &cliEnv{
		t:      t,
		env:    map[string]string{},
		config: filepath.Join(t.TempDir(), "config.toml"),
	}
}

func (c *cliEnv) set(key, value string) *cliEnv {
	c.env[key] = value
	return c
}

// run executes the CLI and returns captured stdout.
func (c *cliEnv) run(args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)
	defer resetFlags(rootCmd)

	prevGetenv := getenv
	getenv = func(key string) string { return c.env[key] }
	defer func() { getenv = prevGetenv }()

	rootCmd.SetArgs(append([]string{"--config", c.config}, args...))

	var err error
	out := captureStdout(c.t, func() { err = Execute() })
	return out, err
}

// runJSON executes the CLI with --json and decodes the envelope.
func (c *cliEnv) runJSON(args ...string) (envelope, error) {
	c.t.Helper()
	out, err := c.run(append([]string{"--json"}, args...)...)
	return decodeEnvelope(c.t, out), err
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *ErrorInfo      `json:"error"`
	Meta  *Meta           `json:"meta"`
}

func decodeEnvelope(t *testing.T, out string) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp
}

func decodeData(t *testing.T, resp envelope, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, v), "data: %s", resp.Data)
}

func TestNeedsCommandsDir(t *testing.T) {
	assert.False(t, needsCommandsDir(versionCmd))
	assert.False(t, needsCommandsDir(configSetCmd))
	assert.False(t, needsCommandsDir(pinsCmd))
	assert.True(t, needsCommandsDir(searchCmd))
	assert.True(t, needsCommandsDir(newCmd))
}

func TestMissingCommandsDir(t *testing.T) {
	chdir(t, t.TempDir())

	resp, err := newCLIEnv(t).runJSON("search", "grep")
	require.Error(t, err)
	assert.False(t, resp.OK)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCommandsDirNotFound, resp.Error.Code)
}

func TestCommandsDirFromEnvironment(t *testing.T) {
	lib := testutil.GrepFixture(t)

	for _, key := range []string{"LCL_COMMANDS_PATH", "CMD_DIR"} {
		t.Run(key, func(t *testing.T) {
			resp, err := newCLIEnv(t).set(key, lib.Path).runJSON("categories")
			require.NoError(t, err)
			assert.True(t, resp.OK)
			assert.Equal(t, 3, resp.Meta.Count)
		})
	}
}

func TestCommandsDirDiscovered(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "data", "commands", "Text_Processing")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cut.yml"), []byte(testutil.CommandYAML("cut", "Text_Processing", "cut fields")), 0o644))
	chdir(t, root)

	resp, err := newCLIEnv(t).runJSON("categories")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Meta.Count)
}
