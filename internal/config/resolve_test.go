package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestResolveCommandsDirPrecedence(t *testing.T) {
	cfg := &Config{CommandsDir: "/from/config"}
	all := map[string]string{EnvCommandsPath: "/from/lcl", EnvCmdDir: "/from/cmd"}

	tests := []struct {
		name   string
		flag   string
		env    map[string]string
		cfg    *Config
		want   string
		source string
	}{
		{"flag wins", "/from/flag", all, cfg, "/from/flag", "flag"},
		{"LCL_COMMANDS_PATH before CMD_DIR", "", all, cfg, "/from/lcl", EnvCommandsPath},
		{"CMD_DIR", "", map[string]string{EnvCmdDir: "/from/cmd"}, cfg, "/from/cmd", EnvCmdDir},
		{"config", "", nil, cfg, "/from/config", "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveCommandsDir(tt.flag, tt.cfg, env(tt.env), "")
			require.NoError(t, err)
			assert.Equal(t, CommandsDir{Path: tt.want, Source: tt.source}, got)
		})
	}
}

func TestResolveCommandsDirDiscovers(t *testing.T) {
	repo := t.TempDir()
	commands := filepath.Join(repo, "data", "commands")
	require.NoError(t, os.MkdirAll(commands, 0o755))
	nested := filepath.Join(repo, "docs", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := ResolveCommandsDir("", &Config{}, env(nil), nested)
	require.NoError(t, err)

	want, err := filepath.Abs(commands)
	require.NoError(t, err)
	assert.Equal(t, want, got.Path)
	assert.Equal(t, "discovered", got.Source)
}

func TestResolveCommandsDirNotFound(t *testing.T) {
	_, err := ResolveCommandsDir("", nil, env(nil), "")
	assert.ErrorIs(t, err, ErrNoCommandsDir)
}

func TestRepoRoot(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/srv/lcl/data/commands", "/srv/lcl"},
		{"/srv/lcl/commands", "/srv/lcl"},
		{"/srv/lcl/library", "/srv/lcl"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), RepoRoot(filepath.FromSlash(tt.in)))
		})
	}
}

func TestResolvePinsPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/etc/lcl", "pins.json"), ResolvePinsPath(filepath.Join("/etc/lcl", "config.toml")))
}

func TestIsAdmin(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, AdminTokenFile), []byte("s3cret\n"), 0o600))

	tests := []struct {
		name string
		env  map[string]string
		cfg  *Config
		want bool
	}{
		{"nothing set", nil, nil, false},
		{"flag yes", map[string]string{EnvAdmin: "YES"}, nil, true},
		{"flag 1", map[string]string{EnvAdmin: "1"}, nil, true},
		{"flag no", map[string]string{EnvAdmin: "no"}, nil, false},
		{"token matches", map[string]string{EnvAdminToken: "s3cret"}, nil, true},
		{"token mismatch", map[string]string{EnvAdminToken: "guess"}, nil, false},
		{"config", nil, &Config{Admin: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAdmin(tt.cfg, repo, env(tt.env)))
		})
	}
}
