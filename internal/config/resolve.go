package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables that override the configured commands directory,
// in precedence order.
const (
	EnvCommandsPath = "LCL_COMMANDS_PATH"
	EnvCmdDir       = "CMD_DIR"
)

// ErrNoCommandsDir is returned when no commands directory is configured and
// none could be found.
var ErrNoCommandsDir = errors.New("no commands directory found")

// CommandsDir is a resolved commands directory and where it came from.
type CommandsDir struct {
	Path   string `json:"path"`
	Source string `json:"source"`
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// ResolvePinsPath returns pins.json next to the config file.
func ResolvePinsPath(configPath string) string {
	return filepath.Join(filepath.Dir(ResolveConfigPath(configPath)), "pins.json")
}

// ResolveCommandsDir picks the commands directory with precedence:
//  1. flagDir (--dir)
//  2. $LCL_COMMANDS_PATH, then $CMD_DIR
//  3. commands_dir from config.toml
//  4. the first data/commands or commands directory found in cwd or one of
//     its parents
//
// Explicit values are returned even if they do not exist, so the caller can
// report the problem against the path the user gave.
func ResolveCommandsDir(flagDir string, cfg *Config, getenv func(string) string, cwd string) (CommandsDir, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := strings.TrimSpace(flagDir); v != "" {
		return CommandsDir{Path: expandHome(v), Source: "flag"}, nil
	}
	for _, env := range []string{EnvCommandsPath, EnvCmdDir} {
		if v := strings.TrimSpace(getenv(env)); v != "" {
			return CommandsDir{Path: expandHome(v), Source: env}, nil
		}
	}
	if cfg != nil {
		if v := strings.TrimSpace(cfg.CommandsDir); v != "" {
			return CommandsDir{Path: expandHome(v), Source: "config"}, nil
		}
	}

	if found, ok := discover(cwd); ok {
		return CommandsDir{Path: found, Source: "discovered"}, nil
	}
	return CommandsDir{}, ErrNoCommandsDir
}

func discover(start string) (string, bool) {
	if start == "" {
		return "", false
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		for _, candidate := range []string{filepath.Join(dir, "data", "commands"), filepath.Join(dir, "commands")} {
			if st, err := os.Stat(candidate); err == nil && st.IsDir() {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// RepoRoot returns the repository that holds a commands directory:
// the parent of data/ for .../data/commands, otherwise the parent directory.
// The admin token file and the suggestion inbox live here.
func RepoRoot(commandsDir string) string {
	clean := filepath.Clean(commandsDir)
	parent := filepath.Dir(clean)
	if filepath.Base(clean) == "commands" && filepath.Base(parent) == "data" {
		return filepath.Dir(parent)
	}
	return parent
}
