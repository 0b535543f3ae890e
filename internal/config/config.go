// Package config handles global lcl configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultAllowedCategories is the category allow-list used in strict mode when
// the config does not name one.
var DefaultAllowedCategories = []string{
	"Archive_Compression_Mgmt",
	"File_Directory_Mgmt",
	"Hardware_Kernel_Tools",
	"Linux_Directory_System",
	"Networking_Tools",
	"Package_Management",
	"Permission_and_Ownership",
	"Process_Management",
	"Searching_and_Filtering_Management",
	"System_Administration",
	"System_Information_and_Monitoring_Management",
	"TroubleShooting_Management",
	"User_and_Group_Management",
	"Viewing_and_Editing_Management",
	"WildCards",
}

// Config represents the global lcl configuration.
type Config struct {
	// CommandsDir is the commands directory (overridden by --dir and the
	// LCL_COMMANDS_PATH / CMD_DIR environment variables).
	CommandsDir string `toml:"commands_dir"`

	// StrictCategories enables the category allow-list.
	StrictCategories bool `toml:"strict_categories"`

	// AllowedCategories replaces DefaultAllowedCategories when set.
	AllowedCategories []string `toml:"allowed_categories"`

	// ResultCap limits partial-match search results (0 means the default).
	ResultCap int `toml:"result_cap"`

	// Admin unlocks commands that write into the commands tree.
	Admin bool `toml:"admin"`

	// Editor is the editor to use for new commands (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// Aliases replaces the default search alias table when set.
	Aliases map[string][]string `toml:"aliases"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	// Example values: "monokai", "dracula", "github", "nord".
	CodeTheme string `toml:"code_theme"`
}

// Categories returns the effective allow-list.
func (c *Config) Categories() []string {
	if c != nil && len(c.AllowedCategories) > 0 {
		return slices.Clone(c.AllowedCategories)
	}
	return slices.Clone(DefaultAllowedCategories)
}

// GetEditor returns the editor to use, falling back to $VISUAL and $EDITOR.
func (c *Config) GetEditor() string {
	if c != nil && strings.TrimSpace(c.Editor) != "" {
		return strings.TrimSpace(c.Editor)
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	return os.Getenv("EDITOR")
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadOrDefault(DefaultPath())
}

// LoadOrDefault loads path, returning an empty config when it does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	meta, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse config %s: unknown key %q", path, undecoded[0].String())
	}
	if config.ResultCap < 0 {
		return nil, fmt.Errorf("failed to parse config %s: result_cap must not be negative", path)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/lcl/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	// Prefer XDG-style ~/.config/lcl/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "lcl", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	// Fall back to XDG config dir or OS-specific location
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "lcl", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}

const defaultConfig = `# lcl configuration

# Commands directory. Overridden by --dir, $LCL_COMMANDS_PATH and $CMD_DIR.
# When unset, lcl looks for data/commands or commands in the working
# directory and its parents.
# commands_dir = "/path/to/data/commands"

# Only load the allow-listed category directories, and file records with an
# unknown category under "uncategorized".
# strict_categories = false
# allowed_categories = ["Networking_Tools", "Process_Management"]

# Maximum number of partial matches shown for a search.
# result_cap = 50

# Allow "lcl new". Also enabled by LCL_ADMIN=1 or a matching LCL_ADMIN_TOKEN.
# admin = false

# Editor for new commands (defaults to $VISUAL, then $EDITOR)
# editor = "vim"

# Search aliases: a query term containing the key also matches categories
# containing any of the values. Replaces the built-in table.
# [aliases]
# networking = ["network"]

# Optional UI accent color for headers/links in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

// CreateDefault creates a default config file at path if it doesn't exist.
// It reports whether a file was written.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil // Already exists
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
