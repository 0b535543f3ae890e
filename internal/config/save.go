package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/linux-command-library/lcl/internal/atomicfile"
)

type persistedConfig struct {
	CommandsDir       *string              `toml:"commands_dir,omitempty"`
	StrictCategories  *bool                `toml:"strict_categories,omitempty"`
	AllowedCategories []string             `toml:"allowed_categories,omitempty"`
	ResultCap         *int                 `toml:"result_cap,omitempty"`
	Admin             *bool                `toml:"admin,omitempty"`
	Editor            *string              `toml:"editor,omitempty"`
	Aliases           map[string][]string  `toml:"aliases,omitempty"`
	UI                *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func truePtr(v bool) *bool {
	if !v {
		return nil
	}
	return &v
}

// SaveTo writes the config to path atomically. Zero values are left out so
// the file only records what was set.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		CommandsDir:      nonEmptyPtr(cfg.CommandsDir),
		StrictCategories: truePtr(cfg.StrictCategories),
		Admin:            truePtr(cfg.Admin),
		Editor:           nonEmptyPtr(cfg.Editor),
	}
	if len(cfg.AllowedCategories) > 0 {
		out.AllowedCategories = cfg.AllowedCategories
	}
	if len(cfg.Aliases) > 0 {
		out.Aliases = cfg.Aliases
	}
	if cfg.ResultCap > 0 {
		n := cfg.ResultCap
		out.ResultCap = &n
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

// SettableKeys lists the keys Set accepts.
var SettableKeys = []string{"commands_dir", "strict_categories", "result_cap", "admin", "editor", "ui.accent", "ui.code_theme"}

// Set assigns one scalar key from its string form.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "commands_dir":
		c.CommandsDir = value
	case "editor":
		c.Editor = value
	case "ui.accent":
		c.UI.Accent = value
	case "ui.code_theme":
		c.UI.CodeTheme = value
	case "strict_categories", "admin":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		if key == "admin" {
			c.Admin = b
		} else {
			c.StrictCategories = b
		}
	case "result_cap":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("result_cap must be a non-negative integer")
		}
		c.ResultCap = n
	default:
		return fmt.Errorf("unknown config key %q (settable: %s)", key, strings.Join(SettableKeys, ", "))
	}
	return nil
}
