package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Admin gate environment variables and token file name.
const (
	EnvAdmin       = "LCL_ADMIN"
	EnvAdminToken  = "LCL_ADMIN_TOKEN"
	AdminTokenFile = ".lcl_admin_token"
)

// IsAdmin reports whether write access is unlocked: $LCL_ADMIN is 1/true/yes,
// $LCL_ADMIN_TOKEN matches <repo>/.lcl_admin_token, or admin = true in config.
func IsAdmin(cfg *Config, repoRoot string, getenv func(string) string) bool {
	if getenv == nil {
		getenv = os.Getenv
	}

	switch strings.ToLower(strings.TrimSpace(getenv(EnvAdmin))) {
	case "1", "true", "yes":
		return true
	}

	if token := strings.TrimSpace(getenv(EnvAdminToken)); token != "" && repoRoot != "" {
		if data, err := os.ReadFile(filepath.Join(repoRoot, AdminTokenFile)); err == nil {
			if strings.TrimSpace(string(data)) == token {
				return true
			}
		}
	}

	return cfg != nil && cfg.Admin
}
