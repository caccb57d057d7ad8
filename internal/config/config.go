// Package config locates and loads the canvascli configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories
	DirPermissions = 0755

	apiPrefix = "/api/v1"
)

// Config is the user-provided settings file. base_url and token are
// required; everything else defaults off.
type Config struct {
	BaseURL    string `yaml:"base_url" json:"base_url"`
	Token      string `yaml:"token" json:"token"`
	RequestLog bool   `yaml:"request_log" json:"request_log"`
}

// ErrNoBaseURL is returned when the config has no Canvas base URL.
var ErrNoBaseURL = errors.New("no Canvas base URL configured (set base_url or CANVAS_BASE_URL)")

// Dir returns the configuration directory (~/.canvascli), creating it
// if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".canvascli")
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	return dir, nil
}

// LogPath returns the file transport errors are logged to.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "canvascli.log"), nil
}

// DatabasePath returns the SQLite request-log database file.
func DatabasePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "canvascli.db"), nil
}

// Load reads the configuration. When path is empty the default
// locations are tried in order: ./canvascli.yaml, ~/.canvascli/config.yaml,
// ~/.canvascli/config.jsonc, ~/.canvascli/config.json. Environment
// variables CANVAS_BASE_URL and CANVAS_ACCESS_TOKEN override file
// values either way; a missing file with both env vars set is fine.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := readInto(cfg, path); err != nil {
			return nil, err
		}
	} else {
		for _, candidate := range defaultPaths() {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := readInto(cfg, candidate); err != nil {
				return nil, err
			}
			break
		}
	}

	if v := os.Getenv("CANVAS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CANVAS_ACCESS_TOKEN"); v != "" {
		cfg.Token = v
	}

	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	return cfg, nil
}

func defaultPaths() []string {
	paths := []string{"canvascli.yaml"}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return paths
	}
	dir := filepath.Join(homeDir, ".canvascli")
	return append(paths,
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.jsonc"),
		filepath.Join(dir, "config.json"),
	)
}

// readInto parses a config file by extension: .yaml/.yml via yaml.v3,
// .json/.jsonc via jsonc (comments and trailing commas allowed).
func readInto(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return nil
}

// APIBase normalizes the configured base URL into the REST API root:
// trailing slashes are trimmed and /api/v1 is appended unless the user
// already included it.
func (c *Config) APIBase() string {
	base := strings.TrimRight(c.BaseURL, "/")
	if strings.HasSuffix(base, apiPrefix) {
		return base
	}
	return base + apiPrefix
}
