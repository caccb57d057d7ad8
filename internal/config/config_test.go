package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CANVAS_BASE_URL", "")
	t.Setenv("CANVAS_ACCESS_TOKEN", "")
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
base_url: https://canvas.example.edu
token: secret
request_log: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://canvas.example.edu" || cfg.Token != "secret" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if !cfg.RequestLog {
		t.Error("Expected request_log enabled")
	}
}

func TestLoadJSONCWithComments(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.jsonc", `{
  // institution instance
  "base_url": "https://canvas.example.edu",
  "token": "secret",
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://canvas.example.edu" || cfg.Token != "secret" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.RequestLog {
		t.Error("Expected request_log to default off")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
base_url: https://file.example.edu
token: file-token
`)
	t.Setenv("CANVAS_BASE_URL", "https://env.example.edu")
	t.Setenv("CANVAS_ACCESS_TOKEN", "env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://env.example.edu" {
		t.Errorf("Expected env base URL, got %s", cfg.BaseURL)
	}
	if cfg.Token != "env-token" {
		t.Errorf("Expected env token, got %s", cfg.Token)
	}
}

func TestEnvOnlyNoFile(t *testing.T) {
	t.Setenv("CANVAS_BASE_URL", "https://env.example.edu")
	t.Setenv("CANVAS_ACCESS_TOKEN", "env-token")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://env.example.edu" {
		t.Errorf("Unexpected base URL: %s", cfg.BaseURL)
	}
}

func TestLoadMissingBaseURL(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "token: secret\n")

	if _, err := Load(path); !errors.Is(err, ErrNoBaseURL) {
		t.Fatalf("Expected ErrNoBaseURL, got %v", err)
	}
}

func TestLoadExplicitPathMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected error for a missing explicit config path")
	}
}

func TestAPIBase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://canvas.example.edu", "https://canvas.example.edu/api/v1"},
		{"https://canvas.example.edu/", "https://canvas.example.edu/api/v1"},
		{"https://canvas.example.edu/api/v1", "https://canvas.example.edu/api/v1"},
		{"https://canvas.example.edu/api/v1/", "https://canvas.example.edu/api/v1"},
	}
	for _, tc := range cases {
		cfg := Config{BaseURL: tc.in}
		if got := cfg.APIBase(); got != tc.want {
			t.Errorf("APIBase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
