package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	loader := &Loader{configPaths: []string{filepath.Join(t.TempDir(), "nonexistent.yaml")}}

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("expected default base URL, got %s", cfg.Server.BaseURL)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  base_url: "http://192.168.1.50:8000"
  request_timeout: 90s
output:
  default_format: "json"
`)

	loader := NewLoader()
	cfg, err := loader.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.BaseURL != "http://192.168.1.50:8000" {
		t.Errorf("expected file base URL, got %s", cfg.Server.BaseURL)
	}
	if cfg.Server.RequestTimeout != 90*time.Second {
		t.Errorf("expected 90s request timeout, got %s", cfg.Server.RequestTimeout)
	}
	// Unset fields keep their defaults
	if cfg.Server.ConnectTimeout != 30*time.Second {
		t.Errorf("expected default connect timeout, got %s", cfg.Server.ConnectTimeout)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("expected json format, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("VOICESCAN_SERVER_BASE_URL", "http://10.0.0.5:9000")
	t.Setenv("VOICESCAN_OUTPUT_VERBOSE", "true")
	t.Setenv("VOICESCAN_WATCH_SETTLE_DELAY", "2s")

	loader := &Loader{configPaths: []string{filepath.Join(t.TempDir(), "nonexistent.yaml")}}
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("expected env base URL, got %s", cfg.Server.BaseURL)
	}
	if !cfg.Output.Verbose {
		t.Error("expected env verbose override")
	}
	if cfg.Watch.SettleDelay != 2*time.Second {
		t.Errorf("expected 2s settle delay, got %s", cfg.Watch.SettleDelay)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  base_url: "http://from-file:8000"
`)
	t.Setenv("VOICESCAN_SERVER_BASE_URL", "http://from-env:8000")

	loader := NewLoader()
	cfg, err := loader.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.BaseURL != "http://from-env:8000" {
		t.Errorf("expected env to win over file, got %s", cfg.Server.BaseURL)
	}
}

func TestLoadConfigInvalidEnvValue(t *testing.T) {
	t.Setenv("VOICESCAN_SERVER_REQUEST_TIMEOUT", "not-a-duration")

	loader := &Loader{configPaths: []string{filepath.Join(t.TempDir(), "nonexistent.yaml")}}
	_, err := loader.LoadConfig("")
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "VOICESCAN_SERVER_REQUEST_TIMEOUT") {
		t.Errorf("expected error to name the variable, got: %v", err)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	path := writeConfigFile(t, `
output:
  default_format: "xml"
`)

	loader := NewLoader()
	if _, err := loader.LoadConfig(path); err == nil {
		t.Fatal("expected validation error for unsupported format")
	}
}

func TestLoadConfigRejectsBadPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"wrong extension", "config.txt"},
		{"path traversal", "../../../etc/config.yaml"},
	}

	loader := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.LoadConfig(tt.path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got := expandPath("~/.config/voicescan/config.yaml")
	want := filepath.Join(home, ".config/voicescan/config.yaml")
	if got != want {
		t.Errorf("expandPath = %s, want %s", got, want)
	}

	if got := expandPath("/etc/voicescan/config.yaml"); got != "/etc/voicescan/config.yaml" {
		t.Errorf("absolute path must pass through, got %s", got)
	}
}
