package config

import (
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("unexpected default base URL: %s", cfg.Server.BaseURL)
	}
	if cfg.Server.ConnectTimeout != 30*time.Second {
		t.Errorf("unexpected default connect timeout: %s", cfg.Server.ConnectTimeout)
	}
	if cfg.Server.RequestTimeout != 60*time.Second {
		t.Errorf("unexpected default request timeout: %s", cfg.Server.RequestTimeout)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("unexpected default format: %s", cfg.Output.DefaultFormat)
	}
	if cfg.Watch.SettleDelay != 500*time.Millisecond {
		t.Errorf("unexpected default settle delay: %s", cfg.Watch.SettleDelay)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.Server.BaseURL = "" },
			wantErr: "base_url",
		},
		{
			name:    "zero connect timeout",
			mutate:  func(c *Config) { c.Server.ConnectTimeout = 0 },
			wantErr: "connect_timeout",
		},
		{
			name:    "negative request timeout",
			mutate:  func(c *Config) { c.Server.RequestTimeout = -time.Second },
			wantErr: "request_timeout",
		},
		{
			name:    "bad output format",
			mutate:  func(c *Config) { c.Output.DefaultFormat = "xml" },
			wantErr: "invalid output format",
		},
		{
			name:    "bad color mode",
			mutate:  func(c *Config) { c.Output.ColorMode = "sometimes" },
			wantErr: "invalid color mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error to mention %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestSampleConfigIsValidYAML(t *testing.T) {
	for _, sample := range []struct {
		name    string
		content string
	}{
		{"full", SampleConfig()},
		{"minimal", MinimalSampleConfig()},
	} {
		t.Run(sample.name, func(t *testing.T) {
			var cfg Config
			if err := yaml.Unmarshal([]byte(sample.content), &cfg); err != nil {
				t.Fatalf("sample config is not valid YAML: %v", err)
			}
			if cfg.Server.BaseURL == "" {
				t.Error("expected sample to set server base_url")
			}
		})
	}
}
