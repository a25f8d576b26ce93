package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	Server  ServerConfig `yaml:"server" json:"server"`
	Output  OutputConfig `yaml:"output" json:"output"`
	Watch   WatchConfig  `yaml:"watch" json:"watch"`
}

// ServerConfig configures the analysis service endpoint. The base URL lives
// here rather than in code so each environment (simulator, LAN device,
// localhost) can point at its own server.
type ServerConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url"`               // analysis service base URL
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout"` // dial timeout, fails fast on unreachable hosts
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"` // full upload + response timeout
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // json|text|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	NoEmoji       bool   `yaml:"no_emoji" json:"no_emoji"`             // ASCII fallbacks instead of emoji
}

// WatchConfig configures the directory watch mode
type WatchConfig struct {
	SettleDelay time.Duration `yaml:"settle_delay" json:"settle_delay"` // wait after create before uploading, lets writers finish
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			BaseURL:        "http://127.0.0.1:8000",
			ConnectTimeout: 30 * time.Second,
			RequestTimeout: 60 * time.Second,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			NoEmoji:       false,
		},
		Watch: WatchConfig{
			SettleDelay: 500 * time.Millisecond,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	return c.validateOutputConfig()
}

// validateServerConfig validates server-related configuration
func (c *Config) validateServerConfig() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server base_url is required")
	}
	if _, err := url.Parse(c.Server.BaseURL); err != nil {
		return fmt.Errorf("invalid server base_url: %w", err)
	}
	if c.Server.ConnectTimeout <= 0 {
		return fmt.Errorf("connect_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// SampleConfig returns a full commented configuration for `config init`.
func SampleConfig() string {
	return `# voicescan configuration
version: "1.0"

server:
  # Base URL of the voice analysis service.
  # Use the LAN IP of the machine running the server when testing from
  # another device.
  base_url: "http://127.0.0.1:8000"
  # Dial timeout; unreachable hosts fail fast.
  connect_timeout: 30s
  # Full upload + response timeout; keep generous for large audio files
  # over slow links.
  request_timeout: 60s

output:
  # Default output format: text, json, markdown, csv
  default_format: "text"
  # Color mode: auto, always, never
  color_mode: "auto"
  # Verbose progress output on stderr
  verbose: false
  # Use ASCII fallbacks instead of emoji
  no_emoji: false

watch:
  # How long a newly created file must sit unchanged before it is uploaded
  settle_delay: 500ms
`
}

// MinimalSampleConfig returns a compact configuration for `config init --minimal`.
func MinimalSampleConfig() string {
	return `version: "1.0"
server:
  base_url: "http://127.0.0.1:8000"
output:
  default_format: "text"
`
}
