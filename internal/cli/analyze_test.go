package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hmtran/voicescan/internal/config"
	"github.com/hmtran/voicescan/internal/logger"
	"github.com/spf13/cobra"
)

// setTestConfig injects a config so tests do not depend on the host's
// config files or environment.
func setTestConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	globalConfigOnce.Do(func() {})
	old := globalConfig
	if old == nil {
		old = config.DefaultConfig()
	}
	globalConfig = cfg
	t.Cleanup(func() { globalConfig = old })
}

func TestGetFormatter(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"terminal", false},
		{"", false},
		{"json", false},
		{"markdown", false},
		{"md", false},
		{"csv", false},
		{"xml", true},
		{"yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := getFormatter(tt.format, false)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f == nil {
				t.Error("expected a formatter")
			}
		})
	}
}

func TestGetOutputFormatFallsBackToConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.DefaultFormat = "json"
	setTestConfig(t, cfg)

	oldOutputFmt := outputFmt
	defer func() { outputFmt = oldOutputFmt }()

	outputFmt = ""
	if got := getOutputFormat(); got != "json" {
		t.Errorf("expected configured default json, got %q", got)
	}

	// An explicit flag wins over the configured default
	outputFmt = "csv"
	if got := getOutputFormat(); got != "csv" {
		t.Errorf("expected flag value csv, got %q", got)
	}
}

func TestResolveClientConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.BaseURL = "http://from-config:8000"
	cfg.Server.ConnectTimeout = 10 * time.Second
	cfg.Server.RequestTimeout = 20 * time.Second
	setTestConfig(t, cfg)

	// A command without timeout flags, like watch, takes config values
	bare := &cobra.Command{Use: "bare"}

	got := resolveClientConfig(bare, "")
	if got.BaseURL != "http://from-config:8000" {
		t.Errorf("expected config base URL, got %s", got.BaseURL)
	}
	if got.ConnectTimeout != 10*time.Second || got.RequestTimeout != 20*time.Second {
		t.Errorf("expected config timeouts, got %s/%s", got.ConnectTimeout, got.RequestTimeout)
	}

	// The command's own --server override wins without touching any other
	// command's flags
	got = resolveClientConfig(bare, "http://from-flag:9000")
	if got.BaseURL != "http://from-flag:9000" {
		t.Errorf("expected server override, got %s", got.BaseURL)
	}
	if analyzeServer != "" {
		t.Errorf("expected analyze command flags untouched, got %q", analyzeServer)
	}
}

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "voice.wav")
	if err := os.WriteFile(existing, []byte("audio"), 0o600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"existing file", existing, false},
		{"empty path", "", true},
		{"missing file", filepath.Join(dir, "nope.wav"), true},
		{"directory", dir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFilePath(tt.path)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestHandleWatchEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{
			name:     "created audio file",
			event:    fsnotify.Event{Name: "/tmp/new.wav", Op: fsnotify.Create},
			expected: true,
		},
		{
			name:     "written audio file",
			event:    fsnotify.Event{Name: "/tmp/new.mp3", Op: fsnotify.Write},
			expected: true,
		},
		{
			name:     "non-audio file",
			event:    fsnotify.Event{Name: "/tmp/notes.txt", Op: fsnotify.Create},
			expected: false,
		},
		{
			name:     "removed audio file",
			event:    fsnotify.Event{Name: "/tmp/old.wav", Op: fsnotify.Remove},
			expected: false,
		},
	}

	log := logger.New("test", func() bool { return false })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timers := make(map[string]*time.Timer)
			settled := make(chan string, 1)

			handleWatchEvent(tt.event, timers, settled, time.Hour, log)

			_, scheduled := timers[tt.event.Name]
			if scheduled != tt.expected {
				t.Errorf("expected timer scheduled=%v, got %v", tt.expected, scheduled)
			}

			for _, timer := range timers {
				timer.Stop()
			}
		})
	}
}

func TestHandleWatchEventResetsTimer(t *testing.T) {
	timers := make(map[string]*time.Timer)
	settled := make(chan string, 1)
	log := logger.New("test", func() bool { return false })

	event := fsnotify.Event{Name: "/tmp/grow.wav", Op: fsnotify.Create}
	handleWatchEvent(event, timers, settled, 50*time.Millisecond, log)

	// A write before the delay elapses replaces the timer
	event.Op = fsnotify.Write
	handleWatchEvent(event, timers, settled, 50*time.Millisecond, log)

	if len(timers) != 1 {
		t.Fatalf("expected a single pending timer, got %d", len(timers))
	}

	select {
	case path := <-settled:
		if path != "/tmp/grow.wav" {
			t.Errorf("unexpected settled path: %s", path)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for settle")
	}
}
