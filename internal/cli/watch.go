package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hmtran/voicescan/internal/emoji"
	"github.com/hmtran/voicescan/internal/logger"
	"github.com/hmtran/voicescan/internal/upload"
	"github.com/spf13/cobra"
)

var (
	watchServer      string
	watchSettleDelay time.Duration
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a directory and analyze new audio files",
		Long: `Monitor a directory for new audio files and analyze each one as it
appears.

Uses file system notifications to detect new files. A file is uploaded once
it has stopped changing for the settle delay, so recordings still being
written are not sent half-finished. Press Ctrl+C to stop watching.

Examples:
  voicescan watch ./recordings
  voicescan watch --settle-delay 2s /var/spool/voice`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVar(&watchServer, "server", "", "analysis service base URL (overrides config)")
	cmd.Flags().DurationVar(&watchSettleDelay, "settle-delay", 0, "wait after last change before uploading (overrides config)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if err := validateWatchDir(dir); err != nil {
		return fmt.Errorf("invalid watch directory: %w", err)
	}

	cfg := GetGlobalConfig()
	settleDelay := cfg.Watch.SettleDelay
	if cmd.Flag("settle-delay").Changed {
		settleDelay = watchSettleDelay
	}
	if settleDelay <= 0 {
		settleDelay = 500 * time.Millisecond
	}

	client, err := newUploadClient(cmd, watchServer)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer cleanupWatcher(watcher)

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	log := logger.New("watch", isVerbose)
	log.Info("watching directory: %s", dir)
	fmt.Fprintf(os.Stderr, "%s Watching %s for audio files. Press Ctrl+C to stop.\n",
		emoji.GetEmoji("search"), dir)

	return runWatchLoop(watcher, client, settleDelay, log)
}

// runWatchLoop runs the main watch loop with signal handling. Files are
// uploaded only after they stop changing for settleDelay.
func runWatchLoop(watcher *fsnotify.Watcher, client *upload.Client, settleDelay time.Duration, log *logger.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	// Per-file settle timers, all firing into one channel.
	settled := make(chan string, 16)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-signals:
			fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			handleWatchEvent(event, timers, settled, settleDelay, log)

		case path := <-settled:
			delete(timers, path)
			analyzeWatchedFile(ctx, client, path, log)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Warn("watcher error: %v", err)
		}
	}
}

// handleWatchEvent resets the settle timer for created or written audio
// files. Non-audio files and other event kinds are ignored.
func handleWatchEvent(event fsnotify.Event, timers map[string]*time.Timer, settled chan<- string, settleDelay time.Duration, log *logger.Logger) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if !upload.IsAudioFile(event.Name) {
		return
	}

	path := event.Name
	if t, exists := timers[path]; exists {
		t.Stop()
	} else {
		log.Debug("detected audio file: %s", path)
	}
	timers[path] = time.AfterFunc(settleDelay, func() {
		settled <- path
	})
}

// analyzeWatchedFile uploads one settled file and prints the result. Errors
// are reported and the loop keeps watching.
func analyzeWatchedFile(ctx context.Context, client *upload.Client, path string, log *logger.Logger) {
	name := filepath.Base(path)
	fmt.Fprintf(os.Stderr, "%s Analyzing %s...\n", emoji.GetEmoji("loading"), name)

	start := time.Now()
	resp, err := client.Submit(ctx, path)
	if err != nil {
		log.Error("analysis of %s failed: %v", name, err)
		fmt.Fprintf(os.Stderr, "%s %s: %s\n", emoji.GetEmoji("error"), name, watchErrorMessage(err))
		return
	}

	log.InfoWithFields("analysis complete", []logger.Field{
		logger.F("file", name),
		logger.F("segments", len(resp.Segments)),
		logger.Duration(time.Since(start)),
	})

	if err := formatAndOutputResults(resp); err != nil {
		log.Error("failed to output results for %s: %v", name, err)
	}
}

// watchErrorMessage extracts the classified message from upload errors.
func watchErrorMessage(err error) string {
	var uploadErr *upload.UploadError
	if errors.As(err, &uploadErr) {
		return uploadErr.Message
	}
	return err.Error()
}

// validateWatchDir validates that a directory path is safe to watch
func validateWatchDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty directory path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", cleanPath)
	}

	return nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}
