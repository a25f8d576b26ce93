package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hmtran/voicescan/internal/analysis"
	"github.com/hmtran/voicescan/internal/formatter"
	"github.com/hmtran/voicescan/internal/ui"
	"github.com/hmtran/voicescan/internal/upload"
	"github.com/hmtran/voicescan/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	analyzeServer         string
	analyzeConnectTimeout time.Duration
	analyzeTimeout        time.Duration
	analyzeNoTUI          bool
	analyzeOutputFile     string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze an audio file",
		Long: `Upload an audio file to the analysis service and display the returned
voiced/unvoiced/silence classification with summary statistics.

With text output on a terminal an interactive UI is launched; use --no-tui
for plain stdout output.

Examples:
  voicescan analyze sample.wav
  voicescan analyze --no-tui -o json recording.mp3
  voicescan analyze --server http://192.168.1.50:8000 voice.flac`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&analyzeServer, "server", "", "analysis service base URL (overrides config)")
	cmd.Flags().DurationVar(&analyzeConnectTimeout, "connect-timeout", 30*time.Second, "connect timeout")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 60*time.Second, "upload and response timeout")
	cmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "disable terminal UI, output to stdout")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := validateFilePath(path); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	client, err := newUploadClient(cmd, analyzeServer)
	if err != nil {
		return err
	}

	controller := workflow.NewController(client)

	// Determine if we should use TUI
	shouldUseTUI := !analyzeNoTUI && getOutputFormat() == "text" && !isVerbose()

	if shouldUseTUI {
		return ui.Run(controller, path, useColor())
	}

	return runAnalysisAndOutput(controller, path)
}

// resolveClientConfig merges the loaded config with per-command overrides.
// serverOverride is the command's own --server value; timeout flags apply
// only on commands that define them.
func resolveClientConfig(cmd *cobra.Command, serverOverride string) *upload.ClientConfig {
	cfg := GetGlobalConfig()

	clientCfg := upload.DefaultClientConfig(cfg.Server.BaseURL)
	clientCfg.ConnectTimeout = cfg.Server.ConnectTimeout
	clientCfg.RequestTimeout = cfg.Server.RequestTimeout

	if serverOverride != "" {
		clientCfg.BaseURL = serverOverride
	}
	if f := cmd.Flag("connect-timeout"); f != nil && f.Changed {
		clientCfg.ConnectTimeout = analyzeConnectTimeout
	}
	if f := cmd.Flag("timeout"); f != nil && f.Changed {
		clientCfg.RequestTimeout = analyzeTimeout
	}

	return clientCfg
}

// newUploadClient builds the upload client from config plus flag overrides.
func newUploadClient(cmd *cobra.Command, serverOverride string) (*upload.Client, error) {
	client, err := upload.New(resolveClientConfig(cmd, serverOverride))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload client: %w", err)
	}

	return client, nil
}

// runAnalysisAndOutput drives one full workflow pass without the TUI: select
// the file, analyze, wait for the terminal state, format the result.
func runAnalysisAndOutput(controller *workflow.Controller, path string) error {
	states := controller.Subscribe()
	controller.SelectFile(path)

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Uploading %s for analysis...\n", filepath.Base(path))
	}

	if err := controller.Analyze(context.Background()); err != nil {
		return err
	}

	for state := range states {
		switch state.Phase {
		case workflow.PhaseSuccess:
			return formatAndOutputResults(state.Response)
		case workflow.PhaseError:
			return fmt.Errorf("analysis failed: %s", state.Message)
		default:
			// Loading; keep waiting for the terminal state.
		}
	}

	return fmt.Errorf("workflow ended without a result")
}

// formatAndOutputResults formats the analysis response and handles output
func formatAndOutputResults(resp *analysis.AnalysisResponse) error {
	formatterInstance, err := getFormatter(getOutputFormat(), useColor())
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	output, err := formatterInstance.Format(resp)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(output)
}

// getFormatter returns the appropriate formatter for the given format
func getFormatter(format string, color bool) (formatter.Formatter, error) {
	switch format {
	case "json":
		return formatter.NewJSON(), nil
	case "markdown", "md":
		return formatter.NewMarkdown(), nil
	case "csv":
		return formatter.NewCSV(), nil
	case "text", "terminal", "":
		return formatter.NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// handleOutputDestination writes output to file or stdout
func handleOutputDestination(output []byte) error {
	if analyzeOutputFile != "" {
		if err := writeOutputToFile(output, analyzeOutputFile); err != nil {
			return fmt.Errorf("failed to write output to file: %w", err)
		}

		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Output saved to: %s\n", analyzeOutputFile)
		}
	} else {
		fmt.Print(string(output))
	}

	return nil
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

// writeOutputToFile writes output to a file with proper error handling
func writeOutputToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
