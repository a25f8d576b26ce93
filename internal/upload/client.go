package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hmtran/voicescan/internal/analysis"
)

const analyzePath = "/analyze/"

// ClientConfig configures the upload client. The connect timeout bounds how
// long an unreachable host can stall, while the request timeout covers the
// full upload and response read so large files over slow links are not cut
// off prematurely.
type ClientConfig struct {
	BaseURL        string
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

// DefaultClientConfig returns the recommended timeouts.
func DefaultClientConfig(baseURL string) *ClientConfig {
	return &ClientConfig{
		BaseURL:        baseURL,
		ConnectTimeout: 30 * time.Second,
		RequestTimeout: 60 * time.Second,
	}
}

// Validate checks the configuration for usable values.
func (c *ClientConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// Client submits audio files to the analysis endpoint. Exactly one request
// is attempted per Submit call; there is no retry.
type Client struct {
	config  *ClientConfig
	client  *http.Client
	baseURL *url.URL
}

// New creates an upload client for the configured endpoint.
func New(config *ClientConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	dialer := &net.Dialer{Timeout: config.ConnectTimeout}
	client := &http.Client{
		Timeout: config.RequestTimeout,
		Transport: &http.Transport{
			DialContext: dialer.DialContext,
		},
	}

	return &Client{
		config:  config,
		client:  client,
		baseURL: baseURL,
	}, nil
}

// Submit reads the file at path, uploads it as multipart/form-data, and
// decodes the analysis response. Every returned error is an *UploadError
// from the fixed taxonomy. The file bytes are read fresh on each call.
func (c *Client) Submit(ctx context.Context, path string) (*analysis.AnalysisResponse, error) {
	content, err := os.ReadFile(path) // #nosec G304 - path comes from the user's own selection
	if err != nil {
		return nil, NewUploadErrorWithCause(ErrTypeFileRead, fmt.Sprintf("cannot read file: %v", err), err)
	}

	filename := filepath.Base(path)
	if filename == "." || filename == string(filepath.Separator) {
		filename = "unknown"
	}

	body, contentType := EncodeMultipart(content, filename, MimeTypeFor(filename))

	endpoint := c.baseURL.JoinPath(analyzePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, NewUploadErrorWithCause(ErrTypeUnknown, fmt.Sprintf("failed to create request: %v", err), err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, ClassifyTransport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ClassifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ClassifyStatus(resp.StatusCode, respBody)
	}

	if len(respBody) == 0 {
		return nil, EmptyBodyError()
	}

	result, err := analysis.ParseResponse(respBody)
	if err != nil {
		return nil, ClassifyDecode(err)
	}

	return result, nil
}
