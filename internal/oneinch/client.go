// Package oneinch implements the typed client for the 1inch developer API.
//
// The package owns the HTTP plumbing shared by every resource service:
// header injection, request correlation, error-body classification and the
// blocking/future/stream call adapters. Per-resource services live in the
// subpackages (swap, orderbook, fusion, token, balance, history, portfolio).
package oneinch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.1inch.dev"

// apiKeyEnvVars is the ordered list of environment variables consulted when
// no explicit key is supplied. The first non-empty value wins.
var apiKeyEnvVars = []string{"SWAPLENS_API_KEY", "ONEINCH_API_KEY", "ONE_INCH_API_KEY"}

// Config carries the client construction parameters.
type Config struct {
	// BaseURL overrides the production endpoint, mainly for tests.
	BaseURL string
	// APIKey is the bearer token. When empty the environment is consulted
	// via ResolveAPIKey.
	APIKey string
	// HTTPClient overrides the transport. Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Timeout bounds each request when the caller's context carries no
	// deadline of its own. Zero means no client-imposed deadline.
	Timeout time.Duration
	// Logger receives per-request debug logging. Defaults to a nop logger.
	Logger *zap.Logger
}

// Client is the shared HTTP layer under every resource service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

// ResolveAPIKey returns the first non-empty of: the explicit value, then the
// environment variables in apiKeyEnvVars order.
func ResolveAPIKey(explicit string) string {
	if key := strings.TrimSpace(explicit); key != "" {
		return key
	}
	for _, name := range apiKeyEnvVars {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key
		}
	}
	return ""
}

// NewClient builds a client, resolving the API key from the config or the
// environment. A missing key fails here, never mid-operation.
func NewClient(cfg Config) (*Client, error) {
	key := ResolveAPIKey(cfg.APIKey)
	if key == "" {
		return nil, ErrAPIKeyMissing
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     key,
		httpClient: httpClient,
		timeout:    cfg.Timeout,
		logger:     logger,
	}, nil
}

// BaseURL returns the resolved endpoint, for diagnostics.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET against path with the supplied query parameters and
// decodes the 2xx body into out. Non-2xx responses are classified into a
// typed error; a 2xx body that fails to decode is wrapped verbatim.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, payload, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, out any) error {
	if c == nil {
		return fmt.Errorf("1inch client not configured")
	}

	ctx, cancel := c.withTimeout(ctx)
	if cancel != nil {
		defer cancel()
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("1inch request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Classify(resp.StatusCode, requestID, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &RawResponseError{StatusCode: resp.StatusCode, Body: respBody}
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, nil
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, nil
	}
	return context.WithTimeout(ctx, c.timeout)
}
