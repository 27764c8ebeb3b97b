package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swaplens/swaplens/internal/core"
	"github.com/swaplens/swaplens/internal/metrics"
	"github.com/swaplens/swaplens/internal/oneinch"
	"github.com/swaplens/swaplens/internal/sdk"
)

func newTestMCPServer(t *testing.T, handler http.HandlerFunc, limiter *core.RateLimiter) *Server {
	t.Helper()

	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	kit, err := sdk.New(oneinch.Config{BaseURL: backend.URL, APIKey: "test-key"}, oneinch.ChainEthereum)
	require.NoError(t, err)

	app := metrics.NewApp()
	return New(Options{
		Version:    "test",
		SDK:        kit,
		Limiter:    limiter,
		Aggregator: core.NewAggregator(app),
		Metrics:    app,
	})
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestGetQuoteTool(t *testing.T) {
	srv := newTestMCPServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/swap/v6.0/1/quote", r.URL.Path)
		w.Write([]byte(`{"dstAmount":"2500000000","gas":210000}`))
	}, nil)

	result, err := srv.handleGetQuote(context.Background(), toolRequest("get_quote", map[string]any{
		"src":    "0xaaa",
		"dst":    "0xbbb",
		"amount": "1000",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "2500000000")
}

func TestGetQuoteToolChainOverride(t *testing.T) {
	srv := newTestMCPServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/swap/v6.0/137/quote", r.URL.Path)
		w.Write([]byte(`{"dstAmount":"1"}`))
	}, nil)

	result, err := srv.handleGetQuote(context.Background(), toolRequest("get_quote", map[string]any{
		"src":      "0xaaa",
		"dst":      "0xbbb",
		"amount":   "1000",
		"chain_id": float64(137),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
}

func TestToolMissingRequiredArgument(t *testing.T) {
	srv := newTestMCPServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called")
	}, nil)

	result, err := srv.handleGetQuote(context.Background(), toolRequest("get_quote", map[string]any{
		"dst":    "0xbbb",
		"amount": "1000",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestToolRateLimitGate(t *testing.T) {
	limiter := core.NewRateLimiter(1, time.Minute)
	calls := 0
	srv := newTestMCPServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"dstAmount":"1"}`))
	}, limiter)

	args := map[string]any{"src": "0xaaa", "dst": "0xbbb", "amount": "1"}

	result, err := srv.handleGetQuote(context.Background(), toolRequest("get_quote", args))
	require.NoError(t, err)
	require.False(t, result.IsError)

	// Second call in the same window is rejected in-band, not as a
	// transport error, and the backend is never reached.
	result, err = srv.handleGetQuote(context.Background(), toolRequest("get_quote", args))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "rate limit exceeded, retry in")
	assert.Equal(t, 1, calls)
}

func TestToolRateLimitIsPerTool(t *testing.T) {
	limiter := core.NewRateLimiter(1, time.Minute)
	srv := newTestMCPServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"baseFee":"1","low":{},"medium":{},"high":{},"instant":{}}`))
	}, limiter)

	_, err := srv.handleGetGasPrice(context.Background(), toolRequest("get_gas_price", nil))
	require.NoError(t, err)

	// A different tool has its own window.
	result, err := srv.handleHealthStatus(context.Background(), toolRequest("health_status", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestUpstreamErrorBecomesToolError(t *testing.T) {
	srv := newTestMCPServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"statusCode":400,"error":"Bad Request","description":"insufficient liquidity"}`))
	}, nil)

	result, err := srv.handleGetQuote(context.Background(), toolRequest("get_quote", map[string]any{
		"src":    "0xaaa",
		"dst":    "0xbbb",
		"amount": "1000",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "insufficient liquidity")
}

func TestHealthStatusTool(t *testing.T) {
	srv := newTestMCPServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, nil)

	result, err := srv.handleHealthStatus(context.Background(), toolRequest("health_status", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"status": "up"`)
}

func TestSupportedChainsResource(t *testing.T) {
	srv := newTestMCPServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, nil)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "swaplens://chains/supported"
	contents, err := srv.readSupportedChains(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.Contains(t, text.Text, "Ethereum")
	assert.Contains(t, text.Text, "42161")
}

func TestPopularTokensResource(t *testing.T) {
	srv := newTestMCPServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, nil)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "swaplens://tokens/popular"
	contents, err := srv.readPopularTokens(context.Background(), req)
	require.NoError(t, err)

	text := contents[0].(mcp.TextResourceContents)
	assert.Contains(t, text.Text, "USDC")
}

func TestAnalyzeSwapRoutePrompt(t *testing.T) {
	srv := newTestMCPServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, nil)

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{
		"src":    "0xaaa",
		"dst":    "0xbbb",
		"amount": "1000",
	}
	result, err := srv.handleAnalyzeSwapRoute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)

	content, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, content.Text, "0xaaa")
	assert.Contains(t, content.Text, "get_quote")
}

func TestPromptMissingArgument(t *testing.T) {
	srv := newTestMCPServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, nil)

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"address": ""}
	_, err := srv.handleWalletOverview(context.Background(), req)
	require.Error(t, err)
}
