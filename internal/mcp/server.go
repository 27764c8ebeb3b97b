// Package mcp exposes the aggregation SDK to AI agents over the Model
// Context Protocol: one tool per SDK capability, analysis prompts, and
// read-only JSON resources. Tool calls pass a per-tool rate limit gate
// before touching the upstream API.
package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/swaplens/swaplens/internal/core"
	"github.com/swaplens/swaplens/internal/metrics"
	"github.com/swaplens/swaplens/internal/sdk"
)

// Options wires the server's collaborators. SDK is required; a nil Limiter
// disables the admission gate and a nil Aggregator degrades health_status to
// a static response.
type Options struct {
	Version    string
	SDK        *sdk.SDK
	Limiter    *core.RateLimiter
	Aggregator *core.Aggregator
	Metrics    *metrics.App
	Logger     *zap.Logger
}

// Server is the MCP facade over the SDK.
type Server struct {
	mcp     *server.MCPServer
	sdk     *sdk.SDK
	limiter *core.RateLimiter
	agg     *core.Aggregator
	app     *metrics.App
	logger  *zap.Logger
}

// New builds the MCP server and registers all tools, prompts and resources.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		mcp: server.NewMCPServer(
			"swaplens",
			opts.Version,
			server.WithToolCapabilities(true),
			server.WithPromptCapabilities(true),
			server.WithResourceCapabilities(true, true),
		),
		sdk:     opts.SDK,
		limiter: opts.Limiter,
		agg:     opts.Aggregator,
		app:     opts.Metrics,
		logger:  logger,
	}

	s.registerTools()
	s.registerPrompts()
	s.registerResources()
	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting MCP server on stdio")
	return server.ServeStdio(s.mcp)
}

// ServeSSE blocks serving the MCP protocol over SSE on addr.
func (s *Server) ServeSSE(addr string) error {
	s.logger.Info("starting MCP server on SSE", zap.String("addr", addr))
	sse := server.NewSSEServer(s.mcp)
	return sse.Start(addr)
}

// MCPServer exposes the underlying protocol server for embedding.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// admit runs the per-tool rate limit gate. A rejection is reported as a tool
// error result carrying the wait, never as a transport failure.
func (s *Server) admit(toolName string) *mcp.CallToolResult {
	if s.limiter == nil {
		return nil
	}
	if s.limiter.Allow(toolName) {
		return nil
	}

	wait := s.limiter.SecondsUntilReset(toolName)
	s.app.RecordRateLimitReject()
	s.logger.Warn("tool call rejected by rate limiter",
		zap.String("tool", toolName),
		zap.Int("wait_seconds", wait))
	return mcp.NewToolResultError(fmt.Sprintf("rate limit exceeded, retry in %ds", wait))
}
