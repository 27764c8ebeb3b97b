package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swaplens/swaplens/internal/config"
	"github.com/swaplens/swaplens/internal/core"
	"github.com/swaplens/swaplens/internal/mcp"
	"github.com/swaplens/swaplens/internal/metrics"
	"github.com/swaplens/swaplens/internal/observability"
	"github.com/swaplens/swaplens/internal/oneinch"
	"github.com/swaplens/swaplens/internal/sdk"
	"github.com/swaplens/swaplens/internal/server"
	"github.com/swaplens/swaplens/internal/server/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server exposing swap, token, balance, order, history and
portfolio tools to AI agents.

Transports:
  stdio  speak MCP on stdin/stdout (default, for agent runtimes)
  sse    speak MCP over SSE; also starts the HTTP health server

With SSE, Ctrl+C (SIGINT) or SIGTERM triggers a graceful shutdown.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "MCP transport: stdio or sse (default from config)")
	serveCmd.Flags().String("listen", "", "SSE listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	transport := cfg.Server.Transport
	if flagTransport, _ := cmd.Flags().GetString("transport"); flagTransport != "" {
		transport = flagTransport
	}
	sseAddr := cfg.Server.SSEAddr
	if flagListen, _ := cmd.Flags().GetString("listen"); flagListen != "" {
		sseAddr = flagListen
	}

	observability.InitServerLogger("swaplens", cfg.Logging.Level)
	logger := observability.ServerLogger

	kit, err := sdk.New(oneinch.Config{
		BaseURL: cfg.Client.BaseURL,
		APIKey:  cfg.Client.APIKey,
		Timeout: cfg.Client.Timeout,
		Logger:  logger,
	}, resolveChain())
	if err != nil {
		return err
	}

	app := metrics.NewApp()

	var limiter *core.RateLimiter
	if cfg.RateLimit.Limit > 0 {
		limiter = core.NewRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	agg := core.NewAggregator(app)
	agg.FailureRateThreshold = cfg.Health.FailureRateThreshold
	registerProbes(agg, cfg, kit, limiter)

	mcpServer := mcp.New(mcp.Options{
		Version:    versionInfo.Version,
		SDK:        kit,
		Limiter:    limiter,
		Aggregator: agg,
		Metrics:    app,
		Logger:     logger,
	})

	logger.Info("starting swaplens server",
		zap.String("version", versionInfo.Version),
		zap.String("transport", transport),
		zap.Int("chain", kit.ChainID()),
		zap.Int("rate_limit", cfg.RateLimit.Limit))

	switch transport {
	case "stdio":
		return mcpServer.ServeStdio()
	case "sse":
		return serveSSE(cmd.Context(), cfg, mcpServer, sseAddr, agg, limiter, app, logger)
	default:
		return fmt.Errorf("invalid transport %q (want stdio or sse)", transport)
	}
}

// serveSSE runs the SSE transport plus the HTTP health server until a
// shutdown signal arrives.
func serveSSE(ctx context.Context, cfg *config.Config, mcpServer *mcp.Server, sseAddr string,
	agg *core.Aggregator, limiter *core.RateLimiter, app *metrics.App, logger *zap.Logger) error {

	httpSrv := server.New(server.Options{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
		Version: handlers.VersionInfo{
			Version:   versionInfo.Version,
			Commit:    versionInfo.Commit,
			BuildDate: versionInfo.BuildDate,
		},
		Aggregator: agg,
		Limiter:    limiter,
		Metrics:    app,
		Logger:     logger,
	})

	errCh := make(chan error, 2)
	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("health server failed: %w", err)
		}
	}()
	go func() {
		if err := mcpServer.ServeSSE(sseAddr); err != nil {
			errCh <- fmt.Errorf("sse server failed: %w", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("shutting down", zap.String("reason", "context canceled"))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("health server shutdown failed", zap.Error(err))
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

// registerProbes wires the readiness checks: configuration present, an API
// key resolved, and the rate limiter in a sane state.
func registerProbes(agg *core.Aggregator, cfg *config.Config, kit *sdk.SDK, limiter *core.RateLimiter) {
	agg.RegisterFunc("config", func(ctx context.Context) error {
		if config.GetConfig() == nil {
			return fmt.Errorf("configuration not loaded")
		}
		return nil
	})

	agg.RegisterFunc("api_key", func(ctx context.Context) error {
		if kit == nil || kit.Client == nil {
			return oneinch.ErrAPIKeyMissing
		}
		return nil
	})

	if limiter != nil {
		agg.RegisterFunc("rate_limiter", func(ctx context.Context) error {
			if limiter.Limit() <= 0 || limiter.Window() <= 0 {
				return fmt.Errorf("rate limiter misconfigured: limit=%d window=%s",
					limiter.Limit(), limiter.Window())
			}
			return nil
		})
	}
}
