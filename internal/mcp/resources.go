package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/swaplens/swaplens/internal/core"
	"github.com/swaplens/swaplens/internal/oneinch"
)

// popularTokens is a curated starter set for agents that need well-known
// mainnet token addresses without a full get_tokens round trip.
var popularTokens = []map[string]any{
	{"symbol": "ETH", "address": "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", "decimals": 18},
	{"symbol": "WETH", "address": "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", "decimals": 18},
	{"symbol": "USDC", "address": "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", "decimals": 6},
	{"symbol": "USDT", "address": "0xdac17f958d2ee523a2206206994597c13d831ec7", "decimals": 6},
	{"symbol": "DAI", "address": "0x6b175474e89094c44da98b954eedeac495271d0f", "decimals": 18},
	{"symbol": "WBTC", "address": "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599", "decimals": 8},
	{"symbol": "1INCH", "address": "0x111111111117dc0aa78b770fa6a738034120c302", "decimals": 18},
}

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(
		"swaplens://chains/supported",
		"Supported chains",
		mcp.WithResourceDescription("EVM networks the server can query, with chain IDs"),
		mcp.WithMIMEType("application/json"),
	), s.readSupportedChains)

	s.mcp.AddResource(mcp.NewResource(
		"swaplens://tokens/popular",
		"Popular tokens",
		mcp.WithResourceDescription("Well-known Ethereum mainnet token addresses"),
		mcp.WithMIMEType("application/json"),
	), s.readPopularTokens)

	s.mcp.AddResource(mcp.NewResource(
		"swaplens://server/health",
		"Server health",
		mcp.WithResourceDescription("Current aggregate health snapshot"),
		mcp.WithMIMEType("application/json"),
	), s.readServerHealth)
}

func (s *Server) readSupportedChains(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, oneinch.SupportedChains())
}

func (s *Server) readPopularTokens(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, popularTokens)
}

func (s *Server) readServerHealth(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if s.agg == nil {
		return jsonResource(req.Params.URI, map[string]string{"status": core.StatusUp})
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return jsonResource(req.Params.URI, s.agg.Check(checkCtx))
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
