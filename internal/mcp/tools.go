package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/swaplens/swaplens/internal/core"
	"github.com/swaplens/swaplens/internal/oneinch/balance"
	"github.com/swaplens/swaplens/internal/oneinch/fusion"
	"github.com/swaplens/swaplens/internal/oneinch/history"
	"github.com/swaplens/swaplens/internal/oneinch/orderbook"
	"github.com/swaplens/swaplens/internal/oneinch/swap"
	"github.com/swaplens/swaplens/internal/oneinch/token"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("get_quote",
		mcp.WithDescription("Get the best swap route and output amount for a token pair. Amounts are decimal strings in the source token's smallest unit."),
		mcp.WithString("src", mcp.Required(), mcp.Description("Source token contract address")),
		mcp.WithString("dst", mcp.Required(), mcp.Description("Destination token contract address")),
		mcp.WithString("amount", mcp.Required(), mcp.Description("Amount to swap in the source token's smallest unit")),
		mcp.WithNumber("chain_id", mcp.Description("EVM chain ID (default: server's configured chain)")),
		mcp.WithBoolean("include_protocols", mcp.Description("Include the route split in the response (default true)")),
	), s.handleGetQuote)

	s.mcp.AddTool(mcp.NewTool("build_swap",
		mcp.WithDescription("Build signable swap calldata for a token pair. Returns the transaction to sign, nothing is broadcast."),
		mcp.WithString("src", mcp.Required(), mcp.Description("Source token contract address")),
		mcp.WithString("dst", mcp.Required(), mcp.Description("Destination token contract address")),
		mcp.WithString("amount", mcp.Required(), mcp.Description("Amount to swap in the source token's smallest unit")),
		mcp.WithString("from", mcp.Required(), mcp.Description("Wallet address that will sign the transaction")),
		mcp.WithString("slippage", mcp.Description("Max slippage percent (default 1)")),
		mcp.WithNumber("chain_id", mcp.Description("EVM chain ID (default: server's configured chain)")),
	), s.handleBuildSwap)

	s.mcp.AddTool(mcp.NewTool("get_tokens",
		mcp.WithDescription("List all tokens known on a chain with symbol, name, decimals and address."),
		mcp.WithNumber("chain_id", mcp.Description("EVM chain ID (default: server's configured chain)")),
	), s.handleGetTokens)

	s.mcp.AddTool(mcp.NewTool("search_tokens",
		mcp.WithDescription("Search tokens on a chain by symbol or name."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Symbol or name fragment to search for")),
		mcp.WithNumber("limit", mcp.Description("Max results (default 10)")),
		mcp.WithNumber("chain_id", mcp.Description("EVM chain ID (default: server's configured chain)")),
	), s.handleSearchTokens)

	s.mcp.AddTool(mcp.NewTool("get_balances",
		mcp.WithDescription("Get token balances for one or more wallets. Multiple wallets are fetched concurrently."),
		mcp.WithString("wallets", mcp.Required(), mcp.Description("Comma-separated wallet addresses")),
		mcp.WithNumber("chain_id", mcp.Description("EVM chain ID (default: server's configured chain)")),
	), s.handleGetBalances)

	s.mcp.AddTool(mcp.NewTool("get_allowances",
		mcp.WithDescription("Get token allowances a wallet has granted to a spender contract."),
		mcp.WithString("wallet", mcp.Required(), mcp.Description("Wallet address")),
		mcp.WithString("spender", mcp.Required(), mcp.Description("Spender contract address")),
		mcp.WithNumber("chain_id", mcp.Description("EVM chain ID (default: server's configured chain)")),
	), s.handleGetAllowances)

	s.mcp.AddTool(mcp.NewTool("get_limit_orders",
		mcp.WithDescription("List limit orders in the orderbook, optionally filtered to one maker address."),
		mcp.WithString("maker", mcp.Description("Maker wallet address (omit for all orders)")),
		mcp.WithNumber("page", mcp.Description("Page number (default 1)")),
		mcp.WithNumber("limit", mcp.Description("Page size (default 20)")),
		mcp.WithString("statuses", mcp.Description("Comma-separated status filter, e.g. 1,2,3")),
		mcp.WithNumber("chain_id", mcp.Description("EVM chain ID (default: server's configured chain)")),
	), s.handleGetLimitOrders)

	s.mcp.AddTool(mcp.NewTool("get_fusion_quote",
		mcp.WithDescription("Get a gasless Fusion quote with Dutch-auction presets for a token pair."),
		mcp.WithString("from_token", mcp.Required(), mcp.Description("Source token contract address")),
		mcp.WithString("to_token", mcp.Required(), mcp.Description("Destination token contract address")),
		mcp.WithString("amount", mcp.Required(), mcp.Description("Amount in the source token's smallest unit")),
		mcp.WithString("wallet", mcp.Required(), mcp.Description("Wallet address the order will be created for")),
		mcp.WithNumber("chain_id", mcp.Description("EVM chain ID (default: server's configured chain)")),
	), s.handleGetFusionQuote)

	s.mcp.AddTool(mcp.NewTool("get_fusion_orders",
		mcp.WithDescription("List active Fusion orders, check one order's settlement status, or list cross-chain orders."),
		mcp.WithString("order_hash", mcp.Description("Order hash to check the status of (omit to list active orders)")),
		mcp.WithBoolean("cross_chain", mcp.Description("List cross-chain orders instead of single-chain ones")),
		mcp.WithNumber("page", mcp.Description("Page number (default 1)")),
		mcp.WithNumber("limit", mcp.Description("Page size (default 20)")),
		mcp.WithNumber("chain_id", mcp.Description("EVM chain ID (default: server's configured chain)")),
	), s.handleGetFusionOrders)

	s.mcp.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Get transaction history events for a wallet, newest first."),
		mcp.WithString("address", mcp.Required(), mcp.Description("Wallet address")),
		mcp.WithNumber("limit", mcp.Description("Max events (default 20)")),
		mcp.WithNumber("chain_id", mcp.Description("Filter to one chain (default: all chains)")),
	), s.handleGetHistory)

	s.mcp.AddTool(mcp.NewTool("get_portfolio",
		mcp.WithDescription("Get current USD portfolio value for one or more wallets, optionally with profit and loss."),
		mcp.WithString("addresses", mcp.Required(), mcp.Description("Comma-separated wallet addresses")),
		mcp.WithBoolean("include_profit", mcp.Description("Also fetch profit-and-loss figures")),
		mcp.WithNumber("chain_id", mcp.Description("Filter to one chain (default: all chains)")),
	), s.handleGetPortfolio)

	s.mcp.AddTool(mcp.NewTool("get_gas_price",
		mcp.WithDescription("Get current EIP-1559 gas fee tiers for a chain."),
		mcp.WithNumber("chain_id", mcp.Description("EVM chain ID (default: server's configured chain)")),
	), s.handleGetGasPrice)

	s.mcp.AddTool(mcp.NewTool("health_status",
		mcp.WithDescription("Report the server's aggregate health: probe states, failure rate and uptime."),
	), s.handleHealthStatus)
}

func (s *Server) handleGetQuote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("get_quote"); rejected != nil {
		return rejected, nil
	}

	src, err := req.RequireString("src")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dst, err := req.RequireString("dst")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	amount, err := req.RequireString("amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc := swap.NewService(s.sdk.Client, s.chainID(req))
	quote, err := svc.Quote(ctx, swap.QuoteParams{
		Src:              src,
		Dst:              dst,
		Amount:           amount,
		IncludeProtocols: req.GetBool("include_protocols", true),
		IncludeGas:       true,
	})
	return s.finish("get_quote", quote, err)
}

func (s *Server) handleBuildSwap(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("build_swap"); rejected != nil {
		return rejected, nil
	}

	src, err := req.RequireString("src")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dst, err := req.RequireString("dst")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	amount, err := req.RequireString("amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := req.RequireString("from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc := swap.NewService(s.sdk.Client, s.chainID(req))
	tx, err := svc.Swap(ctx, swap.SwapParams{
		QuoteParams: swap.QuoteParams{Src: src, Dst: dst, Amount: amount},
		From:        from,
		Slippage:    req.GetString("slippage", "1"),
	})
	return s.finish("build_swap", tx, err)
}

func (s *Server) handleGetTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("get_tokens"); rejected != nil {
		return rejected, nil
	}

	svc := token.NewService(s.sdk.Client, s.chainID(req))
	tokens, err := svc.Tokens(ctx)
	return s.finish("get_tokens", tokens, err)
}

func (s *Server) handleSearchTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("search_tokens"); rejected != nil {
		return rejected, nil
	}

	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc := token.NewService(s.sdk.Client, s.chainID(req))
	tokens, err := svc.Search(ctx, token.SearchParams{
		Query: query,
		Limit: req.GetInt("limit", 10),
	})
	return s.finish("search_tokens", tokens, err)
}

func (s *Server) handleGetBalances(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("get_balances"); rejected != nil {
		return rejected, nil
	}

	raw, err := req.RequireString("wallets")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	wallets := splitList(raw)
	if len(wallets) == 0 {
		return mcp.NewToolResultError("wallets must contain at least one address"), nil
	}

	svc := balance.NewService(s.sdk.Client, s.chainID(req))
	if len(wallets) == 1 {
		balances, err := svc.Balances(ctx, wallets[0])
		return s.finish("get_balances", balances, err)
	}
	aggregated, err := svc.AggregatedBalances(ctx, wallets)
	return s.finish("get_balances", aggregated, err)
}

func (s *Server) handleGetAllowances(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("get_allowances"); rejected != nil {
		return rejected, nil
	}

	wallet, err := req.RequireString("wallet")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	spender, err := req.RequireString("spender")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc := balance.NewService(s.sdk.Client, s.chainID(req))
	allowances, err := svc.Allowances(ctx, wallet, spender)
	return s.finish("get_allowances", allowances, err)
}

func (s *Server) handleGetLimitOrders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("get_limit_orders"); rejected != nil {
		return rejected, nil
	}

	svc := orderbook.NewService(s.sdk.Client, s.chainID(req))
	params := orderbook.ListParams{
		Page:     req.GetInt("page", 1),
		Limit:    req.GetInt("limit", 20),
		Statuses: req.GetString("statuses", ""),
	}

	if maker := req.GetString("maker", ""); maker != "" {
		orders, err := svc.OrdersByAddress(ctx, maker, params)
		return s.finish("get_limit_orders", orders, err)
	}
	orders, err := svc.AllOrders(ctx, params)
	return s.finish("get_limit_orders", orders, err)
}

func (s *Server) handleGetFusionQuote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("get_fusion_quote"); rejected != nil {
		return rejected, nil
	}

	fromToken, err := req.RequireString("from_token")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	toToken, err := req.RequireString("to_token")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	amount, err := req.RequireString("amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	wallet, err := req.RequireString("wallet")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc := fusion.NewService(s.sdk.Client, s.chainID(req))
	quote, err := svc.Quote(ctx, fusion.QuoteParams{
		FromTokenAddress: fromToken,
		ToTokenAddress:   toToken,
		Amount:           amount,
		WalletAddress:    wallet,
	})
	return s.finish("get_fusion_quote", quote, err)
}

func (s *Server) handleGetFusionOrders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("get_fusion_orders"); rejected != nil {
		return rejected, nil
	}

	page := req.GetInt("page", 1)
	limit := req.GetInt("limit", 20)

	if hash := req.GetString("order_hash", ""); hash != "" {
		svc := fusion.NewService(s.sdk.Client, s.chainID(req))
		status, err := svc.OrderStatus(ctx, hash)
		return s.finish("get_fusion_orders", status, err)
	}

	if req.GetBool("cross_chain", false) {
		orders, err := s.sdk.FusionPlus.ActiveOrders(ctx, page, limit)
		return s.finish("get_fusion_orders", orders, err)
	}

	svc := fusion.NewService(s.sdk.Client, s.chainID(req))
	orders, err := svc.ActiveOrders(ctx, page, limit)
	return s.finish("get_fusion_orders", orders, err)
}

func (s *Server) handleGetHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("get_history"); rejected != nil {
		return rejected, nil
	}

	address, err := req.RequireString("address")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := s.sdk.History.Events(ctx, address, history.Params{
		Limit:   req.GetInt("limit", 20),
		ChainID: req.GetInt("chain_id", 0),
	})
	return s.finish("get_history", events, err)
}

func (s *Server) handleGetPortfolio(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("get_portfolio"); rejected != nil {
		return rejected, nil
	}

	raw, err := req.RequireString("addresses")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	addresses := splitList(raw)
	if len(addresses) == 0 {
		return mcp.NewToolResultError("addresses must contain at least one address"), nil
	}

	chainID := req.GetInt("chain_id", 0)
	value, err := s.sdk.Portfolio.CurrentValue(ctx, addresses, chainID)
	if err != nil {
		return s.finish("get_portfolio", nil, err)
	}

	if !req.GetBool("include_profit", false) {
		return s.finish("get_portfolio", value, nil)
	}

	profit, err := s.sdk.Portfolio.Profit(ctx, addresses, chainID)
	if err != nil {
		return s.finish("get_portfolio", nil, err)
	}
	return s.finish("get_portfolio", map[string]any{
		"current_value": value,
		"profit":        profit,
	}, nil)
}

func (s *Server) handleGetGasPrice(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("get_gas_price"); rejected != nil {
		return rejected, nil
	}

	gp, err := s.sdk.Client.GasPrice(ctx, s.chainID(req))
	return s.finish("get_gas_price", gp, err)
}

func (s *Server) handleHealthStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if rejected := s.admit("health_status"); rejected != nil {
		return rejected, nil
	}

	if s.agg == nil {
		return s.finish("health_status", map[string]string{"status": core.StatusUp}, nil)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	snapshot := s.agg.Check(checkCtx)
	return s.finish("health_status", snapshot, nil)
}

// finish records the call outcome and renders the result as JSON text.
// Upstream errors become tool error results so agents can read them.
func (s *Server) finish(tool string, v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		s.app.RecordRequest(false)
		s.logger.Warn("tool call failed", zap.String("tool", tool), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.app.RecordRequest(false)
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}

	s.app.RecordRequest(true)
	return mcp.NewToolResultText(string(data)), nil
}

// chainID resolves the per-call chain override, falling back to the SDK's
// configured default.
func (s *Server) chainID(req mcp.CallToolRequest) int {
	return req.GetInt("chain_id", s.sdk.ChainID())
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
