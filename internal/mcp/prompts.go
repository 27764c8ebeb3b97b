package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("analyze_swap_route",
		mcp.WithPromptDescription("Analyze the route, price impact and gas cost of a proposed swap."),
		mcp.WithArgument("src", mcp.ArgumentDescription("Source token address or symbol"), mcp.RequiredArgument()),
		mcp.WithArgument("dst", mcp.ArgumentDescription("Destination token address or symbol"), mcp.RequiredArgument()),
		mcp.WithArgument("amount", mcp.ArgumentDescription("Amount to swap in the source token's smallest unit"), mcp.RequiredArgument()),
	), s.handleAnalyzeSwapRoute)

	s.mcp.AddPrompt(mcp.NewPrompt("compare_tokens",
		mcp.WithPromptDescription("Compare two tokens across metadata, liquidity and current pricing."),
		mcp.WithArgument("token_a", mcp.ArgumentDescription("First token address or symbol"), mcp.RequiredArgument()),
		mcp.WithArgument("token_b", mcp.ArgumentDescription("Second token address or symbol"), mcp.RequiredArgument()),
	), s.handleCompareTokens)

	s.mcp.AddPrompt(mcp.NewPrompt("wallet_overview",
		mcp.WithPromptDescription("Summarize a wallet: balances, portfolio value, open orders and recent activity."),
		mcp.WithArgument("address", mcp.ArgumentDescription("Wallet address to analyze"), mcp.RequiredArgument()),
	), s.handleWalletOverview)
}

func (s *Server) handleAnalyzeSwapRoute(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	src := req.Params.Arguments["src"]
	dst := req.Params.Arguments["dst"]
	amount := req.Params.Arguments["amount"]
	if src == "" || dst == "" || amount == "" {
		return nil, fmt.Errorf("src, dst and amount arguments are required")
	}

	text := fmt.Sprintf(`Analyze the swap of %s units of token %s into token %s.

Use the get_quote tool with include_protocols enabled to fetch the current
route, then the get_gas_price tool for the fee market. Report:
1. The expected output amount and the effective exchange rate.
2. The route split: which liquidity sources are used and in what proportion.
3. The estimated gas cost at the current medium fee tier.
4. Whether splitting across more sources or a different amount would likely
   improve the rate.`, amount, src, dst)

	return &mcp.GetPromptResult{
		Description: "Swap route analysis",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.TextContent{Type: "text", Text: text},
			},
		},
	}, nil
}

func (s *Server) handleCompareTokens(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	tokenA := req.Params.Arguments["token_a"]
	tokenB := req.Params.Arguments["token_b"]
	if tokenA == "" || tokenB == "" {
		return nil, fmt.Errorf("token_a and token_b arguments are required")
	}

	text := fmt.Sprintf(`Compare the tokens %s and %s.

Use the search_tokens tool to resolve each token's metadata, then get_quote
in both directions with a representative amount to gauge pricing and
liquidity depth. Report:
1. Name, symbol, decimals and contract address of each token.
2. The current exchange rate between them, both directions.
3. Route complexity as a liquidity proxy: a direct pool versus multi-hop.
4. Any notable asymmetry between the two quote directions.`, tokenA, tokenB)

	return &mcp.GetPromptResult{
		Description: "Token comparison",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.TextContent{Type: "text", Text: text},
			},
		},
	}, nil
}

func (s *Server) handleWalletOverview(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	address := req.Params.Arguments["address"]
	if address == "" {
		return nil, fmt.Errorf("address argument is required")
	}

	text := fmt.Sprintf(`Build an overview of wallet %s.

Gather data with these tools: get_balances for token holdings, get_portfolio
with include_profit for USD value and P&L, get_limit_orders with this wallet
as maker for open orders, and get_history for recent activity. Report:
1. Total portfolio value and the largest holdings.
2. Profit and loss with ROI.
3. Open limit orders, if any, and how far they are from filling.
4. A short summary of recent transaction activity.`, address)

	return &mcp.GetPromptResult{
		Description: "Wallet overview",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.TextContent{Type: "text", Text: text},
			},
		},
	}, nil
}
