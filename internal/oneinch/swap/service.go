// Package swap covers the classic aggregation endpoints: quotes, swap
// calldata, router approvals and liquidity sources.
package swap

import (
	"context"
	"fmt"
	"net/url"

	"github.com/swaplens/swaplens/internal/oneinch"
)

// Service calls the swap API for one chain.
type Service struct {
	client  *oneinch.Client
	chainID int
}

// NewService returns a swap service bound to chainID.
func NewService(client *oneinch.Client, chainID int) *Service {
	return &Service{client: client, chainID: chainID}
}

// ChainID returns the chain this service is bound to.
func (s *Service) ChainID() int {
	return s.chainID
}

// Quote fetches the best-route output amount for a token pair.
func (s *Service) Quote(ctx context.Context, params QuoteParams) (*Quote, error) {
	query := url.Values{}
	query.Set("src", params.Src)
	query.Set("dst", params.Dst)
	query.Set("amount", params.Amount)
	if params.Fee != "" {
		query.Set("fee", params.Fee)
	}
	if params.Protocols != "" {
		query.Set("protocols", params.Protocols)
	}
	if params.GasPrice != "" {
		query.Set("gasPrice", params.GasPrice)
	}
	if params.IncludeGas {
		query.Set("includeGas", "true")
	}
	if params.IncludeProtocols {
		query.Set("includeProtocols", "true")
	}

	var out Quote
	if err := s.client.Get(ctx, s.path("quote"), query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QuoteFuture is the promise variant of Quote.
func (s *Service) QuoteFuture(ctx context.Context, params QuoteParams) *oneinch.Future[*Quote] {
	return oneinch.Go(ctx, func(ctx context.Context) (*Quote, error) {
		return s.Quote(ctx, params)
	})
}

// QuoteStream is the channel variant of Quote.
func (s *Service) QuoteStream(ctx context.Context, params QuoteParams) <-chan oneinch.Result[*Quote] {
	return oneinch.Stream(ctx, func(ctx context.Context) (*Quote, error) {
		return s.Quote(ctx, params)
	})
}

// Swap builds the signable transaction for a routed swap.
func (s *Service) Swap(ctx context.Context, params SwapParams) (*SwapTx, error) {
	query := url.Values{}
	query.Set("src", params.Src)
	query.Set("dst", params.Dst)
	query.Set("amount", params.Amount)
	query.Set("from", params.From)
	query.Set("slippage", params.Slippage)
	if params.Origin != "" {
		query.Set("origin", params.Origin)
	}
	if params.Receiver != "" {
		query.Set("receiver", params.Receiver)
	}
	if params.Protocols != "" {
		query.Set("protocols", params.Protocols)
	}
	if params.IncludeProtocols {
		query.Set("includeProtocols", "true")
	}

	var out SwapTx
	if err := s.client.Get(ctx, s.path("swap"), query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SwapFuture is the promise variant of Swap.
func (s *Service) SwapFuture(ctx context.Context, params SwapParams) *oneinch.Future[*SwapTx] {
	return oneinch.Go(ctx, func(ctx context.Context) (*SwapTx, error) {
		return s.Swap(ctx, params)
	})
}

// Spender returns the router contract address for approvals.
func (s *Service) Spender(ctx context.Context) (*Spender, error) {
	var out Spender
	if err := s.client.Get(ctx, s.path("approve/spender"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveTransaction builds ERC-20 approval calldata for the router.
func (s *Service) ApproveTransaction(ctx context.Context, params ApproveParams) (*ApproveTx, error) {
	query := url.Values{}
	query.Set("tokenAddress", params.TokenAddress)
	if params.Amount != "" {
		query.Set("amount", params.Amount)
	}

	var out ApproveTx
	if err := s.client.Get(ctx, s.path("approve/transaction"), query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LiquiditySources lists the protocols available on this chain.
func (s *Service) LiquiditySources(ctx context.Context) (*LiquiditySources, error) {
	var out LiquiditySources
	if err := s.client.Get(ctx, s.path("liquidity-sources"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) path(suffix string) string {
	return fmt.Sprintf("/swap/v6.0/%d/%s", s.chainID, suffix)
}
