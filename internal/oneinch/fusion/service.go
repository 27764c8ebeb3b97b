// Package fusion covers the gasless order APIs: Fusion (same-chain Dutch
// auctions settled by resolvers) and FusionPlus (cross-chain with escrow).
package fusion

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/swaplens/swaplens/internal/oneinch"
)

// Service calls the Fusion API for one chain.
type Service struct {
	client  *oneinch.Client
	chainID int
}

// NewService returns a Fusion service bound to chainID.
func NewService(client *oneinch.Client, chainID int) *Service {
	return &Service{client: client, chainID: chainID}
}

// Quote fetches a gasless-swap quote with its preset menu.
func (s *Service) Quote(ctx context.Context, params QuoteParams) (*Quote, error) {
	query := url.Values{}
	query.Set("fromTokenAddress", params.FromTokenAddress)
	query.Set("toTokenAddress", params.ToTokenAddress)
	query.Set("amount", params.Amount)
	query.Set("walletAddress", params.WalletAddress)
	if params.EnableEstimate {
		query.Set("enableEstimate", "true")
	}

	var out Quote
	if err := s.client.Get(ctx, s.quoterPath("/quote/receive"), query, &out); err != nil {
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

// SubmitOrder sends a signed Fusion order to the relayer.
func (s *Service) SubmitOrder(ctx context.Context, input OrderInput) (*SubmitResponse, error) {
	var out SubmitResponse
	if err := s.client.Post(ctx, s.relayerPath("/order/submit"), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActiveOrders pages through orders currently in auction.
func (s *Service) ActiveOrders(ctx context.Context, page, limit int) (*ActiveOrdersPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out ActiveOrdersPage
	if err := s.client.Get(ctx, s.orderPath("/order/active"), query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderStatus reports settlement progress for one order hash.
func (s *Service) OrderStatus(ctx context.Context, orderHash string) (*OrderStatus, error) {
	var out OrderStatus
	if err := s.client.Get(ctx, s.orderPath("/order/status/"+orderHash), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) quoterPath(suffix string) string {
	return fmt.Sprintf("/fusion/quoter/v2.0/%d%s", s.chainID, suffix)
}

func (s *Service) relayerPath(suffix string) string {
	return fmt.Sprintf("/fusion/relayer/v2.0/%d%s", s.chainID, suffix)
}

func (s *Service) orderPath(suffix string) string {
	return fmt.Sprintf("/fusion/orders/v2.0/%d%s", s.chainID, suffix)
}

// PlusService calls the FusionPlus cross-chain API. Unlike the same-chain
// services it is not bound to a single chain: source and destination travel
// with each request.
type PlusService struct {
	client *oneinch.Client
}

// NewPlusService returns a FusionPlus service.
func NewPlusService(client *oneinch.Client) *PlusService {
	return &PlusService{client: client}
}

// Quote fetches a cross-chain gasless quote.
func (s *PlusService) Quote(ctx context.Context, params CrossChainQuoteParams) (*CrossChainQuote, error) {
	query := url.Values{}
	query.Set("srcChain", strconv.Itoa(params.SrcChain))
	query.Set("dstChain", strconv.Itoa(params.DstChain))
	query.Set("srcTokenAddress", params.SrcTokenAddress)
	query.Set("dstTokenAddress", params.DstTokenAddress)
	query.Set("amount", params.Amount)
	query.Set("walletAddress", params.WalletAddress)
	if params.EnableEstimate {
		query.Set("enableEstimate", "true")
	}

	var out CrossChainQuote
	if err := s.client.Get(ctx, "/fusion-plus/quoter/v1.0/quote/receive", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActiveOrders pages through cross-chain orders currently in auction.
func (s *PlusService) ActiveOrders(ctx context.Context, page, limit int) (*ActiveOrdersPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out ActiveOrdersPage
	if err := s.client.Get(ctx, "/fusion-plus/orders/v1.0/order/active", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
