// Package orderbook covers the limit-order API: submitting signed orders and
// querying the stored book.
package orderbook

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/swaplens/swaplens/internal/oneinch"
)

// Service calls the orderbook API for one chain.
type Service struct {
	client  *oneinch.Client
	chainID int
}

// NewService returns an orderbook service bound to chainID.
func NewService(client *oneinch.Client, chainID int) *Service {
	return &Service{client: client, chainID: chainID}
}

// CreateOrder submits a signed limit order.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	var out CreateOrderResponse
	if err := s.client.Post(ctx, s.path(""), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrdersByAddress lists orders created by one maker address.
func (s *Service) OrdersByAddress(ctx context.Context, address string, params ListParams) ([]Order, error) {
	var out []Order
	if err := s.client.Get(ctx, s.path("/address/"+address), listQuery(params), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllOrders lists orders across all makers.
func (s *Service) AllOrders(ctx context.Context, params ListParams) ([]Order, error) {
	var out []Order
	if err := s.client.Get(ctx, s.path("/all"), listQuery(params), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllOrdersFuture is the promise variant of AllOrders.
func (s *Service) AllOrdersFuture(ctx context.Context, params ListParams) *oneinch.Future[[]Order] {
	return oneinch.Go(ctx, func(ctx context.Context) ([]Order, error) {
		return s.AllOrders(ctx, params)
	})
}

// OrderByHash fetches one order.
func (s *Service) OrderByHash(ctx context.Context, orderHash string) (*Order, error) {
	var out Order
	if err := s.client.Get(ctx, s.path("/order/"+orderHash), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CountOrders counts orders matching the filter.
func (s *Service) CountOrders(ctx context.Context, params ListParams) (*OrderCount, error) {
	var out OrderCount
	if err := s.client.Get(ctx, s.path("/count"), listQuery(params), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Events lists recent fill and cancel events on the book.
func (s *Service) Events(ctx context.Context, limit int) ([]OrderEvent, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out []OrderEvent
	if err := s.client.Get(ctx, s.path("/events"), query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func listQuery(params ListParams) url.Values {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Statuses != "" {
		query.Set("statuses", params.Statuses)
	}
	if params.MakerAsset != "" {
		query.Set("makerAsset", params.MakerAsset)
	}
	if params.TakerAsset != "" {
		query.Set("takerAsset", params.TakerAsset)
	}
	return query
}

func (s *Service) path(suffix string) string {
	return fmt.Sprintf("/orderbook/v4.0/%d%s", s.chainID, suffix)
}
