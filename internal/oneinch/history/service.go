// Package history covers the wallet transaction-history API.
package history

import (
	"context"
	"net/url"
	"strconv"

	"github.com/swaplens/swaplens/internal/oneinch"
)

// TokenAction is one token movement inside an event.
type TokenAction struct {
	Address   string `json:"address"`
	Standard  string `json:"standard"`
	FromAddr  string `json:"fromAddress"`
	ToAddr    string `json:"toAddress"`
	Amount    string `json:"amount"`
	Direction string `json:"direction"`
}

// EventDetails carries the transaction-level data of an event.
type EventDetails struct {
	TxHash       string        `json:"txHash"`
	ChainID      int           `json:"chainId"`
	BlockNumber  int64         `json:"blockNumber"`
	BlockTime    int64         `json:"blockTimeSec"`
	Status       string        `json:"status"`
	Type         string        `json:"type"`
	TokenActions []TokenAction `json:"tokenActions,omitempty"`
	FeeInWei     string        `json:"feeInWei,omitempty"`
}

// Event is one history entry for a wallet.
type Event struct {
	ID      string       `json:"id"`
	Address string       `json:"address"`
	Type    int          `json:"type"`
	Rating  string       `json:"rating"`
	TimeMs  int64        `json:"timeMs"`
	Details EventDetails `json:"details"`
}

// EventsResponse is the paged history listing.
type EventsResponse struct {
	Items        []Event `json:"items"`
	CacheCounter int     `json:"cache_counter"`
}

// Params filters a history query.
type Params struct {
	Limit      int
	ChainID    int
	TokenAddr  string
	FromTimeMs int64
	ToTimeMs   int64
}

// Service calls the history API. History is cross-chain: the chain filter
// travels with each request.
type Service struct {
	client *oneinch.Client
}

// NewService returns a history service.
func NewService(client *oneinch.Client) *Service {
	return &Service{client: client}
}

// Events lists history entries for one wallet address, newest first.
func (s *Service) Events(ctx context.Context, address string, params Params) (*EventsResponse, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.ChainID > 0 {
		query.Set("chainId", strconv.Itoa(params.ChainID))
	}
	if params.TokenAddr != "" {
		query.Set("tokenAddress", params.TokenAddr)
	}
	if params.FromTimeMs > 0 {
		query.Set("fromTimestampMs", strconv.FormatInt(params.FromTimeMs, 10))
	}
	if params.ToTimeMs > 0 {
		query.Set("toTimestampMs", strconv.FormatInt(params.ToTimeMs, 10))
	}

	var out EventsResponse
	if err := s.client.Get(ctx, "/history/v2.0/history/"+address+"/events", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EventsFuture is the promise variant of Events.
func (s *Service) EventsFuture(ctx context.Context, address string, params Params) *oneinch.Future[*EventsResponse] {
	return oneinch.Go(ctx, func(ctx context.Context) (*EventsResponse, error) {
		return s.Events(ctx, address, params)
	})
}
