// Package portfolio covers portfolio valuation: current USD value and
// profit/loss per wallet.
package portfolio

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/swaplens/swaplens/internal/oneinch"
)

// AddressValue is one wallet's current USD value.
type AddressValue struct {
	Address  string          `json:"address"`
	ValueUSD decimal.Decimal `json:"value_usd"`
}

// CurrentValue is the valuation response across the requested wallets.
type CurrentValue struct {
	Total     decimal.Decimal `json:"total"`
	ByAddress []AddressValue  `json:"by_address"`
}

// ProfitEntry is one wallet's profit-and-loss figures.
type ProfitEntry struct {
	Address string          `json:"address"`
	AbsUSD  decimal.Decimal `json:"abs_profit_usd"`
	ROI     decimal.Decimal `json:"roi"`
}

// Service calls the portfolio API. Portfolio queries are cross-chain; an
// optional chain filter travels with each request.
type Service struct {
	client *oneinch.Client
}

// NewService returns a portfolio service.
func NewService(client *oneinch.Client) *Service {
	return &Service{client: client}
}

// CurrentValue returns the USD value of the supplied wallets. The response
// total is recomputed locally from the per-address values so it is always
// internally consistent.
func (s *Service) CurrentValue(ctx context.Context, addresses []string, chainID int) (*CurrentValue, error) {
	var out struct {
		Result []AddressValue `json:"result"`
	}
	if err := s.client.Get(ctx, "/portfolio/portfolio/v4/general/current_value", s.query(addresses, chainID), &out); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, entry := range out.Result {
		total = total.Add(entry.ValueUSD)
	}
	return &CurrentValue{Total: total, ByAddress: out.Result}, nil
}

// CurrentValueFuture is the promise variant of CurrentValue.
func (s *Service) CurrentValueFuture(ctx context.Context, addresses []string, chainID int) *oneinch.Future[*CurrentValue] {
	return oneinch.Go(ctx, func(ctx context.Context) (*CurrentValue, error) {
		return s.CurrentValue(ctx, addresses, chainID)
	})
}

// Profit returns realized profit-and-loss for the supplied wallets.
func (s *Service) Profit(ctx context.Context, addresses []string, chainID int) ([]ProfitEntry, error) {
	var out struct {
		Result []ProfitEntry `json:"result"`
	}
	if err := s.client.Get(ctx, "/portfolio/portfolio/v4/general/profit_and_loss", s.query(addresses, chainID), &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (s *Service) query(addresses []string, chainID int) url.Values {
	query := url.Values{}
	query.Set("addresses", strings.Join(addresses, ","))
	if chainID > 0 {
		query.Set("chain_id", strconv.Itoa(chainID))
	}
	return query
}
