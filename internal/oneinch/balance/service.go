// Package balance covers wallet token balances and allowances, including a
// concurrent multi-wallet fan-out.
package balance

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/swaplens/swaplens/internal/oneinch"
)

// Balances maps token address to raw balance (decimal string in the token's
// smallest unit).
type Balances map[string]string

// WalletBalances pairs one wallet with its balances, preserving the request
// order in AggregatedBalances results.
type WalletBalances struct {
	Wallet   string   `json:"wallet"`
	Balances Balances `json:"balances"`
}

// Service calls the balance API for one chain.
type Service struct {
	client  *oneinch.Client
	chainID int

	// FanOutLimit bounds concurrent wallet fetches in AggregatedBalances.
	// Defaults to 4.
	FanOutLimit int
}

// NewService returns a balance service bound to chainID.
func NewService(client *oneinch.Client, chainID int) *Service {
	return &Service{client: client, chainID: chainID, FanOutLimit: 4}
}

// Balances returns non-zero token balances for one wallet.
func (s *Service) Balances(ctx context.Context, wallet string) (Balances, error) {
	var out Balances
	if err := s.client.Get(ctx, s.path("/balances/"+wallet), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BalancesFuture is the promise variant of Balances.
func (s *Service) BalancesFuture(ctx context.Context, wallet string) *oneinch.Future[Balances] {
	return oneinch.Go(ctx, func(ctx context.Context) (Balances, error) {
		return s.Balances(ctx, wallet)
	})
}

// Allowances returns token allowances granted by wallet to spender.
func (s *Service) Allowances(ctx context.Context, wallet, spender string) (Balances, error) {
	query := url.Values{}
	query.Set("spender", spender)

	var out Balances
	if err := s.client.Get(ctx, s.path("/allowances/"+wallet), query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AggregatedBalances fetches balances for several wallets concurrently. The
// result preserves the input order; the first failure cancels the rest.
func (s *Service) AggregatedBalances(ctx context.Context, wallets []string) ([]WalletBalances, error) {
	results := make([]WalletBalances, len(wallets))

	g, ctx := errgroup.WithContext(ctx)
	limit := s.FanOutLimit
	if limit < 1 {
		limit = 4
	}
	g.SetLimit(limit)

	for i, wallet := range wallets {
		g.Go(func() error {
			balances, err := s.Balances(ctx, wallet)
			if err != nil {
				return fmt.Errorf("wallet %s: %w", wallet, err)
			}
			results[i] = WalletBalances{Wallet: wallet, Balances: balances}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) path(suffix string) string {
	return fmt.Sprintf("/balance/v1.2/%d%s", s.chainID, suffix)
}
