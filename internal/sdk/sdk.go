// Package sdk wires the shared HTTP client and every per-resource service
// into one facade. Construction resolves the API key (explicit value first,
// then the environment) and fails fast when none is found.
package sdk

import (
	"github.com/swaplens/swaplens/internal/oneinch"
	"github.com/swaplens/swaplens/internal/oneinch/balance"
	"github.com/swaplens/swaplens/internal/oneinch/fusion"
	"github.com/swaplens/swaplens/internal/oneinch/history"
	"github.com/swaplens/swaplens/internal/oneinch/orderbook"
	"github.com/swaplens/swaplens/internal/oneinch/portfolio"
	"github.com/swaplens/swaplens/internal/oneinch/swap"
	"github.com/swaplens/swaplens/internal/oneinch/token"
)

// SDK aggregates the per-resource services over one shared client.
type SDK struct {
	Client *oneinch.Client

	Swap       *swap.Service
	Orderbook  *orderbook.Service
	Fusion     *fusion.Service
	FusionPlus *fusion.PlusService
	Token      *token.Service
	Balance    *balance.Service
	History    *history.Service
	Portfolio  *portfolio.Service

	chainID int
}

// New builds the facade for one default chain. Cross-chain services
// (FusionPlus, History, Portfolio) ignore the default and carry chain
// parameters per request.
func New(cfg oneinch.Config, chainID int) (*SDK, error) {
	if chainID <= 0 {
		chainID = oneinch.ChainEthereum
	}

	client, err := oneinch.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &SDK{
		Client:     client,
		Swap:       swap.NewService(client, chainID),
		Orderbook:  orderbook.NewService(client, chainID),
		Fusion:     fusion.NewService(client, chainID),
		FusionPlus: fusion.NewPlusService(client),
		Token:      token.NewService(client, chainID),
		Balance:    balance.NewService(client, chainID),
		History:    history.NewService(client),
		Portfolio:  portfolio.NewService(client),
		chainID:    chainID,
	}, nil
}

// ChainID returns the default chain the single-chain services are bound to.
func (s *SDK) ChainID() int {
	return s.chainID
}
