// Package token covers token metadata: chain token lists, search and
// custom-token lookup.
package token

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/swaplens/swaplens/internal/oneinch"
)

// Token is one ERC-20 token's metadata.
type Token struct {
	Address  string   `json:"address"`
	ChainID  int      `json:"chainId"`
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Decimals int      `json:"decimals"`
	LogoURI  string   `json:"logoURI,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// SearchParams shapes a token search.
type SearchParams struct {
	Query string
	Limit int
}

// Service calls the token API for one chain.
type Service struct {
	client  *oneinch.Client
	chainID int
}

// NewService returns a token service bound to chainID.
func NewService(client *oneinch.Client, chainID int) *Service {
	return &Service{client: client, chainID: chainID}
}

// Tokens returns the whitelist token map for the chain, keyed by address.
func (s *Service) Tokens(ctx context.Context) (map[string]Token, error) {
	var out map[string]Token
	if err := s.client.Get(ctx, s.path(""), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TokensFuture is the promise variant of Tokens.
func (s *Service) TokensFuture(ctx context.Context) *oneinch.Future[map[string]Token] {
	return oneinch.Go(ctx, func(ctx context.Context) (map[string]Token, error) {
		return s.Tokens(ctx)
	})
}

// Search finds tokens matching a free-text query.
func (s *Service) Search(ctx context.Context, params SearchParams) ([]Token, error) {
	query := url.Values{}
	query.Set("query", params.Query)
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	var out []Token
	if err := s.client.Get(ctx, s.path("/search"), query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Custom resolves metadata for a token address outside the whitelist.
func (s *Service) Custom(ctx context.Context, address string) (*Token, error) {
	var out Token
	if err := s.client.Get(ctx, s.path("/custom/"+address), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) path(suffix string) string {
	return fmt.Sprintf("/token/v1.2/%d%s", s.chainID, suffix)
}
