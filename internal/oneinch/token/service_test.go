package token

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swaplens/swaplens/internal/oneinch"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	client, err := oneinch.NewClient(oneinch.Config{BaseURL: backend.URL, APIKey: "test-key"})
	require.NoError(t, err)

	return NewService(client, oneinch.ChainPolygon)
}

func TestTokens(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token/v1.2/137", r.URL.Path)
		_, _ = w.Write([]byte(`{"0xusdc":{"address":"0xusdc","chainId":137,"symbol":"USDC","name":"USD Coin","decimals":6}}`))
	})

	tokens, err := svc.Tokens(context.Background())
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, "USDC", tokens["0xusdc"].Symbol)
	require.Equal(t, 6, tokens["0xusdc"].Decimals)
}

func TestSearch(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token/v1.2/137/search", r.URL.Path)
		require.Equal(t, "usd", r.URL.Query().Get("query"))
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"address":"0xusdt","symbol":"USDT","name":"Tether","decimals":6}]`))
	})

	tokens, err := svc.Search(context.Background(), SearchParams{Query: "usd", Limit: 5})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, "USDT", tokens[0].Symbol)
}

func TestCustom(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token/v1.2/137/custom/0xabc", r.URL.Path)
		_, _ = w.Write([]byte(`{"address":"0xabc","symbol":"ABC","name":"Alphabet","decimals":18}`))
	})

	tok, err := svc.Custom(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Equal(t, "ABC", tok.Symbol)
}
