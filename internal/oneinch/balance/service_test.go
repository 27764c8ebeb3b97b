package balance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
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

	return NewService(client, oneinch.ChainEthereum)
}

func TestBalances(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/balance/v1.2/1/balances/0xwallet", r.URL.Path)
		_, _ = w.Write([]byte(`{"0xusdc":"1200000","0xweth":"4000000000000000000"}`))
	})

	balances, err := svc.Balances(context.Background(), "0xwallet")
	require.NoError(t, err)
	require.Equal(t, "1200000", balances["0xusdc"])
}

func TestAllowances(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/balance/v1.2/1/allowances/0xwallet", r.URL.Path)
		require.Equal(t, "0xrouter", r.URL.Query().Get("spender"))
		_, _ = w.Write([]byte(`{"0xusdc":"0"}`))
	})

	allowances, err := svc.Allowances(context.Background(), "0xwallet", "0xrouter")
	require.NoError(t, err)
	require.Equal(t, "0", allowances["0xusdc"])
}

func TestAggregatedBalancesPreservesOrder(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		wallet := strings.TrimPrefix(r.URL.Path, "/balance/v1.2/1/balances/")
		_, _ = w.Write([]byte(`{"0xtoken":"` + wallet + `"}`))
	})

	wallets := []string{"0xaaa", "0xbbb", "0xccc"}
	results, err := svc.AggregatedBalances(context.Background(), wallets)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, wallet := range wallets {
		require.Equal(t, wallet, results[i].Wallet)
		require.Equal(t, wallet, results[i].Balances["0xtoken"])
	}
}

func TestAggregatedBalancesFailsFast(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "0xbad") {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"statusCode":400,"error":"Bad Request","description":"bad wallet"}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := svc.AggregatedBalances(context.Background(), []string{"0xok", "0xbad"})

	var apiErr *oneinch.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, err.Error(), "0xbad")
}
