package orderbook

import (
	"context"
	"encoding/json"
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

	return NewService(client, oneinch.ChainEthereum)
}

func TestCreateOrder(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orderbook/v4.0/1", r.URL.Path)

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "0xhash", req.OrderHash)
		require.Equal(t, "0xmaker", req.Data.Maker)

		_, _ = w.Write([]byte(`{"success":true}`))
	})

	resp, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		OrderHash: "0xhash",
		Signature: "0xsig",
		Data: OrderData{
			Salt:         "1",
			MakerAsset:   "0xusdc",
			TakerAsset:   "0xweth",
			Maker:        "0xmaker",
			MakingAmount: "1000",
			TakingAmount: "1",
		},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
}

func TestOrdersByAddress(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orderbook/v4.0/1/address/0xmaker", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "1,2", r.URL.Query().Get("statuses"))
		_, _ = w.Write([]byte(`[{"orderHash":"0xh1","remainingMakerAmount":"500","data":{"maker":"0xmaker","makerAsset":"0xusdc","takerAsset":"0xweth","salt":"1","makingAmount":"1000","takingAmount":"1"}}]`))
	})

	orders, err := svc.OrdersByAddress(context.Background(), "0xmaker", ListParams{Page: 2, Statuses: "1,2"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "0xh1", orders[0].OrderHash)
	require.Equal(t, "500", orders[0].RemainingMakerAmount)
}

func TestCountOrders(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orderbook/v4.0/1/count", r.URL.Path)
		_, _ = w.Write([]byte(`{"count":17}`))
	})

	count, err := svc.CountOrders(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Equal(t, 17, count.Count)
}

func TestOrderByHashNotFound(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not Found","description":"order not found"}`))
	})

	_, err := svc.OrderByHash(context.Background(), "0xmissing")

	var apiErr *oneinch.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "order not found", apiErr.Description)
}
