package oneinch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type pingResponse struct {
	Value string `json:"value"`
}

// newPingBackend alternates between a fixed success body and a classified
// error body so one backend serves all three adapter tests.
func newPingBackend(t *testing.T, fail bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"statusCode":400,"error":"Bad Request","description":"nope"}`))
			return
		}
		_, _ = w.Write([]byte(`{"value":"pong"}`))
	}))
}

func pingOp(client *Client) func(context.Context) (*pingResponse, error) {
	return func(ctx context.Context) (*pingResponse, error) {
		var out pingResponse
		if err := client.Get(ctx, "/ping", nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
}

func TestAdaptersProduceIdenticalSuccess(t *testing.T) {
	backend := newPingBackend(t, false)
	defer backend.Close()

	client, err := NewClient(Config{BaseURL: backend.URL, APIKey: "k"})
	require.NoError(t, err)
	op := pingOp(client)
	ctx := context.Background()

	blocking, err := op(ctx)
	require.NoError(t, err)

	async, err := Go(ctx, op).Await(ctx)
	require.NoError(t, err)

	streamed := <-Stream(ctx, op)
	require.NoError(t, streamed.Err)

	require.Equal(t, blocking, async)
	require.Equal(t, blocking, streamed.Value)
}

func TestAdaptersProduceIdenticallyTypedErrors(t *testing.T) {
	backend := newPingBackend(t, true)
	defer backend.Close()

	client, err := NewClient(Config{BaseURL: backend.URL, APIKey: "k"})
	require.NoError(t, err)
	op := pingOp(client)
	ctx := context.Background()

	_, blockingErr := op(ctx)
	_, asyncErr := Go(ctx, op).Await(ctx)
	streamed := <-Stream(ctx, op)

	for _, err := range []error{blockingErr, asyncErr, streamed.Err} {
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "nope", apiErr.Description)
	}
}

func TestFutureResolvesWithoutAwait(t *testing.T) {
	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("future did not resolve")
	}

	value, err := f.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, value)
}

func TestFutureCancelPropagates(t *testing.T) {
	var sawCancel atomic.Bool

	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		<-ctx.Done()
		sawCancel.Store(true)
		return 0, ctx.Err()
	})

	f.Cancel()

	_, err := f.Await(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, sawCancel.Load())
}

func TestAwaitResolvedFutureIgnoresExpiredContext(t *testing.T) {
	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("future did not resolve")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	value, err := f.Await(ctx)
	require.NoError(t, err)
	require.Equal(t, 42, value)
}

func TestAwaitReturnsOnContextExpiry(t *testing.T) {
	release := make(chan struct{})
	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		select {
		case <-release:
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	require.Error(t, err)
}

func TestStreamEmitsExactlyOneResult(t *testing.T) {
	ch := Stream(context.Background(), func(ctx context.Context) (string, error) {
		return "once", nil
	})

	first, ok := <-ch
	require.True(t, ok)
	require.Equal(t, "once", first.Value)

	_, ok = <-ch
	require.False(t, ok, "channel must close after the single result")
}
