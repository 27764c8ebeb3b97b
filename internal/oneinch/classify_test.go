package oneinch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyRichShape(t *testing.T) {
	body := []byte(`{"statusCode":400,"error":"Bad Request","description":"insufficient liquidity","requestId":"req-1","meta":[{"type":"token","value":"0xdead"}]}`)

	err := Classify(400, "local-id", body)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
	require.Equal(t, "Bad Request", apiErr.Code)
	require.Equal(t, "insufficient liquidity", apiErr.Description)
	require.Equal(t, "req-1", apiErr.RequestID)
	require.Len(t, apiErr.Meta, 1)
	require.Equal(t, "token", apiErr.Meta[0].Type)
}

func TestClassifyGenericShape(t *testing.T) {
	body := []byte(`{"error":"LimitOrderError","description":"order expired"}`)

	err := Classify(422, "local-id", body)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 422, apiErr.StatusCode)
	require.Equal(t, "LimitOrderError", apiErr.Code)
	require.Equal(t, "order expired", apiErr.Description)
	// Body carried no request id, the local correlation id fills in.
	require.Equal(t, "local-id", apiErr.RequestID)
}

func TestClassifyMessageShape(t *testing.T) {
	body := []byte(`{"message":"Forbidden"}`)

	err := Classify(403, "local-id", body)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 403, apiErr.StatusCode)
	require.Equal(t, "Forbidden", apiErr.Code)
}

func TestClassifyPriorityIsDeterministic(t *testing.T) {
	// This body satisfies the rich, generic and message shapes at once.
	// The rich shape is first in the priority list, so it must win.
	body := []byte(`{"statusCode":429,"error":"Too Many Requests","description":"slow down","message":"rate limited"}`)

	err := Classify(429, "local-id", body)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 429, apiErr.StatusCode)
	require.Equal(t, "Too Many Requests", apiErr.Code)
	require.Equal(t, "slow down", apiErr.Description)
}

func TestClassifyGenericBeatsMessage(t *testing.T) {
	// No statusCode, so the rich attempt fails; generic outranks message.
	body := []byte(`{"error":"E","description":"d","message":"m"}`)

	err := Classify(400, "local-id", body)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "E", apiErr.Code)
	require.Equal(t, "d", apiErr.Description)
}

func TestClassifyMalformedBodyRoundTrips(t *testing.T) {
	for _, body := range []string{
		"not json at all",
		`{"unrelated":true}`,
		`<html>502 Bad Gateway</html>`,
		"",
	} {
		err := Classify(502, "local-id", []byte(body))

		var rawErr *RawResponseError
		require.ErrorAs(t, err, &rawErr, "body %q", body)
		require.Equal(t, 502, rawErr.StatusCode)
		// The original body survives verbatim.
		require.Equal(t, body, string(rawErr.Body))
	}
}

func TestClassifyNeverReturnsUntypedError(t *testing.T) {
	err := Classify(500, "local-id", []byte(`{"error":"x"}`))

	var apiErr *APIError
	var rawErr *RawResponseError
	require.True(t, errors.As(err, &apiErr) || errors.As(err, &rawErr))
}
