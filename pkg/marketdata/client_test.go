package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJSONDecodesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Name": "Apple Inc."}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := New(Config{})
	got, err := client.FetchJSON(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Name": "Apple Inc."}, got)
}

func TestFetchJSONStatusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New(Config{})
	_, err := client.FetchJSON(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetchJSONUnwrapsProxyEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"contents": "{\"price\": 10.5}", "status": {"http_code": 200}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := New(Config{})
	got, err := client.FetchJSON(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"price": 10.5}, got)
}

func TestFetchJSONMockScheme(t *testing.T) {
	client := New(Config{})
	got, err := client.FetchJSON(context.Background(), "mock://finance-card/watchlist")
	require.NoError(t, err)
	records, ok := got.([]any)
	require.True(t, ok)
	assert.NotEmpty(t, records)

	_, err = client.FetchJSON(context.Background(), "mock://unknown")
	assert.Error(t, err)
}

func TestFetchJSONIndianAPIRequiresKey(t *testing.T) {
	client := New(Config{})
	_, err := client.FetchJSON(context.Background(), "https://stock.indianapi.in/stock?name=TCS")
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestEndpointsRequireAlphaVantageKey(t *testing.T) {
	endpoints := NewEndpoints(Credentials{})
	_, err := endpoints.OverviewURL("AAPL")
	assert.True(t, errors.Is(err, ErrNoAPIKey))
	_, err = endpoints.DailySeriesURL("AAPL")
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestEndpointsBuildAlphaVantageURLs(t *testing.T) {
	endpoints := NewEndpoints(Credentials{AlphaVantage: "demo"})

	url, err := endpoints.OverviewURL("AAPL")
	require.NoError(t, err)
	assert.Contains(t, url, "function=OVERVIEW")
	assert.Contains(t, url, "symbol=AAPL")
	assert.Contains(t, url, "apikey=demo")

	url, err = endpoints.DailySeriesURL("MSFT")
	require.NoError(t, err)
	assert.Contains(t, url, "function=TIME_SERIES_DAILY")
	assert.Contains(t, url, "symbol=MSFT")
}
