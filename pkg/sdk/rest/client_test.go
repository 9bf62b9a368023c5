package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betbot/alpacasamples/internal/metrics"
)

func newTestClient(t *testing.T, h http.HandlerFunc, retries int) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Options{
		BaseURL:          srv.URL + "/",
		KeyID:            "key",
		SecretKey:        "secret",
		RetryCount:       retries,
		RetryWaitTime:    time.Millisecond,
		RetryMaxWaitTime: 5 * time.Millisecond,
	})
}

func TestClient_AuthHeadersAndQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get(HeaderKeyID))
		assert.Equal(t, "secret", r.Header.Get(HeaderSecretKey))
		assert.Equal(t, "/v2/assets", r.URL.Path)
		assert.Equal(t, "crypto", r.URL.Query().Get("asset_class"))
		assert.False(t, r.URL.Query().Has("status"), "empty params are dropped")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"symbol":"BTC/USD"}]`)
	}, 0)

	var out []struct {
		Symbol string `json:"symbol"`
	}
	err := c.Get(context.Background(), "/v2/assets", map[string]any{"asset_class": "crypto", "status": ""}, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "BTC/USD", out[0].Symbol)
}

func TestClient_PostBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "MSFT", body["symbol"])
		_, _ = io.WriteString(w, `{"id":"o-1"}`)
	}, 0)

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, c.Post(context.Background(), "/v2/orders", map[string]any{"symbol": "MSFT"}, &out))
	assert.Equal(t, "o-1", out.ID)
}

func TestClient_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"code":40310000,"message":"insufficient buying power"}`)
	}, 2)

	err := c.Get(context.Background(), "/v2/account", nil, nil)
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, 40310000, apiErr.Code)
	assert.Equal(t, "insufficient buying power", apiErr.Message)
	assert.Contains(t, err.Error(), "/v2/account")
}

func TestClient_APIErrorPlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}, 0)

	err := c.Get(context.Background(), "/v2/assets/NOPE", nil, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "not found", apiErr.Body)
	assert.Equal(t, "api error 404: not found", apiErr.Error())
}

func TestClient_RetriesRateLimit(t *testing.T) {
	retriesBefore := metrics.HTTPRetries.Value()
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, `{"ok":true}`)
	}, 3)

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.Get(context.Background(), "/v2/clock", nil, &out))
	assert.True(t, out.OK)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	assert.EqualValues(t, 2, metrics.HTTPRetries.Value()-retriesBefore)
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}, 3)

	require.Error(t, c.Get(context.Background(), "/v2/orders", nil, nil))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

type denyLimiter struct{}

func (denyLimiter) Wait(ctx context.Context) error { return context.DeadlineExceeded }
func (denyLimiter) Allow() bool                    { return false }
func (denyLimiter) GetRemaining() int              { return 0 }

func TestClient_LimiterBlocksRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Limiter: denyLimiter{}})
	err := c.Get(context.Background(), "/v2/account", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestParseRetryAfter(t *testing.T) {
	d, ok := parseRetryAfter("7")
	assert.True(t, ok)
	assert.Equal(t, 7*time.Second, d)

	_, ok = parseRetryAfter("")
	assert.False(t, ok)

	_, ok = parseRetryAfter("soon")
	assert.False(t, ok)

	d, ok = parseRetryAfter(time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat))
	assert.True(t, ok)
	assert.Zero(t, d)
}

func TestToValues(t *testing.T) {
	v := toValues(map[string]any{
		"symbols": "AAPL,MSFT",
		"limit":   100,
		"empty":   "",
		"nil":     nil,
		"list":    []string{"a", "b"},
		"none":    []string{},
	})
	assert.Equal(t, "AAPL,MSFT", v.Get("symbols"))
	assert.Equal(t, "100", v.Get("limit"))
	assert.Equal(t, []string{"a", "b"}, v["list"])
	assert.NotContains(t, v, "empty")
	assert.NotContains(t, v, "nil")
	assert.NotContains(t, v, "none")
}
