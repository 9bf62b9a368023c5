package marketdata

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"time"

	"github.com/pkg/errors"

	"github.com/betbot/alpacasamples/pkg/ratelimit"
	"github.com/betbot/alpacasamples/pkg/sdk/rest"
)

const (
	DefaultBaseURL        = "https://data.alpaca.markets"
	DefaultCryptoLocation = "us"

	// maxPageLimit is the largest page the historical endpoints return.
	maxPageLimit = 10000
)

type ClientOptions struct {
	KeyID     string
	SecretKey string
	BaseURL   string
	// Feed is the default stock feed (iex, sip, ...); empty lets the server pick.
	Feed           string
	CryptoLocation string
	Timeout        time.Duration
	RetryCount     int
	Limiter        ratelimit.RateLimiter
}

// Client serves the stock, crypto, news and screener endpoints of the data API.
type Client struct {
	rest           *rest.Client
	feed           string
	cryptoLocation string
}

func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	loc := opts.CryptoLocation
	if loc == "" {
		loc = DefaultCryptoLocation
	}
	return &Client{
		rest: rest.NewClient(rest.Options{
			BaseURL:    baseURL,
			KeyID:      opts.KeyID,
			SecretKey:  opts.SecretKey,
			Timeout:    opts.Timeout,
			RetryCount: opts.RetryCount,
			Limiter:    opts.Limiter,
		}),
		feed:           opts.Feed,
		cryptoLocation: loc,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func pageLimit(limit, received int) int {
	if limit <= 0 {
		return maxPageLimit
	}
	return min(limit-received, maxPageLimit)
}

// paginate follows next_page_token until it is empty or limit items have
// been collected across all symbols. A limit of 0 fetches everything. key is
// the envelope field holding the per-symbol items ("bars", "quotes", ...).
func paginate[T any](ctx context.Context, c *Client, endpoint, key string, params map[string]any, limit int) (map[string][]T, error) {
	out := make(map[string][]T)
	received := 0
	token := ""
	for {
		q := make(map[string]any, len(params)+2)
		for k, v := range params {
			q[k] = v
		}
		q["limit"] = pageLimit(limit, received)
		q["page_token"] = token

		var page map[string]json.RawMessage
		if err := c.rest.Get(ctx, endpoint, q, &page); err != nil {
			return nil, err
		}
		var items map[string][]T
		if raw, ok := page[key]; ok && string(raw) != "null" {
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, errors.Wrapf(err, "decode %s", key)
			}
		}
		// a page larger than asked for is cut so limit stays an upper bound
		for _, sym := range slices.Sorted(maps.Keys(items)) {
			list := items[sym]
			if limit > 0 && received+len(list) > limit {
				list = list[:limit-received]
			}
			if len(list) == 0 {
				continue
			}
			out[sym] = append(out[sym], list...)
			received += len(list)
		}

		token = ""
		if raw, ok := page["next_page_token"]; ok {
			_ = json.Unmarshal(raw, &token)
		}
		if token == "" || (limit > 0 && received >= limit) {
			return out, nil
		}
	}
}

// latest decodes {key: {symbol: T}} responses.
func latest[T any](ctx context.Context, c *Client, endpoint, key string, params map[string]any) (map[string]T, error) {
	var page map[string]json.RawMessage
	if err := c.rest.Get(ctx, endpoint, params, &page); err != nil {
		return nil, err
	}
	out := make(map[string]T)
	if raw, ok := page[key]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, errors.Wrapf(err, "decode %s", key)
		}
	}
	return out, nil
}
