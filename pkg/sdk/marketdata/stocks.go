package marketdata

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Sort string

const (
	SortAsc  Sort = "asc"
	SortDesc Sort = "desc"
)

// HistoricalRequest holds the parameters shared by bars, quotes and trades.
// Limit is the total number of items across all symbols, 0 for no limit.
type HistoricalRequest struct {
	Symbols []string
	Start   time.Time
	End     time.Time
	Limit   int
	Sort    Sort
	// Feed overrides the client default for stock requests.
	Feed string
}

func (r HistoricalRequest) validate() error {
	if len(r.Symbols) == 0 {
		return errors.New("at least one symbol is required")
	}
	if r.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return errors.New("end must not be before start")
	}
	switch r.Sort {
	case "", SortAsc, SortDesc:
	default:
		return errors.New("sort must be asc or desc")
	}
	return nil
}

func (r HistoricalRequest) params() map[string]any {
	return map[string]any{
		"symbols": strings.Join(r.Symbols, ","),
		"start":   formatTime(r.Start),
		"end":     formatTime(r.End),
		"sort":    string(r.Sort),
	}
}

type Adjustment string

const (
	AdjustmentRaw      Adjustment = "raw"
	AdjustmentSplit    Adjustment = "split"
	AdjustmentDividend Adjustment = "dividend"
	AdjustmentAll      Adjustment = "all"
)

type BarsRequest struct {
	HistoricalRequest
	TimeFrame TimeFrame
	// Adjustment applies to stock bars only.
	Adjustment Adjustment
}

func (r BarsRequest) validate() error {
	if err := r.HistoricalRequest.validate(); err != nil {
		return err
	}
	return r.TimeFrame.Validate()
}

func (r BarsRequest) params() map[string]any {
	p := r.HistoricalRequest.params()
	p["timeframe"] = r.TimeFrame.String()
	p["adjustment"] = string(r.Adjustment)
	return p
}

// LatestRequest asks for the most recent item per symbol.
type LatestRequest struct {
	Symbols []string
	Feed    string
}

func (r LatestRequest) validate() error {
	if len(r.Symbols) == 0 {
		return errors.New("at least one symbol is required")
	}
	return nil
}

func (c *Client) stockFeed(feed string) string {
	if feed != "" {
		return feed
	}
	return c.feed
}

func (c *Client) GetStockBars(ctx context.Context, req BarsRequest) (BarSet, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p := req.params()
	p["feed"] = c.stockFeed(req.Feed)
	return paginate[Bar](ctx, c, "/v2/stocks/bars", "bars", p, req.Limit)
}

func (c *Client) GetStockQuotes(ctx context.Context, req HistoricalRequest) (QuoteSet, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p := req.params()
	p["feed"] = c.stockFeed(req.Feed)
	return paginate[Quote](ctx, c, "/v2/stocks/quotes", "quotes", p, req.Limit)
}

func (c *Client) GetStockTrades(ctx context.Context, req HistoricalRequest) (TradeSet, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p := req.params()
	p["feed"] = c.stockFeed(req.Feed)
	return paginate[Trade](ctx, c, "/v2/stocks/trades", "trades", p, req.Limit)
}

func (c *Client) latestStockParams(req LatestRequest) map[string]any {
	return map[string]any{
		"symbols": strings.Join(req.Symbols, ","),
		"feed":    c.stockFeed(req.Feed),
	}
}

func (c *Client) GetStockLatestBar(ctx context.Context, req LatestRequest) (map[string]Bar, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return latest[Bar](ctx, c, "/v2/stocks/bars/latest", "bars", c.latestStockParams(req))
}

func (c *Client) GetStockLatestQuote(ctx context.Context, req LatestRequest) (map[string]Quote, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return latest[Quote](ctx, c, "/v2/stocks/quotes/latest", "quotes", c.latestStockParams(req))
}

func (c *Client) GetStockLatestTrade(ctx context.Context, req LatestRequest) (map[string]Trade, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return latest[Trade](ctx, c, "/v2/stocks/trades/latest", "trades", c.latestStockParams(req))
}

// GetStockSnapshot returns snapshots keyed by symbol. The endpoint has no
// envelope, so the body is the map itself.
func (c *Client) GetStockSnapshot(ctx context.Context, req LatestRequest) (map[string]Snapshot, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	out := make(map[string]Snapshot)
	if err := c.rest.Get(ctx, "/v2/stocks/snapshots", c.latestStockParams(req), &out); err != nil {
		return nil, err
	}
	return out, nil
}
