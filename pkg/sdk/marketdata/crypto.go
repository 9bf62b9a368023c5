package marketdata

import (
	"context"
	"net/url"
	"strings"
)

func (c *Client) cryptoPath(suffix string) string {
	return "/v1beta3/crypto/" + url.PathEscape(c.cryptoLocation) + suffix
}

func (c *Client) GetCryptoBars(ctx context.Context, req BarsRequest) (BarSet, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p := req.HistoricalRequest.params()
	p["timeframe"] = req.TimeFrame.String()
	return paginate[Bar](ctx, c, c.cryptoPath("/bars"), "bars", p, req.Limit)
}

func (c *Client) GetCryptoQuotes(ctx context.Context, req HistoricalRequest) (QuoteSet, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return paginate[Quote](ctx, c, c.cryptoPath("/quotes"), "quotes", req.params(), req.Limit)
}

func (c *Client) GetCryptoTrades(ctx context.Context, req HistoricalRequest) (TradeSet, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return paginate[Trade](ctx, c, c.cryptoPath("/trades"), "trades", req.params(), req.Limit)
}

func cryptoSymbols(req LatestRequest) map[string]any {
	return map[string]any{"symbols": strings.Join(req.Symbols, ",")}
}

func (c *Client) GetCryptoLatestOrderbook(ctx context.Context, req LatestRequest) (map[string]Orderbook, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return latest[Orderbook](ctx, c, c.cryptoPath("/latest/orderbooks"), "orderbooks", cryptoSymbols(req))
}

func (c *Client) GetCryptoLatestBar(ctx context.Context, req LatestRequest) (map[string]Bar, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return latest[Bar](ctx, c, c.cryptoPath("/latest/bars"), "bars", cryptoSymbols(req))
}

func (c *Client) GetCryptoSnapshot(ctx context.Context, req LatestRequest) (map[string]Snapshot, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return latest[Snapshot](ctx, c, c.cryptoPath("/snapshots"), "snapshots", cryptoSymbols(req))
}
