package marketdata

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

type MarketType string

const (
	MarketTypeStocks MarketType = "stocks"
	MarketTypeCrypto MarketType = "crypto"
)

type MostActivesBy string

const (
	MostActivesByVolume MostActivesBy = "volume"
	MostActivesByTrades MostActivesBy = "trades"
)

type MostActivesRequest struct {
	Top int
	By  MostActivesBy
}

func (r MostActivesRequest) validate() error {
	if r.Top < 1 || r.Top > 100 {
		return errors.Errorf("most actives top must be 1-100, got %d", r.Top)
	}
	switch r.By {
	case MostActivesByVolume, MostActivesByTrades:
		return nil
	}
	return errors.Errorf("most actives by must be volume or trades, got %q", string(r.By))
}

type MarketMoversRequest struct {
	Top        int
	MarketType MarketType
}

func (r MarketMoversRequest) validate() error {
	if r.Top < 1 || r.Top > 50 {
		return errors.Errorf("market movers top must be 1-50, got %d", r.Top)
	}
	switch r.MarketType {
	case MarketTypeStocks, MarketTypeCrypto:
		return nil
	}
	return errors.Errorf("unknown market type %q", string(r.MarketType))
}

func (c *Client) GetMostActives(ctx context.Context, req MostActivesRequest) (*MostActives, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	var out MostActives
	params := map[string]any{"top": req.Top, "by": string(req.By)}
	if err := c.rest.Get(ctx, "/v1beta1/screener/stocks/most-actives", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMarketMovers(ctx context.Context, req MarketMoversRequest) (*Movers, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	var out Movers
	endpoint := "/v1beta1/screener/" + url.PathEscape(string(req.MarketType)) + "/movers"
	if err := c.rest.Get(ctx, endpoint, map[string]any{"top": req.Top}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
