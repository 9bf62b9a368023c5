// Package samples holds one runner per sample. Each runner builds its
// requests, calls the client in order and prints every response.
package samples

import (
	"context"

	"github.com/betbot/alpacasamples/pkg/sdk/marketdata"
	"github.com/betbot/alpacasamples/pkg/sdk/stream"
	"github.com/betbot/alpacasamples/pkg/sdk/trading"
)

// TradingClient is the slice of trading.Client the trade samples use.
type TradingClient interface {
	GetAccount(ctx context.Context) (*trading.Account, error)
	GetAccountConfigurations(ctx context.Context) (*trading.AccountConfigurations, error)
	GetAllAssets(ctx context.Context, req trading.GetAssetsRequest) ([]trading.Asset, error)
	GetAsset(ctx context.Context, symbolOrID string) (*trading.Asset, error)
	GetCorporateAnnouncements(ctx context.Context, req trading.GetCorporateAnnouncementsRequest) ([]trading.CorporateActionAnnouncement, error)
	GetCorporateAnnouncementByID(ctx context.Context, id string) (*trading.CorporateActionAnnouncement, error)
	SubmitOrder(ctx context.Context, req trading.OrderRequest) (*trading.Order, error)
}

type StockDataClient interface {
	GetStockQuotes(ctx context.Context, req marketdata.HistoricalRequest) (marketdata.QuoteSet, error)
	GetStockBars(ctx context.Context, req marketdata.BarsRequest) (marketdata.BarSet, error)
	GetStockLatestBar(ctx context.Context, req marketdata.LatestRequest) (map[string]marketdata.Bar, error)
}

type CryptoDataClient interface {
	GetCryptoBars(ctx context.Context, req marketdata.BarsRequest) (marketdata.BarSet, error)
	GetCryptoLatestOrderbook(ctx context.Context, req marketdata.LatestRequest) (map[string]marketdata.Orderbook, error)
	GetCryptoTrades(ctx context.Context, req marketdata.HistoricalRequest) (marketdata.TradeSet, error)
	GetCryptoSnapshot(ctx context.Context, req marketdata.LatestRequest) (map[string]marketdata.Snapshot, error)
}

type NewsClient interface {
	GetNews(ctx context.Context, req marketdata.NewsRequest) (*marketdata.NewsSet, error)
}

type ScreenerClient interface {
	GetMostActives(ctx context.Context, req marketdata.MostActivesRequest) (*marketdata.MostActives, error)
	GetMarketMovers(ctx context.Context, req marketdata.MarketMoversRequest) (*marketdata.Movers, error)
}

type StreamClient interface {
	Run(ctx context.Context, sub stream.Subscription, handler stream.Handler) error
}

var (
	_ TradingClient    = (*trading.Client)(nil)
	_ StockDataClient  = (*marketdata.Client)(nil)
	_ CryptoDataClient = (*marketdata.Client)(nil)
	_ NewsClient       = (*marketdata.Client)(nil)
	_ ScreenerClient   = (*marketdata.Client)(nil)
	_ StreamClient     = (*stream.Client)(nil)
)
