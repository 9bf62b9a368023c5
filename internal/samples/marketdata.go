package samples

import (
	"context"
	"time"

	"github.com/betbot/alpacasamples/pkg/logger"
	"github.com/betbot/alpacasamples/pkg/sdk/marketdata"
)

// HistoryParams select a symbol, a time range and a bar size.
type HistoryParams struct {
	Symbol    string
	Start     time.Time
	End       time.Time
	TimeFrame marketdata.TimeFrame
	Limit     int
}

func defaultRange() (time.Time, time.Time) {
	return time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC)
}

func DefaultCryptoParams() HistoryParams {
	start, end := defaultRange()
	return HistoryParams{Symbol: "BTC/USD", Start: start, End: end, TimeFrame: marketdata.OneHour, Limit: 1000}
}

func DefaultStocksParams() HistoryParams {
	start, end := defaultRange()
	return HistoryParams{Symbol: "AAPL", Start: start, End: end, TimeFrame: marketdata.OneHour, Limit: 1000}
}

func (h HistoryParams) historical() marketdata.HistoricalRequest {
	return marketdata.HistoricalRequest{
		Symbols: []string{h.Symbol},
		Start:   h.Start,
		End:     h.End,
		Limit:   h.Limit,
	}
}

func (h HistoryParams) bars() marketdata.BarsRequest {
	return marketdata.BarsRequest{HistoricalRequest: h.historical(), TimeFrame: h.TimeFrame}
}

func (h HistoryParams) latest() marketdata.LatestRequest {
	return marketdata.LatestRequest{Symbols: []string{h.Symbol}}
}

// RunCrypto prints bars (raw and as a frame), the latest orderbook, trades
// and a snapshot.
func RunCrypto(ctx context.Context, client CryptoDataClient, p *Printer, params HistoryParams) error {
	bars, err := client.GetCryptoBars(ctx, params.bars())
	if err != nil {
		return err
	}
	if err := p.Print(bars); err != nil {
		return err
	}
	if err := p.PrintFrame(BarRows(bars)); err != nil {
		return err
	}

	book, err := client.GetCryptoLatestOrderbook(ctx, params.latest())
	if err != nil {
		return err
	}
	if err := p.Print(book); err != nil {
		return err
	}

	trades, err := client.GetCryptoTrades(ctx, params.historical())
	if err != nil {
		return err
	}
	if err := p.Print(trades); err != nil {
		return err
	}

	snapshot, err := client.GetCryptoSnapshot(ctx, params.latest())
	if err != nil {
		return err
	}
	return p.Print(snapshot)
}

// RunStocks fetches quotes and bars for the range, then prints the latest bar.
func RunStocks(ctx context.Context, client StockDataClient, p *Printer, params HistoryParams) error {
	quotes, err := client.GetStockQuotes(ctx, params.historical())
	if err != nil {
		return err
	}
	logger.WithField("symbol", params.Symbol).Infof("%d quotes", len(quotes[params.Symbol]))

	bars, err := client.GetStockBars(ctx, params.bars())
	if err != nil {
		return err
	}
	logger.WithField("symbol", params.Symbol).Infof("%d bars", len(bars[params.Symbol]))

	latest, err := client.GetStockLatestBar(ctx, params.latest())
	if err != nil {
		return err
	}
	return p.PrintOr(latest, LatestBarRows(latest))
}

type NewsParams struct {
	Symbols []string
	Limit   int
	// MaxPages stops paging early; 0 follows every token.
	MaxPages int
}

func DefaultNewsParams() NewsParams {
	return NewsParams{Symbols: []string{"MSFT"}, Limit: 50}
}

// RunNews prints pages until next_page_token comes back empty. The token is
// passed back verbatim on an otherwise identical request.
func RunNews(ctx context.Context, client NewsClient, p *Printer, params NewsParams) error {
	req := marketdata.NewsRequest{Symbols: params.Symbols, Limit: params.Limit}
	for page := 1; ; page++ {
		set, err := client.GetNews(ctx, req)
		if err != nil {
			return err
		}
		if err := p.Print(set); err != nil {
			return err
		}
		logger.WithField("page", page).Debugf("%d articles", len(set.News))

		if set.NextPageToken == "" {
			return nil
		}
		if params.MaxPages > 0 && page >= params.MaxPages {
			logger.Infof("stopping after %d pages", page)
			return nil
		}
		req.PageToken = set.NextPageToken
	}
}

type ScreenerParams struct {
	Top        int
	By         marketdata.MostActivesBy
	MarketType marketdata.MarketType
}

func DefaultScreenerParams() ScreenerParams {
	return ScreenerParams{Top: 20, By: marketdata.MostActivesByVolume, MarketType: marketdata.MarketTypeStocks}
}

// RunScreener prints the most active stocks, then gainers and losers.
func RunScreener(ctx context.Context, client ScreenerClient, p *Printer, params ScreenerParams) error {
	actives, err := client.GetMostActives(ctx, marketdata.MostActivesRequest{Top: params.Top, By: params.By})
	if err != nil {
		return err
	}
	if err := p.PrintOr(actives, ActiveRows(actives.MostActives)); err != nil {
		return err
	}

	movers, err := client.GetMarketMovers(ctx, marketdata.MarketMoversRequest{Top: params.Top, MarketType: params.MarketType})
	if err != nil {
		return err
	}
	if err := p.PrintOr(movers.Gainers, MoverRows(movers.Gainers)); err != nil {
		return err
	}
	return p.PrintOr(movers.Losers, MoverRows(movers.Losers))
}
