package samples

import (
	"context"
	"sync"

	"github.com/betbot/alpacasamples/pkg/sdk/marketdata"
	"github.com/betbot/alpacasamples/pkg/sdk/stream"
	"github.com/betbot/alpacasamples/pkg/sdk/trading"
)

// mockBase records calls in order and injects one-shot errors.
type mockBase struct {
	mu sync.Mutex

	// Call tracking
	Calls map[string]int
	Order []string

	// Error injection
	ErrorOnNext map[string]error
}

func newMockBase() mockBase {
	return mockBase{Calls: make(map[string]int), ErrorOnNext: make(map[string]error)}
}

func (m *mockBase) trackCall(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[name]++
	m.Order = append(m.Order, name)
	if err, ok := m.ErrorOnNext[name]; ok {
		delete(m.ErrorOnNext, name)
		return err
	}
	return nil
}

type mockTradingClient struct {
	mockBase

	Account       *trading.Account
	Configs       *trading.AccountConfigurations
	Assets        map[trading.AssetClass][]trading.Asset
	Announcements []trading.CorporateActionAnnouncement

	AssetRequests       []trading.GetAssetsRequest
	AnnouncementRequest *trading.GetCorporateAnnouncementsRequest
	LookedUpID          string
	SubmittedOrder      *trading.OrderRequest
}

func newMockTradingClient() *mockTradingClient {
	return &mockTradingClient{
		mockBase: newMockBase(),
		Account:  &trading.Account{ID: "acc-1", Status: "ACTIVE"},
		Configs:  &trading.AccountConfigurations{DTBPCheck: "entry"},
		Assets: map[trading.AssetClass][]trading.Asset{
			trading.AssetClassCrypto:   {{Symbol: "BTC/USD", Class: trading.AssetClassCrypto}},
			trading.AssetClassUSEquity: {{Symbol: "MSFT", Class: trading.AssetClassUSEquity}},
		},
		Announcements: []trading.CorporateActionAnnouncement{
			{ID: "ann-1", CAType: trading.CATypeDividend},
			{ID: "ann-2", CAType: trading.CATypeDividend},
		},
	}
}

func (m *mockTradingClient) GetAccount(ctx context.Context) (*trading.Account, error) {
	if err := m.trackCall("GetAccount"); err != nil {
		return nil, err
	}
	return m.Account, nil
}

func (m *mockTradingClient) GetAccountConfigurations(ctx context.Context) (*trading.AccountConfigurations, error) {
	if err := m.trackCall("GetAccountConfigurations"); err != nil {
		return nil, err
	}
	return m.Configs, nil
}

func (m *mockTradingClient) GetAllAssets(ctx context.Context, req trading.GetAssetsRequest) ([]trading.Asset, error) {
	if err := m.trackCall("GetAllAssets"); err != nil {
		return nil, err
	}
	m.AssetRequests = append(m.AssetRequests, req)
	return m.Assets[req.AssetClass], nil
}

func (m *mockTradingClient) GetAsset(ctx context.Context, symbolOrID string) (*trading.Asset, error) {
	if err := m.trackCall("GetAsset"); err != nil {
		return nil, err
	}
	return &trading.Asset{Symbol: symbolOrID}, nil
}

func (m *mockTradingClient) GetCorporateAnnouncements(ctx context.Context, req trading.GetCorporateAnnouncementsRequest) ([]trading.CorporateActionAnnouncement, error) {
	if err := m.trackCall("GetCorporateAnnouncements"); err != nil {
		return nil, err
	}
	m.AnnouncementRequest = &req
	return m.Announcements, nil
}

func (m *mockTradingClient) GetCorporateAnnouncementByID(ctx context.Context, id string) (*trading.CorporateActionAnnouncement, error) {
	if err := m.trackCall("GetCorporateAnnouncementByID"); err != nil {
		return nil, err
	}
	m.LookedUpID = id
	return &trading.CorporateActionAnnouncement{ID: id}, nil
}

func (m *mockTradingClient) SubmitOrder(ctx context.Context, req trading.OrderRequest) (*trading.Order, error) {
	if err := m.trackCall("SubmitOrder"); err != nil {
		return nil, err
	}
	m.SubmittedOrder = &req
	return &trading.Order{ID: "ord-1", Symbol: req.Symbol, Qty: req.Qty, Side: req.Side, Status: "accepted"}, nil
}

type mockDataClient struct {
	mockBase

	Bars      marketdata.BarSet
	Quotes    marketdata.QuoteSet
	Trades    marketdata.TradeSet
	Latest    map[string]marketdata.Bar
	Books     map[string]marketdata.Orderbook
	Snapshots map[string]marketdata.Snapshot
	// NewsPages is keyed by the incoming page token.
	NewsPages   map[string]*marketdata.NewsSet
	MostActives *marketdata.MostActives
	Movers      *marketdata.Movers

	BarsRequests []marketdata.BarsRequest
	HistRequests []marketdata.HistoricalRequest
	NewsRequests []marketdata.NewsRequest
}

func newMockDataClient() *mockDataClient {
	ts := mustTime("2023-11-01T10:00:00Z")
	return &mockDataClient{
		mockBase: newMockBase(),
		Bars:     marketdata.BarSet{"BTC/USD": {{Timestamp: ts, Close: 34650.5, Volume: 1.25}}},
		Quotes:   marketdata.QuoteSet{"AAPL": {{Timestamp: ts, BidPrice: 170}}},
		Trades:   marketdata.TradeSet{"BTC/USD": {{Timestamp: ts, Price: 34651, Size: 0.1}}},
		Latest:   map[string]marketdata.Bar{"AAPL": {Timestamp: ts, Close: 186.4}},
		Books:    map[string]marketdata.Orderbook{"BTC/USD": {Bids: []marketdata.OrderbookEntry{{Price: 37000, Size: 1}}}},
		Snapshots: map[string]marketdata.Snapshot{
			"BTC/USD": {LatestTrade: &marketdata.Trade{Price: 37005}},
		},
		NewsPages: map[string]*marketdata.NewsSet{
			"":        {News: []marketdata.News{{ID: 1}}, NextPageToken: "tok/A=="},
			"tok/A==": {News: []marketdata.News{{ID: 2}}, NextPageToken: "tok/B=="},
			"tok/B==": {News: []marketdata.News{{ID: 3}}},
		},
		MostActives: &marketdata.MostActives{MostActives: []marketdata.ActiveStock{{Symbol: "TSLA", Volume: 1e8}}},
		Movers: &marketdata.Movers{
			Gainers: []marketdata.Mover{{Symbol: "GAIN", PercentChange: 12.5}},
			Losers:  []marketdata.Mover{{Symbol: "LOSE", PercentChange: -9}},
		},
	}
}

func (m *mockDataClient) GetCryptoBars(ctx context.Context, req marketdata.BarsRequest) (marketdata.BarSet, error) {
	if err := m.trackCall("GetCryptoBars"); err != nil {
		return nil, err
	}
	m.BarsRequests = append(m.BarsRequests, req)
	return m.Bars, nil
}

func (m *mockDataClient) GetCryptoLatestOrderbook(ctx context.Context, req marketdata.LatestRequest) (map[string]marketdata.Orderbook, error) {
	if err := m.trackCall("GetCryptoLatestOrderbook"); err != nil {
		return nil, err
	}
	return m.Books, nil
}

func (m *mockDataClient) GetCryptoTrades(ctx context.Context, req marketdata.HistoricalRequest) (marketdata.TradeSet, error) {
	if err := m.trackCall("GetCryptoTrades"); err != nil {
		return nil, err
	}
	m.HistRequests = append(m.HistRequests, req)
	return m.Trades, nil
}

func (m *mockDataClient) GetCryptoSnapshot(ctx context.Context, req marketdata.LatestRequest) (map[string]marketdata.Snapshot, error) {
	if err := m.trackCall("GetCryptoSnapshot"); err != nil {
		return nil, err
	}
	return m.Snapshots, nil
}

func (m *mockDataClient) GetStockQuotes(ctx context.Context, req marketdata.HistoricalRequest) (marketdata.QuoteSet, error) {
	if err := m.trackCall("GetStockQuotes"); err != nil {
		return nil, err
	}
	m.HistRequests = append(m.HistRequests, req)
	return m.Quotes, nil
}

func (m *mockDataClient) GetStockBars(ctx context.Context, req marketdata.BarsRequest) (marketdata.BarSet, error) {
	if err := m.trackCall("GetStockBars"); err != nil {
		return nil, err
	}
	m.BarsRequests = append(m.BarsRequests, req)
	return m.Bars, nil
}

func (m *mockDataClient) GetStockLatestBar(ctx context.Context, req marketdata.LatestRequest) (map[string]marketdata.Bar, error) {
	if err := m.trackCall("GetStockLatestBar"); err != nil {
		return nil, err
	}
	return m.Latest, nil
}

func (m *mockDataClient) GetNews(ctx context.Context, req marketdata.NewsRequest) (*marketdata.NewsSet, error) {
	if err := m.trackCall("GetNews"); err != nil {
		return nil, err
	}
	m.NewsRequests = append(m.NewsRequests, req)
	return m.NewsPages[req.PageToken], nil
}

func (m *mockDataClient) GetMostActives(ctx context.Context, req marketdata.MostActivesRequest) (*marketdata.MostActives, error) {
	if err := m.trackCall("GetMostActives"); err != nil {
		return nil, err
	}
	return m.MostActives, nil
}

func (m *mockDataClient) GetMarketMovers(ctx context.Context, req marketdata.MarketMoversRequest) (*marketdata.Movers, error) {
	if err := m.trackCall("GetMarketMovers"); err != nil {
		return nil, err
	}
	return m.Movers, nil
}

type mockStreamClient struct {
	mockBase
	Messages []stream.Message
	Sub      stream.Subscription
}

func (m *mockStreamClient) Run(ctx context.Context, sub stream.Subscription, handler stream.Handler) error {
	if err := m.trackCall("Run"); err != nil {
		return err
	}
	m.Sub = sub
	for _, msg := range m.Messages {
		if err := handler(msg); err != nil {
			return err
		}
	}
	return nil
}
