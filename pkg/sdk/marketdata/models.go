package marketdata

import "time"

type Bar struct {
	Timestamp  time.Time `json:"t"`
	Open       float64   `json:"o"`
	High       float64   `json:"h"`
	Low        float64   `json:"l"`
	Close      float64   `json:"c"`
	Volume     float64   `json:"v"`
	TradeCount uint64    `json:"n"`
	VWAP       float64   `json:"vw"`
}

// Quote exchange fields are empty for crypto.
type Quote struct {
	Timestamp   time.Time `json:"t"`
	AskExchange string    `json:"ax,omitempty"`
	AskPrice    float64   `json:"ap"`
	AskSize     float64   `json:"as"`
	BidExchange string    `json:"bx,omitempty"`
	BidPrice    float64   `json:"bp"`
	BidSize     float64   `json:"bs"`
	Conditions  []string  `json:"c,omitempty"`
	Tape        string    `json:"z,omitempty"`
}

type Trade struct {
	Timestamp  time.Time `json:"t"`
	Exchange   string    `json:"x,omitempty"`
	Price      float64   `json:"p"`
	Size       float64   `json:"s"`
	ID         int64     `json:"i"`
	Conditions []string  `json:"c,omitempty"`
	Tape       string    `json:"z,omitempty"`
	TakerSide  string    `json:"tks,omitempty"`
}

type OrderbookEntry struct {
	Price float64 `json:"p"`
	Size  float64 `json:"s"`
}

type Orderbook struct {
	Timestamp time.Time        `json:"t"`
	Bids      []OrderbookEntry `json:"b"`
	Asks      []OrderbookEntry `json:"a"`
}

type Snapshot struct {
	LatestTrade  *Trade `json:"latestTrade"`
	LatestQuote  *Quote `json:"latestQuote"`
	MinuteBar    *Bar   `json:"minuteBar"`
	DailyBar     *Bar   `json:"dailyBar"`
	PrevDailyBar *Bar   `json:"prevDailyBar"`
}

// BarSet and friends are keyed by symbol.
type (
	BarSet   map[string][]Bar
	QuoteSet map[string][]Quote
	TradeSet map[string][]Trade
)

type NewsImage struct {
	Size string `json:"size"`
	URL  string `json:"url"`
}

type News struct {
	ID        int64       `json:"id"`
	Headline  string      `json:"headline"`
	Author    string      `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Summary   string      `json:"summary"`
	Content   string      `json:"content,omitempty"`
	URL       string      `json:"url"`
	Images    []NewsImage `json:"images,omitempty"`
	Symbols   []string    `json:"symbols"`
	Source    string      `json:"source"`
}

// NewsSet is one page of news. NextPageToken is empty on the last page.
type NewsSet struct {
	News          []News `json:"news"`
	NextPageToken string `json:"next_page_token"`
}

type ActiveStock struct {
	Symbol     string  `json:"symbol"`
	Volume     float64 `json:"volume"`
	TradeCount float64 `json:"trade_count"`
}

type MostActives struct {
	MostActives []ActiveStock `json:"most_actives"`
	LastUpdated time.Time     `json:"last_updated"`
}

type Mover struct {
	Symbol        string  `json:"symbol"`
	PercentChange float64 `json:"percent_change"`
	Change        float64 `json:"change"`
	Price         float64 `json:"price"`
}

type Movers struct {
	Gainers     []Mover    `json:"gainers"`
	Losers      []Mover    `json:"losers"`
	MarketType  MarketType `json:"market_type"`
	LastUpdated time.Time  `json:"last_updated"`
}
