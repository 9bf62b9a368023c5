package samples

import (
	"sort"
	"strings"
	"time"

	"github.com/betbot/alpacasamples/pkg/sdk/marketdata"
)

// Frame rows flatten symbol-keyed sets into one row per item, ordered by
// symbol then timestamp.

type BarRow struct {
	Symbol     string  `csv:"symbol"`
	Timestamp  string  `csv:"timestamp"`
	Open       float64 `csv:"open"`
	High       float64 `csv:"high"`
	Low        float64 `csv:"low"`
	Close      float64 `csv:"close"`
	Volume     float64 `csv:"volume"`
	TradeCount uint64  `csv:"trade_count"`
	VWAP       float64 `csv:"vwap"`
}

type TradeRow struct {
	Symbol     string  `csv:"symbol"`
	Timestamp  string  `csv:"timestamp"`
	Exchange   string  `csv:"exchange"`
	Price      float64 `csv:"price"`
	Size       float64 `csv:"size"`
	ID         int64   `csv:"id"`
	Conditions string  `csv:"conditions"`
	TakerSide  string  `csv:"taker_side"`
}

type QuoteRow struct {
	Symbol      string  `csv:"symbol"`
	Timestamp   string  `csv:"timestamp"`
	BidExchange string  `csv:"bid_exchange"`
	BidPrice    float64 `csv:"bid_price"`
	BidSize     float64 `csv:"bid_size"`
	AskExchange string  `csv:"ask_exchange"`
	AskPrice    float64 `csv:"ask_price"`
	AskSize     float64 `csv:"ask_size"`
}

type MoverRow struct {
	Symbol        string  `csv:"symbol"`
	PercentChange float64 `csv:"percent_change"`
	Change        float64 `csv:"change"`
	Price         float64 `csv:"price"`
}

type ActiveRow struct {
	Symbol     string  `csv:"symbol"`
	Volume     float64 `csv:"volume"`
	TradeCount float64 `csv:"trade_count"`
}

func ts(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func BarRows(set marketdata.BarSet) []BarRow {
	var rows []BarRow
	for _, sym := range sortedKeys(set) {
		for _, b := range set[sym] {
			rows = append(rows, barRow(sym, b))
		}
	}
	return rows
}

func LatestBarRows(bars map[string]marketdata.Bar) []BarRow {
	rows := make([]BarRow, 0, len(bars))
	for _, sym := range sortedKeys(bars) {
		rows = append(rows, barRow(sym, bars[sym]))
	}
	return rows
}

func barRow(sym string, b marketdata.Bar) BarRow {
	return BarRow{
		Symbol: sym, Timestamp: ts(b.Timestamp),
		Open: b.Open, High: b.High, Low: b.Low, Close: b.Close,
		Volume: b.Volume, TradeCount: b.TradeCount, VWAP: b.VWAP,
	}
}

func TradeRows(set marketdata.TradeSet) []TradeRow {
	var rows []TradeRow
	for _, sym := range sortedKeys(set) {
		for _, t := range set[sym] {
			rows = append(rows, TradeRow{
				Symbol: sym, Timestamp: ts(t.Timestamp), Exchange: t.Exchange,
				Price: t.Price, Size: t.Size, ID: t.ID,
				Conditions: strings.Join(t.Conditions, " "), TakerSide: t.TakerSide,
			})
		}
	}
	return rows
}

func QuoteRows(set marketdata.QuoteSet) []QuoteRow {
	var rows []QuoteRow
	for _, sym := range sortedKeys(set) {
		for _, q := range set[sym] {
			rows = append(rows, QuoteRow{
				Symbol: sym, Timestamp: ts(q.Timestamp),
				BidExchange: q.BidExchange, BidPrice: q.BidPrice, BidSize: q.BidSize,
				AskExchange: q.AskExchange, AskPrice: q.AskPrice, AskSize: q.AskSize,
			})
		}
	}
	return rows
}

func MoverRows(movers []marketdata.Mover) []MoverRow {
	rows := make([]MoverRow, len(movers))
	for i, m := range movers {
		rows[i] = MoverRow(m)
	}
	return rows
}

func ActiveRows(actives []marketdata.ActiveStock) []ActiveRow {
	rows := make([]ActiveRow, len(actives))
	for i, a := range actives {
		rows[i] = ActiveRow(a)
	}
	return rows
}
