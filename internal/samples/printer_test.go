package samples

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betbot/alpacasamples/pkg/sdk/marketdata"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "csv": FormatCSV, " table ": FormatTable} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestPrinter_Frames(t *testing.T) {
	rows := MoverRows([]marketdata.Mover{
		{Symbol: "GAIN", PercentChange: 12.5, Change: 1.2, Price: 10.8},
		{Symbol: "MORE", PercentChange: 7, Change: 0.7, Price: 10.7},
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatCSV).PrintFrame(rows))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "symbol,percent_change,change,price", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "GAIN,"))
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable).PrintFrame(rows))
		out := buf.String()
		assert.Contains(t, out, "percent_change")
		assert.Contains(t, out, "GAIN")
		assert.Contains(t, out, "10.7")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, "").PrintFrame(rows))
		assert.Contains(t, buf.String(), `"Symbol": "MORE"`)
	})
}

func TestFrameRows_SortedBySymbol(t *testing.T) {
	ts := mustTime("2023-11-01T10:00:00Z")
	rows := BarRows(marketdata.BarSet{
		"MSFT": {{Timestamp: ts, Close: 2}},
		"AAPL": {{Timestamp: ts, Close: 1}, {Timestamp: ts.Add(time.Hour), Close: 1.5}},
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "AAPL", rows[0].Symbol)
	assert.Equal(t, "2023-11-01T11:00:00Z", rows[1].Timestamp)
	assert.Equal(t, "MSFT", rows[2].Symbol)

	trades := TradeRows(marketdata.TradeSet{"BTC/USD": {{Price: 1, Conditions: []string{"@", "T"}}}})
	assert.Equal(t, "@ T", trades[0].Conditions)
	assert.Empty(t, trades[0].Timestamp)

	quotes := QuoteRows(marketdata.QuoteSet{"AAPL": {{BidPrice: 1, AskPrice: 2}}})
	assert.Equal(t, 2.0, quotes[0].AskPrice)
}

func TestPrinter_PrintOr(t *testing.T) {
	raw := &marketdata.Movers{Gainers: []marketdata.Mover{{Symbol: "GAIN", PercentChange: 3}}}
	rows := MoverRows(raw.Gainers)

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatJSON).PrintOr(raw, rows))
	assert.Contains(t, buf.String(), `"gainers"`)
	assert.Contains(t, buf.String(), `"last_updated"`)

	buf.Reset()
	require.NoError(t, NewPrinter(&buf, FormatCSV).PrintOr(raw, rows))
	assert.True(t, strings.HasPrefix(buf.String(), "symbol,percent_change,change,price"))
}
