package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/betbot/alpacasamples/internal/samples"
	"github.com/betbot/alpacasamples/pkg/sdk/marketdata"
)

type historyFlags struct {
	params samples.HistoryParams
	start  string
	end    string
}

func (h *historyFlags) register(f *pflag.FlagSet) {
	f.StringVar(&h.params.Symbol, "symbol", h.params.Symbol, "symbol")
	f.StringVar(&h.start, "start", h.params.Start.Format("2006-01-02"), "range start (YYYY-MM-DD or RFC 3339)")
	f.StringVar(&h.end, "end", h.params.End.Format("2006-01-02"), "range end (YYYY-MM-DD or RFC 3339)")
	f.Var(&h.params.TimeFrame, "timeframe", "bar size, e.g. 1Min, 15Min, 1Hour, 1Day")
	f.IntVar(&h.params.Limit, "limit", h.params.Limit, "max items across all pages, 0 for all")
}

func (h *historyFlags) resolve() (samples.HistoryParams, error) {
	params := h.params
	var err error
	if params.Start, err = parseTime(h.start); err != nil {
		return params, err
	}
	if params.End, err = parseTime(h.end); err != nil {
		return params, err
	}
	return params, nil
}

var cryptoFlags = &historyFlags{params: samples.DefaultCryptoParams()}

var cryptoCmd = &cobra.Command{
	Use:   "crypto",
	Short: "Crypto bars, latest orderbook, trades and snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := cryptoFlags.resolve()
		if err != nil {
			return err
		}
		cfg, p, err := sampleSetup(cmd)
		if err != nil {
			return err
		}
		return samples.RunCrypto(cmd.Context(), newDataClient(cfg), p, params)
	},
}

var stocksFlags = &historyFlags{params: samples.DefaultStocksParams()}

var stocksCmd = &cobra.Command{
	Use:   "stocks",
	Short: "Stock quotes and bars for a range, then the latest bar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := stocksFlags.resolve()
		if err != nil {
			return err
		}
		cfg, p, err := sampleSetup(cmd)
		if err != nil {
			return err
		}
		return samples.RunStocks(cmd.Context(), newDataClient(cfg), p, params)
	},
}

var (
	newsParams  = samples.DefaultNewsParams()
	newsSymbols string
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Page through news articles until the last page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := newsParams
		params.Symbols = splitSymbols(newsSymbols)

		cfg, p, err := sampleSetup(cmd)
		if err != nil {
			return err
		}
		return samples.RunNews(cmd.Context(), newDataClient(cfg), p, params)
	},
}

var (
	screenerParams = samples.DefaultScreenerParams()
	screenerBy     string
	screenerMarket string
)

var screenerCmd = &cobra.Command{
	Use:   "screener",
	Short: "Most active stocks, then top gainers and losers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := screenerParams
		params.By = marketdata.MostActivesBy(screenerBy)
		params.MarketType = marketdata.MarketType(screenerMarket)

		cfg, p, err := sampleSetup(cmd)
		if err != nil {
			return err
		}
		return samples.RunScreener(cmd.Context(), newDataClient(cfg), p, params)
	},
}

func splitSymbols(s string) []string {
	var out []string
	for _, sym := range strings.Split(s, ",") {
		if sym = strings.TrimSpace(sym); sym != "" {
			out = append(out, strings.ToUpper(sym))
		}
	}
	return out
}

func init() {
	cryptoFlags.register(cryptoCmd.Flags())
	stocksFlags.register(stocksCmd.Flags())

	newsCmd.Flags().StringVar(&newsSymbols, "symbols", strings.Join(newsParams.Symbols, ","), "comma-separated symbols")
	newsCmd.Flags().IntVar(&newsParams.Limit, "limit", newsParams.Limit, "articles per page (max 50)")
	newsCmd.Flags().IntVar(&newsParams.MaxPages, "max-pages", 0, "stop after this many pages, 0 for all")

	f := screenerCmd.Flags()
	f.IntVar(&screenerParams.Top, "top", screenerParams.Top, "number of symbols per list")
	f.StringVar(&screenerBy, "by", string(screenerParams.By), "most actives ranking: volume or trades")
	f.StringVar(&screenerMarket, "market-type", string(screenerParams.MarketType), "movers market: stocks or crypto")
}
