package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/betbot/alpacasamples/internal/samples"
)

var (
	streamParams  = samples.DefaultStreamParams()
	streamSymbols string
	streamCrypto  bool
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Print live trades, quotes or bars from the market data stream",
	Long: `Print live trades, quotes or bars from the market data stream.

Stops after --max messages, or on Ctrl+C when --max is 0.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := streamParams
		params.Symbols = splitSymbols(streamSymbols)

		cfg, p, err := sampleSetup(cmd)
		if err != nil {
			return err
		}
		return samples.RunStream(cmd.Context(), newStreamClient(cfg, streamCrypto), p, params)
	},
}

func init() {
	f := streamCmd.Flags()
	f.StringVar(&streamSymbols, "symbols", strings.Join(streamParams.Symbols, ","), "comma-separated symbols, * for all")
	f.BoolVar(&streamParams.Trades, "trades", streamParams.Trades, "subscribe to trades")
	f.BoolVar(&streamParams.Quotes, "quotes", streamParams.Quotes, "subscribe to quotes")
	f.BoolVar(&streamParams.Bars, "bars", streamParams.Bars, "subscribe to minute bars")
	f.IntVar(&streamParams.MaxMessages, "max", streamParams.MaxMessages, "stop after this many messages, 0 to run until interrupted")
	f.BoolVar(&streamCrypto, "crypto", false, "use the crypto stream instead of stocks")
}
