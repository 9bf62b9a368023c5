package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/betbot/alpacasamples/internal/samples"
	"github.com/betbot/alpacasamples/pkg/sdk/trading"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Print the account and its configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, p, err := sampleSetup(cmd)
		if err != nil {
			return err
		}
		return samples.RunAccounts(cmd.Context(), newTradingClient(cfg), p)
	},
}

var assetsParams = samples.DefaultAssetsParams()

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List crypto and US equity assets, then look one symbol up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, p, err := sampleSetup(cmd)
		if err != nil {
			return err
		}
		return samples.RunAssets(cmd.Context(), newTradingClient(cfg), p, assetsParams)
	},
}

var (
	announcementsParams = samples.DefaultAnnouncementsParams()
	announcementsSince  string
	announcementsUntil  string
	announcementsTypes  []string
)

var announcementsCmd = &cobra.Command{
	Use:   "announcements",
	Short: "List corporate action announcements, then fetch the first by id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := announcementsParams
		var err error
		if params.Since, err = parseTime(announcementsSince); err != nil {
			return err
		}
		if params.Until, err = parseTime(announcementsUntil); err != nil {
			return err
		}
		params.CATypes = nil
		for _, t := range announcementsTypes {
			params.CATypes = append(params.CATypes, trading.CorporateActionType(t))
		}

		cfg, p, err := sampleSetup(cmd)
		if err != nil {
			return err
		}
		return samples.RunAnnouncements(cmd.Context(), newTradingClient(cfg), p, params)
	},
}

var (
	orderParams = samples.DefaultOrderParams()
	orderQty    string
	orderLimit  string
	orderSide   string
	orderType   string
	orderTIF    string
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Submit an order (paper trading by default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := orderParams
		qty, err := decimal.NewFromString(orderQty)
		if err != nil {
			return fmt.Errorf("invalid --qty %q: %w", orderQty, err)
		}
		params.Qty = qty
		if orderLimit != "" {
			if params.LimitPrice, err = decimal.NewFromString(orderLimit); err != nil {
				return fmt.Errorf("invalid --limit-price %q: %w", orderLimit, err)
			}
		}
		params.Side = trading.OrderSide(orderSide)
		params.Type = trading.OrderType(orderType)
		params.TimeInForce = trading.TimeInForce(orderTIF)

		cfg, p, err := sampleSetup(cmd)
		if err != nil {
			return err
		}
		return samples.RunOrders(cmd.Context(), newTradingClient(cfg), p, params)
	},
}

func init() {
	assetsCmd.Flags().StringVar(&assetsParams.Symbol, "symbol", assetsParams.Symbol, "symbol or asset id to look up")

	f := announcementsCmd.Flags()
	f.StringVar(&announcementsParams.Symbol, "symbol", announcementsParams.Symbol, "initiating or target symbol")
	f.StringVar(&announcementsSince, "since", announcementsParams.Since.Format("2006-01-02"), "first date (YYYY-MM-DD)")
	f.StringVar(&announcementsUntil, "until", announcementsParams.Until.Format("2006-01-02"), "last date (YYYY-MM-DD), at most 90 days after --since")
	f.StringSliceVar(&announcementsTypes, "ca-types", []string{string(trading.CATypeDividend)}, "corporate action types: dividend, merger, spinoff, split")

	f = ordersCmd.Flags()
	f.StringVar(&orderParams.Symbol, "symbol", orderParams.Symbol, "symbol to trade")
	f.StringVar(&orderQty, "qty", orderParams.Qty.String(), "quantity")
	f.StringVar(&orderSide, "side", string(orderParams.Side), "buy or sell")
	f.StringVar(&orderType, "type", string(orderParams.Type), "market, limit, stop, stop_limit or trailing_stop")
	f.StringVar(&orderTIF, "tif", string(orderParams.TimeInForce), "time in force: day, gtc, opg, cls, ioc, fok")
	f.StringVar(&orderLimit, "limit-price", "", "limit price for limit orders")
	f.BoolVar(&orderParams.ExtendedHours, "extended-hours", false, "allow extended hours (limit + day only)")
}
