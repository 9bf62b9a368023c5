package samples

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betbot/alpacasamples/pkg/logger"
	"github.com/betbot/alpacasamples/pkg/sdk/trading"
)

// RunAccounts prints the account and its configuration.
func RunAccounts(ctx context.Context, client TradingClient, p *Printer) error {
	account, err := client.GetAccount(ctx)
	if err != nil {
		return err
	}
	if err := p.Print(account); err != nil {
		return err
	}

	configs, err := client.GetAccountConfigurations(ctx)
	if err != nil {
		return err
	}
	return p.Print(configs)
}

type AssetsParams struct {
	Symbol string
}

func DefaultAssetsParams() AssetsParams {
	return AssetsParams{Symbol: "MSFT"}
}

// RunAssets lists crypto assets, then US equities, then looks one symbol up.
func RunAssets(ctx context.Context, client TradingClient, p *Printer, params AssetsParams) error {
	for _, class := range []trading.AssetClass{trading.AssetClassCrypto, trading.AssetClassUSEquity} {
		assets, err := client.GetAllAssets(ctx, trading.GetAssetsRequest{AssetClass: class})
		if err != nil {
			return err
		}
		logger.WithField("asset_class", class).Infof("%d assets", len(assets))
		if err := p.Print(assets); err != nil {
			return err
		}
	}

	asset, err := client.GetAsset(ctx, params.Symbol)
	if err != nil {
		return err
	}
	return p.Print(asset)
}

type AnnouncementsParams struct {
	Symbol  string
	CATypes []trading.CorporateActionType
	Since   time.Time
	Until   time.Time
}

func DefaultAnnouncementsParams() AnnouncementsParams {
	return AnnouncementsParams{
		Symbol:  "MSFT",
		CATypes: []trading.CorporateActionType{trading.CATypeDividend},
		Since:   time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		Until:   time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC),
	}
}

// RunAnnouncements lists announcements, then fetches the first one by ID.
// An empty list skips the lookup.
func RunAnnouncements(ctx context.Context, client TradingClient, p *Printer, params AnnouncementsParams) error {
	announcements, err := client.GetCorporateAnnouncements(ctx, trading.GetCorporateAnnouncementsRequest{
		CATypes: params.CATypes,
		Since:   params.Since,
		Until:   params.Until,
		Symbol:  params.Symbol,
	})
	if err != nil {
		return err
	}
	if err := p.Print(announcements); err != nil {
		return err
	}
	if len(announcements) == 0 {
		logger.Warnf("no announcements for %s, skipping lookup by id", params.Symbol)
		return nil
	}

	announcement, err := client.GetCorporateAnnouncementByID(ctx, announcements[0].ID)
	if err != nil {
		return err
	}
	return p.Print(announcement)
}

type OrderParams struct {
	Symbol        string
	Qty           decimal.Decimal
	Side          trading.OrderSide
	Type          trading.OrderType
	TimeInForce   trading.TimeInForce
	LimitPrice    decimal.Decimal // used by limit orders only
	ExtendedHours bool
}

func DefaultOrderParams() OrderParams {
	return OrderParams{
		Symbol:      "MSFT",
		Qty:         decimal.NewFromInt(10),
		Side:        trading.SideBuy,
		Type:        trading.OrderTypeMarket,
		TimeInForce: trading.TIFDay,
	}
}

func (o OrderParams) request() trading.OrderRequest {
	var req trading.OrderRequest
	if o.Type == trading.OrderTypeLimit {
		req = trading.NewLimitOrder(o.Symbol, o.Qty, o.LimitPrice, o.Side, o.TimeInForce)
	} else {
		req = trading.NewMarketOrder(o.Symbol, o.Qty, o.Side, o.TimeInForce)
		req.Type = o.Type
	}
	req.ExtendedHours = o.ExtendedHours
	return req
}

// RunOrders submits one order and prints the result.
func RunOrders(ctx context.Context, client TradingClient, p *Printer, params OrderParams) error {
	order, err := client.SubmitOrder(ctx, params.request())
	if err != nil {
		return err
	}
	logger.WithField("order_id", order.ID).Infof("submitted %s %s %s", order.Side, order.Qty, order.Symbol)
	return p.Print(order)
}
