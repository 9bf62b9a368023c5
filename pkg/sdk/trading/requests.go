package trading

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// GetAssetsRequest filters GET /v2/assets. Empty fields are omitted.
type GetAssetsRequest struct {
	Status     AssetStatus
	AssetClass AssetClass
	Exchange   string
	Attributes []string
}

func (r GetAssetsRequest) params() map[string]any {
	return map[string]any{
		"status":      string(r.Status),
		"asset_class": string(r.AssetClass),
		"exchange":    r.Exchange,
		"attributes":  strings.Join(r.Attributes, ","),
	}
}

const (
	announcementDateLayout = "2006-01-02"
	// the announcements endpoint rejects wider windows
	maxAnnouncementSpan = 90 * 24 * time.Hour
)

// GetCorporateAnnouncementsRequest filters GET /v2/corporate_actions/announcements.
type GetCorporateAnnouncementsRequest struct {
	CATypes  []CorporateActionType
	Since    time.Time
	Until    time.Time
	Symbol   string
	Cusip    string
	DateType CorporateActionDateType
}

func (r GetCorporateAnnouncementsRequest) Validate() error {
	if len(r.CATypes) == 0 {
		return errors.New("at least one ca_type is required")
	}
	for _, t := range r.CATypes {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	if r.Since.IsZero() || r.Until.IsZero() {
		return errors.New("since and until are required")
	}
	if r.Until.Before(r.Since) {
		return errors.New("until must not be before since")
	}
	if r.Until.Sub(r.Since) > maxAnnouncementSpan {
		return errors.Errorf("since..until spans more than 90 days (%s..%s)",
			r.Since.Format(announcementDateLayout), r.Until.Format(announcementDateLayout))
	}
	return r.DateType.Validate()
}

func (r GetCorporateAnnouncementsRequest) params() map[string]any {
	types := make([]string, len(r.CATypes))
	for i, t := range r.CATypes {
		types[i] = string(t)
	}
	return map[string]any{
		"ca_types":  strings.Join(types, ","),
		"since":     r.Since.Format(announcementDateLayout),
		"until":     r.Until.Format(announcementDateLayout),
		"symbol":    r.Symbol,
		"cusip":     r.Cusip,
		"date_type": string(r.DateType),
	}
}

type TakeProfit struct {
	LimitPrice decimal.Decimal `json:"limit_price"`
}

type StopLoss struct {
	StopPrice  decimal.Decimal  `json:"stop_price"`
	LimitPrice *decimal.Decimal `json:"limit_price,omitempty"`
}

// OrderRequest is the body of POST /v2/orders.
type OrderRequest struct {
	Symbol        string           `json:"symbol"`
	Qty           *decimal.Decimal `json:"qty,omitempty"`
	Notional      *decimal.Decimal `json:"notional,omitempty"`
	Side          OrderSide        `json:"side"`
	Type          OrderType        `json:"type"`
	TimeInForce   TimeInForce      `json:"time_in_force"`
	OrderClass    OrderClass       `json:"order_class,omitempty"`
	LimitPrice    *decimal.Decimal `json:"limit_price,omitempty"`
	StopPrice     *decimal.Decimal `json:"stop_price,omitempty"`
	TrailPrice    *decimal.Decimal `json:"trail_price,omitempty"`
	TrailPercent  *decimal.Decimal `json:"trail_percent,omitempty"`
	ExtendedHours bool             `json:"extended_hours"`
	ClientOrderID string           `json:"client_order_id,omitempty"`
	TakeProfit    *TakeProfit      `json:"take_profit,omitempty"`
	StopLoss      *StopLoss        `json:"stop_loss,omitempty"`
}

// NewMarketOrder builds a simple market order for qty shares.
func NewMarketOrder(symbol string, qty decimal.Decimal, side OrderSide, tif TimeInForce) OrderRequest {
	return OrderRequest{
		Symbol:      symbol,
		Qty:         &qty,
		Side:        side,
		Type:        OrderTypeMarket,
		TimeInForce: tif,
		OrderClass:  OrderClassSimple,
	}
}

// NewLimitOrder builds a simple limit order.
func NewLimitOrder(symbol string, qty, limitPrice decimal.Decimal, side OrderSide, tif TimeInForce) OrderRequest {
	return OrderRequest{
		Symbol:      symbol,
		Qty:         &qty,
		Side:        side,
		Type:        OrderTypeLimit,
		TimeInForce: tif,
		OrderClass:  OrderClassSimple,
		LimitPrice:  &limitPrice,
	}
}

func positive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}

// Validate rejects orders the API would refuse for shape reasons.
func (o OrderRequest) Validate() error {
	if strings.TrimSpace(o.Symbol) == "" {
		return errors.New("symbol is required")
	}
	if err := o.Side.Validate(); err != nil {
		return err
	}
	if err := o.Type.Validate(); err != nil {
		return err
	}
	if err := o.TimeInForce.Validate(); err != nil {
		return err
	}
	if err := o.OrderClass.Validate(); err != nil {
		return err
	}

	hasQty, hasNotional := o.Qty != nil, o.Notional != nil
	switch {
	case hasQty == hasNotional:
		return errors.New("exactly one of qty or notional is required")
	case hasQty && !positive(o.Qty):
		return errors.New("qty must be positive")
	case hasNotional && !positive(o.Notional):
		return errors.New("notional must be positive")
	}

	switch o.Type {
	case OrderTypeLimit:
		if !positive(o.LimitPrice) {
			return errors.New("limit orders require a positive limit_price")
		}
	case OrderTypeStop:
		if !positive(o.StopPrice) {
			return errors.New("stop orders require a positive stop_price")
		}
	case OrderTypeStopLimit:
		if !positive(o.LimitPrice) || !positive(o.StopPrice) {
			return errors.New("stop_limit orders require limit_price and stop_price")
		}
	case OrderTypeTrailingStop:
		if (o.TrailPrice != nil) == (o.TrailPercent != nil) {
			return errors.New("trailing_stop orders require exactly one of trail_price or trail_percent")
		}
	}

	if o.OrderClass == OrderClassBracket && (o.TakeProfit == nil || o.StopLoss == nil) {
		return errors.New("bracket orders require take_profit and stop_loss")
	}
	if o.ExtendedHours && (o.Type != OrderTypeLimit || o.TimeInForce != TIFDay) {
		return errors.New("extended_hours requires a limit order with time_in_force day")
	}
	return nil
}

// withClientOrderID fills an empty ClientOrderID with a random UUID.
func (o OrderRequest) withClientOrderID() OrderRequest {
	if o.ClientOrderID == "" {
		o.ClientOrderID = uuid.NewString()
	}
	return o
}
