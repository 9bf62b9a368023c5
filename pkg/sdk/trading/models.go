package trading

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID                    string          `json:"id"`
	AccountNumber         string          `json:"account_number"`
	Status                string          `json:"status"`
	CryptoStatus          string          `json:"crypto_status,omitempty"`
	Currency              string          `json:"currency"`
	Cash                  decimal.Decimal `json:"cash"`
	PortfolioValue        decimal.Decimal `json:"portfolio_value"`
	Equity                decimal.Decimal `json:"equity"`
	LastEquity            decimal.Decimal `json:"last_equity"`
	BuyingPower           decimal.Decimal `json:"buying_power"`
	RegTBuyingPower       decimal.Decimal `json:"regt_buying_power"`
	DaytradingBuyingPower decimal.Decimal `json:"daytrading_buying_power"`
	NonMarginBuyingPower  decimal.Decimal `json:"non_marginable_buying_power"`
	LongMarketValue       decimal.Decimal `json:"long_market_value"`
	ShortMarketValue      decimal.Decimal `json:"short_market_value"`
	InitialMargin         decimal.Decimal `json:"initial_margin"`
	MaintenanceMargin     decimal.Decimal `json:"maintenance_margin"`
	Multiplier            decimal.Decimal `json:"multiplier"`
	DaytradeCount         int64           `json:"daytrade_count"`
	PatternDayTrader      bool            `json:"pattern_day_trader"`
	TradingBlocked        bool            `json:"trading_blocked"`
	TransfersBlocked      bool            `json:"transfers_blocked"`
	AccountBlocked        bool            `json:"account_blocked"`
	TradeSuspendedByUser  bool            `json:"trade_suspended_by_user"`
	ShortingEnabled       bool            `json:"shorting_enabled"`
	CreatedAt             time.Time       `json:"created_at"`
}

type AccountConfigurations struct {
	DTBPCheck           string `json:"dtbp_check"`
	TradeConfirmEmail   string `json:"trade_confirm_email"`
	SuspendTrade        bool   `json:"suspend_trade"`
	NoShorting          bool   `json:"no_shorting"`
	FractionalTrading   bool   `json:"fractional_trading"`
	MaxMarginMultiplier string `json:"max_margin_multiplier"`
	PDTCheck            string `json:"pdt_check"`
	PTPNoExceptionEntry bool   `json:"ptp_no_exception_entry"`
}

type Asset struct {
	ID                           string           `json:"id"`
	Class                        AssetClass       `json:"class"`
	Exchange                     string           `json:"exchange"`
	Symbol                       string           `json:"symbol"`
	Name                         string           `json:"name"`
	Status                       AssetStatus      `json:"status"`
	Tradable                     bool             `json:"tradable"`
	Marginable                   bool             `json:"marginable"`
	Shortable                    bool             `json:"shortable"`
	EasyToBorrow                 bool             `json:"easy_to_borrow"`
	Fractionable                 bool             `json:"fractionable"`
	MaintenanceMarginRequirement *decimal.Decimal `json:"maintenance_margin_requirement,omitempty"`
	MinOrderSize                 *decimal.Decimal `json:"min_order_size,omitempty"`
	MinTradeIncrement            *decimal.Decimal `json:"min_trade_increment,omitempty"`
	PriceIncrement               *decimal.Decimal `json:"price_increment,omitempty"`
	Attributes                   []string         `json:"attributes,omitempty"`
}

// CorporateActionAnnouncement dates are plain YYYY-MM-DD strings and may be empty.
type CorporateActionAnnouncement struct {
	ID                      string              `json:"id"`
	CorporateActionID       string              `json:"corporate_action_id"`
	CAType                  CorporateActionType `json:"ca_type"`
	CASubType               string              `json:"ca_sub_type"`
	InitiatingSymbol        string              `json:"initiating_symbol"`
	InitiatingOriginalCusip string              `json:"initiating_original_cusip"`
	TargetSymbol            string              `json:"target_symbol,omitempty"`
	TargetOriginalCusip     string              `json:"target_original_cusip,omitempty"`
	DeclarationDate         string              `json:"declaration_date,omitempty"`
	ExDate                  string              `json:"ex_date,omitempty"`
	RecordDate              string              `json:"record_date,omitempty"`
	PayableDate             string              `json:"payable_date,omitempty"`
	Cash                    *decimal.Decimal    `json:"cash,omitempty"`
	OldRate                 *decimal.Decimal    `json:"old_rate,omitempty"`
	NewRate                 *decimal.Decimal    `json:"new_rate,omitempty"`
}

type Order struct {
	ID             string           `json:"id"`
	ClientOrderID  string           `json:"client_order_id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	SubmittedAt    time.Time        `json:"submitted_at"`
	FilledAt       *time.Time       `json:"filled_at"`
	ExpiredAt      *time.Time       `json:"expired_at"`
	CanceledAt     *time.Time       `json:"canceled_at"`
	FailedAt       *time.Time       `json:"failed_at"`
	ReplacedAt     *time.Time       `json:"replaced_at"`
	ReplacedBy     *string          `json:"replaced_by"`
	Replaces       *string          `json:"replaces"`
	AssetID        string           `json:"asset_id"`
	Symbol         string           `json:"symbol"`
	AssetClass     AssetClass       `json:"asset_class"`
	Notional       *decimal.Decimal `json:"notional"`
	Qty            *decimal.Decimal `json:"qty"`
	FilledQty      decimal.Decimal  `json:"filled_qty"`
	FilledAvgPrice *decimal.Decimal `json:"filled_avg_price"`
	OrderClass     OrderClass       `json:"order_class"`
	Type           OrderType        `json:"type"`
	Side           OrderSide        `json:"side"`
	TimeInForce    TimeInForce      `json:"time_in_force"`
	LimitPrice     *decimal.Decimal `json:"limit_price"`
	StopPrice      *decimal.Decimal `json:"stop_price"`
	TrailPrice     *decimal.Decimal `json:"trail_price"`
	TrailPercent   *decimal.Decimal `json:"trail_percent"`
	HWM            *decimal.Decimal `json:"hwm"`
	Status         string           `json:"status"`
	ExtendedHours  bool             `json:"extended_hours"`
	Legs           []Order          `json:"legs"`
}
