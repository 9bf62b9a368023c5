package trading

import "github.com/pkg/errors"

type OrderSide string

const (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"
)

func (s OrderSide) Validate() error {
	switch s {
	case SideBuy, SideSell:
		return nil
	}
	return errors.Errorf("invalid order side %q", string(s))
}

type OrderType string

const (
	OrderTypeMarket       OrderType = "market"
	OrderTypeLimit        OrderType = "limit"
	OrderTypeStop         OrderType = "stop"
	OrderTypeStopLimit    OrderType = "stop_limit"
	OrderTypeTrailingStop OrderType = "trailing_stop"
)

func (t OrderType) Validate() error {
	switch t {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStop, OrderTypeStopLimit, OrderTypeTrailingStop:
		return nil
	}
	return errors.Errorf("invalid order type %q", string(t))
}

// OrderClass is empty for simple orders unless set explicitly.
type OrderClass string

const (
	OrderClassSimple  OrderClass = "simple"
	OrderClassBracket OrderClass = "bracket"
	OrderClassOCO     OrderClass = "oco"
	OrderClassOTO     OrderClass = "oto"
)

func (c OrderClass) Validate() error {
	switch c {
	case "", OrderClassSimple, OrderClassBracket, OrderClassOCO, OrderClassOTO:
		return nil
	}
	return errors.Errorf("invalid order class %q", string(c))
}

type TimeInForce string

const (
	TIFDay TimeInForce = "day"
	TIFGTC TimeInForce = "gtc"
	TIFOPG TimeInForce = "opg"
	TIFCLS TimeInForce = "cls"
	TIFIOC TimeInForce = "ioc"
	TIFFOK TimeInForce = "fok"
)

func (t TimeInForce) Validate() error {
	switch t {
	case TIFDay, TIFGTC, TIFOPG, TIFCLS, TIFIOC, TIFFOK:
		return nil
	}
	return errors.Errorf("invalid time in force %q", string(t))
}

type AssetClass string

const (
	AssetClassUSEquity AssetClass = "us_equity"
	AssetClassUSOption AssetClass = "us_option"
	AssetClassCrypto   AssetClass = "crypto"
)

func (c AssetClass) Validate() error {
	switch c {
	case "", AssetClassUSEquity, AssetClassUSOption, AssetClassCrypto:
		return nil
	}
	return errors.Errorf("invalid asset class %q", string(c))
}

type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "active"
	AssetStatusInactive AssetStatus = "inactive"
)

type CorporateActionType string

const (
	CATypeDividend CorporateActionType = "dividend"
	CATypeMerger   CorporateActionType = "merger"
	CATypeSpinoff  CorporateActionType = "spinoff"
	CATypeSplit    CorporateActionType = "split"
)

func (t CorporateActionType) Validate() error {
	switch t {
	case CATypeDividend, CATypeMerger, CATypeSpinoff, CATypeSplit:
		return nil
	}
	return errors.Errorf("invalid corporate action type %q", string(t))
}

// CorporateActionDateType picks which announcement date since/until filter on.
type CorporateActionDateType string

const (
	CADateDeclaration CorporateActionDateType = "declaration_date"
	CADateEx          CorporateActionDateType = "ex_date"
	CADateRecord      CorporateActionDateType = "record_date"
	CADatePayable     CorporateActionDateType = "payable_date"
)

func (t CorporateActionDateType) Validate() error {
	switch t {
	case "", CADateDeclaration, CADateEx, CADateRecord, CADatePayable:
		return nil
	}
	return errors.Errorf("invalid corporate action date type %q", string(t))
}
