// Package stream is a client for the real-time market data WebSocket.
package stream

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	DefaultStocksPath = "/v2/iex"
	DefaultCryptoPath = "/v1beta3/crypto/us"

	defaultHandshakeTimeout = 10 * time.Second
	defaultPingInterval     = 20 * time.Second
	defaultMaxRetries       = 3
	defaultAuthTimeout      = 10 * time.Second
)

// Message types carried in the "T" field.
const (
	TypeSuccess      = "success"
	TypeError        = "error"
	TypeSubscription = "subscription"
	TypeTrade        = "t"
	TypeQuote        = "q"
	TypeBar          = "b"
)

type Config struct {
	HandshakeTimeout time.Duration
	PingInterval     time.Duration
	// AuthTimeout bounds the connected/authenticated handshake.
	AuthTimeout time.Duration
	MaxRetries  int
	ProxyURL    string
}

func DefaultConfig() *Config {
	return &Config{
		HandshakeTimeout: defaultHandshakeTimeout,
		PingInterval:     defaultPingInterval,
		AuthTimeout:      defaultAuthTimeout,
		MaxRetries:       defaultMaxRetries,
	}
}

// Subscription lists symbols per channel. "*" subscribes to everything.
type Subscription struct {
	Trades []string `json:"trades,omitempty"`
	Quotes []string `json:"quotes,omitempty"`
	Bars   []string `json:"bars,omitempty"`
}

func (s Subscription) Empty() bool {
	return len(s.Trades) == 0 && len(s.Quotes) == 0 && len(s.Bars) == 0
}

// Message is one market data event. Only the fields of its Type are set.
type Message struct {
	Type      string    `json:"T"`
	Symbol    string    `json:"S"`
	Timestamp time.Time `json:"t"`

	// trade
	ID       int64   `json:"i,omitempty"`
	Exchange string  `json:"x,omitempty"`
	Price    float64 `json:"p,omitempty"`
	Size     float64 `json:"s,omitempty"`

	// quote
	AskExchange string  `json:"ax,omitempty"`
	AskPrice    float64 `json:"ap,omitempty"`
	AskSize     float64 `json:"as,omitempty"`
	BidExchange string  `json:"bx,omitempty"`
	BidPrice    float64 `json:"bp,omitempty"`
	BidSize     float64 `json:"bs,omitempty"`

	// bar
	Open   float64 `json:"o,omitempty"`
	High   float64 `json:"h,omitempty"`
	Low    float64 `json:"l,omitempty"`
	Close  float64 `json:"c,omitempty"`
	Volume float64 `json:"v,omitempty"`
	VWAP   float64 `json:"vw,omitempty"`

	Conditions []string `json:"-"`
	Tape       string   `json:"z,omitempty"`
}

// the "c" key holds conditions on trades and quotes but the close on bars
func (m *Message) UnmarshalJSON(b []byte) error {
	type plain Message
	var aux struct {
		plain
		C json.RawMessage `json:"c"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*m = Message(aux.plain)
	if len(aux.C) == 0 || string(aux.C) == "null" {
		return nil
	}
	if m.Type == TypeBar {
		return json.Unmarshal(aux.C, &m.Close)
	}
	return json.Unmarshal(aux.C, &m.Conditions)
}

// MarshalJSON writes "c" back in the same shape UnmarshalJSON reads it.
func (m Message) MarshalJSON() ([]byte, error) {
	type plain Message
	aux := struct {
		plain
		C any `json:"c,omitempty"`
	}{plain: plain(m)}
	switch {
	case m.Type == TypeBar:
		aux.C = m.Close
	case len(m.Conditions) > 0:
		aux.C = m.Conditions
	}
	return json.Marshal(aux)
}

// control is a success/error/subscription frame.
type control struct {
	Type string `json:"T"`
	Msg  string `json:"msg"`
	Code int    `json:"code"`
	Subscription
}

// StreamError is an error frame sent by the server.
type StreamError struct {
	Code int
	Msg  string
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error %d: %s", e.Code, e.Msg)
}

// Handler receives each market data message. Returning an error stops Run.
type Handler func(Message) error
