package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/betbot/alpacasamples/internal/metrics"
	"github.com/betbot/alpacasamples/pkg/logger"
)

// Client streams market data over one WebSocket connection.
type Client struct {
	url    string
	key    string
	secret string
	config *Config

	conn   *websocket.Conn
	connMu sync.Mutex
}

// NewClient targets a full stream URL such as
// wss://stream.data.alpaca.markets/v2/iex.
func NewClient(streamURL, key, secret string) *Client {
	return NewClientWithConfig(streamURL, key, secret, DefaultConfig())
}

func NewClientWithConfig(streamURL, key, secret string, config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	return &Client{url: streamURL, key: key, secret: secret, config: config}
}

// Run connects, authenticates, subscribes and hands every trade, quote and
// bar to handler until ctx is done, the handler returns an error or the
// server closes the connection. A cancelled ctx returns nil.
func (c *Client) Run(ctx context.Context, sub Subscription, handler Handler) error {
	if sub.Empty() {
		return errors.New("stream: empty subscription")
	}
	if handler == nil {
		return errors.New("stream: nil handler")
	}
	if err := c.connect(ctx); err != nil {
		return err
	}
	defer c.close()

	// unblock ReadMessage when ctx ends
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.close()
		case <-stop:
		}
	}()
	go c.pingLoop(stop)

	if err := c.handshake(sub); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	for {
		msgs, err := c.read()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return errors.Wrap(err, "stream: read")
		}
		for _, raw := range msgs {
			msg, ctrl, err := decode(raw)
			if err != nil {
				return err
			}
			if ctrl != nil {
				if ctrl.Type == TypeError {
					return &StreamError{Code: ctrl.Code, Msg: ctrl.Msg}
				}
				logger.Debugf("stream: %s %s", ctrl.Type, ctrl.Msg)
				continue
			}
			metrics.StreamMessages.Add(1)
			if err := handler(*msg); err != nil {
				return err
			}
		}
	}
}

func (c *Client) connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.HandshakeTimeout,
		Proxy:            http.ProxyFromEnvironment,
	}
	if c.config.ProxyURL != "" {
		proxyURL, err := url.Parse(c.config.ProxyURL)
		if err != nil {
			return errors.Wrap(err, "invalid proxy url")
		}
		dialer.Proxy = http.ProxyURL(proxyURL)
	}

	retries := max(c.config.MaxRetries, 1)
	var (
		conn *websocket.Conn
		err  error
	)
	for i := 0; i < retries; i++ {
		conn, _, err = dialer.DialContext(ctx, c.url, nil)
		if err == nil {
			break
		}
		if i < retries-1 {
			logger.Warnf("stream: dial attempt %d/%d failed: %v", i+1, retries, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i+1) * time.Second):
			}
		}
	}
	if err != nil {
		return errors.Wrapf(err, "stream: dial %s", c.url)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	logger.Infof("stream: connected to %s", c.url)
	return nil
}

// handshake expects "connected", authenticates, then subscribes.
func (c *Client) handshake(sub Subscription) error {
	if err := c.expect(TypeSuccess, "connected"); err != nil {
		return err
	}
	if err := c.write(map[string]any{"action": "auth", "key": c.key, "secret": c.secret}); err != nil {
		return err
	}
	if err := c.expect(TypeSuccess, "authenticated"); err != nil {
		return err
	}
	return c.write(struct {
		Action string `json:"action"`
		Subscription
	}{"subscribe", sub})
}

func (c *Client) expect(typ, msg string) error {
	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()
	if conn == nil {
		return errors.New("stream: not connected")
	}
	if c.config.AuthTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(c.config.AuthTimeout))
		defer conn.SetReadDeadline(time.Time{})
	}

	msgs, err := c.read()
	if err != nil {
		return errors.Wrapf(err, "stream: waiting for %s", msg)
	}
	for _, raw := range msgs {
		_, ctrl, err := decode(raw)
		if err != nil {
			return err
		}
		if ctrl == nil {
			continue
		}
		if ctrl.Type == TypeError {
			return &StreamError{Code: ctrl.Code, Msg: ctrl.Msg}
		}
		if ctrl.Type == typ && ctrl.Msg == msg {
			return nil
		}
	}
	return errors.Errorf("stream: expected %s/%s", typ, msg)
}

// read returns the frames of one server message. The server batches
// frames into JSON arrays.
func (c *Client) read() ([]json.RawMessage, error) {
	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()
	if conn == nil {
		return nil, errors.New("stream: not connected")
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) > 0 && data[0] == '{' {
		return []json.RawMessage{data}, nil
	}
	var msgs []json.RawMessage
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, errors.Wrap(err, "stream: decode frame")
	}
	return msgs, nil
}

func decode(raw json.RawMessage) (*Message, *control, error) {
	var head struct {
		Type string `json:"T"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, nil, errors.Wrap(err, "stream: decode message")
	}
	switch head.Type {
	case TypeTrade, TypeQuote, TypeBar:
		var m Message
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, nil, errors.Wrapf(err, "stream: decode %s", head.Type)
		}
		return &m, nil, nil
	default:
		var ctrl control
		if err := json.Unmarshal(raw, &ctrl); err != nil {
			return nil, nil, errors.Wrap(err, "stream: decode control")
		}
		return nil, &ctrl, nil
	}
}

func (c *Client) write(v any) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn == nil {
		return errors.New("stream: not connected")
	}
	return errors.Wrap(c.conn.WriteJSON(v), "stream: write")
}

func (c *Client) pingLoop(stop <-chan struct{}) {
	if c.config.PingInterval <= 0 {
		return
	}
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.connMu.Lock()
			if c.conn != nil {
				_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
			}
			c.connMu.Unlock()
		}
	}
}

func (c *Client) close() {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn == nil {
		return
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	_ = c.conn.Close()
	c.conn = nil
}
