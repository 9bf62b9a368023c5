package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/betbot/alpacasamples/internal/metrics"
	"github.com/betbot/alpacasamples/pkg/logger"
	"github.com/betbot/alpacasamples/pkg/ratelimit"
)

const (
	HeaderKeyID     = "APCA-API-KEY-ID"
	HeaderSecretKey = "APCA-API-SECRET-KEY"

	defaultUserAgent = "alpaca-samples-go"
	defaultTimeout   = 30 * time.Second
	// used when a 429 carries no usable Retry-After
	defaultRateLimitWait = 3 * time.Second
)

// Options configure a Client. Zero values pick sensible defaults.
type Options struct {
	BaseURL    string
	KeyID      string
	SecretKey  string
	Timeout    time.Duration
	RetryCount int
	// RetryWaitTime and RetryMaxWaitTime bound resty's backoff.
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
	UserAgent        string
	// Limiter, when set, is waited on before each request.
	Limiter ratelimit.RateLimiter
}

// Client is the authenticated transport shared by the trading and market data clients.
type Client struct {
	client  *resty.Client
	limiter ratelimit.RateLimiter
}

func NewClient(opts Options) *Client {
	host := strings.TrimSuffix(opts.BaseURL, "/")
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	waitTime := opts.RetryWaitTime
	if waitTime <= 0 {
		waitTime = time.Second
	}
	maxWait := opts.RetryMaxWaitTime
	if maxWait <= 0 {
		maxWait = 10 * time.Second
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	// resty picks up HTTP_PROXY / HTTPS_PROXY from the environment
	client := resty.New().
		SetBaseURL(host).
		SetTimeout(timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(waitTime).
		SetRetryMaxWaitTime(maxWait).
		SetHeader(HeaderKeyID, opts.KeyID).
		SetHeader(HeaderSecretKey, opts.SecretKey).
		SetHeader("User-Agent", ua).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && isRetryableStatus(resp.StatusCode())
		}).
		AddRetryHook(func(resp *resty.Response, err error) {
			metrics.HTTPRetries.Add(1)
		}).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			if resp == nil || resp.StatusCode() != http.StatusTooManyRequests {
				return 0, nil
			}
			if d, ok := parseRetryAfter(resp.Header().Get("Retry-After")); ok {
				return d, nil
			}
			return defaultRateLimitWait, nil
		})

	return &Client{client: client, limiter: opts.Limiter}
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusGatewayTimeout
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(v string) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}

type RequestOptions struct {
	Headers map[string]string
	Data    any
	Params  map[string]any
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	r := c.client.R()
	if ctx != nil {
		r.SetContext(ctx)
	}
	return r
}

// DoRequest sends one request and decodes a 2xx JSON body into out.
// Non-2xx responses are returned as *APIError.
func (c *Client) DoRequest(ctx context.Context, method, endpoint string, opt *RequestOptions, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "rate limit wait")
		}
	}

	rc := c.newRequest(ctx)
	if opt != nil {
		for k, v := range opt.Headers {
			rc.SetHeader(k, v)
		}
		if opt.Params != nil {
			rc.SetQueryParamsFromValues(toValues(opt.Params))
		}
		if opt.Data != nil {
			rc.SetHeader("Content-Type", "application/json")
			rc.SetBody(opt.Data)
		}
	}

	metrics.HTTPRequests.Add(1)
	start := time.Now()
	var (
		resp *resty.Response
		err  error
	)
	switch strings.ToUpper(method) {
	case http.MethodGet:
		resp, err = rc.Get(endpoint)
	case http.MethodPost:
		resp, err = rc.Post(endpoint)
	case http.MethodDelete:
		resp, err = rc.Delete(endpoint)
	case http.MethodPatch:
		resp, err = rc.Patch(endpoint)
	case http.MethodPut:
		resp, err = rc.Put(endpoint)
	default:
		return errors.Errorf("unsupported method: %s", method)
	}
	if resp != nil {
		logger.Debugf("%s %s -> %d (%s)", method, endpoint, resp.StatusCode(), time.Since(start).Round(time.Millisecond))
	}
	if err := ParseHTTPError(resp, err); err != nil {
		metrics.HTTPErrors.Add(1)
		return errors.WithMessagef(err, "%s %s", method, endpoint)
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, endpoint)
	}
	return nil
}

// Get issues a GET with query params.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]any, out any) error {
	return c.DoRequest(ctx, http.MethodGet, endpoint, &RequestOptions{Params: params}, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any, out any) error {
	return c.DoRequest(ctx, http.MethodPost, endpoint, &RequestOptions{Data: body}, out)
}

// toValues flattens params, dropping nil and empty values so optional
// request fields never reach the query string.
func toValues(m map[string]any) url.Values {
	v := make(url.Values, len(m))
	for k, val := range m {
		switch t := val.(type) {
		case nil:
		case string:
			if t != "" {
				v.Set(k, t)
			}
		case []string:
			if len(t) > 0 {
				v[k] = t
			}
		case fmt.Stringer:
			if s := t.String(); s != "" {
				v.Set(k, s)
			}
		default:
			v.Set(k, fmt.Sprint(val))
		}
	}
	return v
}

// APIError is a non-2xx response. Code and Message come from the JSON body
// when present.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Body       string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	if e.Body != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// ParseHTTPError maps a transport error or non-2xx response to an error.
func ParseHTTPError(resp *resty.Response, err error) error {
	if err != nil {
		return errors.Wrap(err, "http request")
	}
	if resp == nil {
		return errors.New("http request: no response")
	}
	if resp.IsSuccess() {
		return nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(string(resp.Body()))}
	_ = json.Unmarshal(resp.Body(), apiErr)
	return apiErr
}
