package trading

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/betbot/alpacasamples/pkg/cache"
	"github.com/betbot/alpacasamples/pkg/ratelimit"
	"github.com/betbot/alpacasamples/pkg/sdk/rest"
)

const (
	PaperBaseURL = "https://paper-api.alpaca.markets"
	LiveBaseURL  = "https://api.alpaca.markets"

	defaultAssetTTL = 5 * time.Minute
)

type ClientOptions struct {
	KeyID     string
	SecretKey string
	// Paper selects the paper endpoint when BaseURL is empty.
	Paper      bool
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	Limiter    ratelimit.RateLimiter
	// AssetCacheTTL controls GetAsset caching; negative disables it.
	AssetCacheTTL time.Duration
}

// Client covers the account, asset, corporate action and order endpoints.
type Client struct {
	rest   *rest.Client
	assets cache.Cache[string, *Asset]
}

func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = LiveBaseURL
		if opts.Paper {
			baseURL = PaperBaseURL
		}
	}
	c := &Client{
		rest: rest.NewClient(rest.Options{
			BaseURL:    baseURL,
			KeyID:      opts.KeyID,
			SecretKey:  opts.SecretKey,
			Timeout:    opts.Timeout,
			RetryCount: opts.RetryCount,
			Limiter:    opts.Limiter,
		}),
	}
	if opts.AssetCacheTTL >= 0 {
		ttl := opts.AssetCacheTTL
		if ttl == 0 {
			ttl = defaultAssetTTL
		}
		c.assets = cache.NewInMemoryCache[string, *Asset](ttl)
	}
	return c
}

func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	var out Account
	if err := c.rest.Get(ctx, "/v2/account", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAccountConfigurations(ctx context.Context) (*AccountConfigurations, error) {
	var out AccountConfigurations
	if err := c.rest.Get(ctx, "/v2/account/configurations", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAllAssets(ctx context.Context, req GetAssetsRequest) ([]Asset, error) {
	if err := req.AssetClass.Validate(); err != nil {
		return nil, err
	}
	var out []Asset
	if err := c.rest.Get(ctx, "/v2/assets", req.params(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAsset looks an asset up by symbol or asset ID. Results are cached by
// the key as given, upper-cased.
func (c *Client) GetAsset(ctx context.Context, symbolOrID string) (*Asset, error) {
	key := strings.ToUpper(strings.TrimSpace(symbolOrID))
	if key == "" {
		return nil, errors.New("symbol or asset id is required")
	}
	if c.assets != nil {
		if a, ok := c.assets.Get(key); ok {
			return a, nil
		}
	}
	var out Asset
	if err := c.rest.Get(ctx, "/v2/assets/"+url.PathEscape(symbolOrID), nil, &out); err != nil {
		return nil, err
	}
	if c.assets != nil {
		c.assets.Set(key, &out, 0)
	}
	return &out, nil
}

func (c *Client) GetCorporateAnnouncements(ctx context.Context, req GetCorporateAnnouncementsRequest) ([]CorporateActionAnnouncement, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.Wrap(err, "corporate announcements request")
	}
	var out []CorporateActionAnnouncement
	if err := c.rest.Get(ctx, "/v2/corporate_actions/announcements", req.params(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCorporateAnnouncementByID(ctx context.Context, id string) (*CorporateActionAnnouncement, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("announcement id is required")
	}
	var out CorporateActionAnnouncement
	if err := c.rest.Get(ctx, "/v2/corporate_actions/announcements/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitOrder validates req and places it. A client_order_id is generated
// when the request has none.
func (c *Client) SubmitOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.Wrap(err, "order request")
	}
	var out Order
	if err := c.rest.Post(ctx, "/v2/orders", req.withClientOrderID(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
