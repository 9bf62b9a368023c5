package trading

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betbot/alpacasamples/pkg/sdk/rest"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(ClientOptions{BaseURL: srv.URL, KeyID: "k", SecretKey: "s"})
}

func TestNewClient_BaseURL(t *testing.T) {
	assert.NotNil(t, NewClient(ClientOptions{Paper: true}).assets)
	assert.Nil(t, NewClient(ClientOptions{AssetCacheTTL: -1}).assets)
}

func TestClient_GetAccount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/account":
			_, _ = io.WriteString(w, `{"id":"acc-1","status":"ACTIVE","cash":"1000.50","buying_power":"4000","daytrade_count":2,"created_at":"2023-01-02T15:04:05Z"}`)
		case "/v2/account/configurations":
			_, _ = io.WriteString(w, `{"dtbp_check":"entry","fractional_trading":true,"max_margin_multiplier":"4"}`)
		default:
			http.NotFound(w, r)
		}
	})

	acct, err := c.GetAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "acc-1", acct.ID)
	assert.True(t, acct.Cash.Equal(decimal.RequireFromString("1000.5")))
	assert.EqualValues(t, 2, acct.DaytradeCount)

	cfg, err := c.GetAccountConfigurations(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.FractionalTrading)
	assert.Equal(t, "entry", cfg.DTBPCheck)
}

func TestClient_GetAllAssets(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/assets", r.URL.Path)
		assert.Equal(t, "crypto", r.URL.Query().Get("asset_class"))
		_, _ = io.WriteString(w, `[{"symbol":"BTC/USD","class":"crypto","tradable":true},{"symbol":"ETH/USD","class":"crypto"}]`)
	})

	assets, err := c.GetAllAssets(context.Background(), GetAssetsRequest{AssetClass: AssetClassCrypto})
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, AssetClassCrypto, assets[0].Class)

	_, err = c.GetAllAssets(context.Background(), GetAssetsRequest{AssetClass: "bonds"})
	assert.Error(t, err)
}

func TestClient_GetAssetCached(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v2/assets/MSFT", r.URL.Path)
		_, _ = io.WriteString(w, `{"symbol":"MSFT","name":"Microsoft Corporation Common Stock"}`)
	})

	for i := 0; i < 3; i++ {
		a, err := c.GetAsset(context.Background(), "MSFT")
		require.NoError(t, err)
		assert.Equal(t, "MSFT", a.Symbol)
	}
	a, err := c.GetAsset(context.Background(), "msft")
	require.NoError(t, err)
	assert.Equal(t, "MSFT", a.Symbol)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	_, err = c.GetAsset(context.Background(), "")
	assert.Error(t, err)
}

func TestClient_CorporateAnnouncements(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/corporate_actions/announcements":
			q := r.URL.Query()
			assert.Equal(t, "dividend", q.Get("ca_types"))
			assert.Equal(t, "2023-09-01", q.Get("since"))
			assert.Equal(t, "2023-11-30", q.Get("until"))
			assert.Equal(t, "MSFT", q.Get("symbol"))
			_, _ = io.WriteString(w, `[{"id":"ann-1","ca_type":"dividend","cash":"0.75","ex_date":"2023-11-15"}]`)
		case "/v2/corporate_actions/announcements/ann-1":
			_, _ = io.WriteString(w, `{"id":"ann-1","ca_type":"dividend"}`)
		default:
			http.NotFound(w, r)
		}
	})

	anns, err := c.GetCorporateAnnouncements(context.Background(), GetCorporateAnnouncementsRequest{
		CATypes: []CorporateActionType{CATypeDividend},
		Since:   time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		Until:   time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC),
		Symbol:  "MSFT",
	})
	require.NoError(t, err)
	require.Len(t, anns, 1)
	assert.Equal(t, "2023-11-15", anns[0].ExDate)
	assert.True(t, anns[0].Cash.Equal(decimal.RequireFromString("0.75")))

	ann, err := c.GetCorporateAnnouncementByID(context.Background(), anns[0].ID)
	require.NoError(t, err)
	assert.Equal(t, CATypeDividend, ann.CAType)

	_, err = c.GetCorporateAnnouncements(context.Background(), GetCorporateAnnouncementsRequest{})
	assert.Error(t, err)
}

func TestClient_SubmitOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "MSFT", body["symbol"])
		assert.NotEmpty(t, body["client_order_id"])
		out, _ := json.Marshal(map[string]any{
			"id": "ord-1", "client_order_id": body["client_order_id"], "symbol": "MSFT",
			"qty": "10", "side": "buy", "type": "market", "time_in_force": "day", "status": "accepted",
			"filled_qty": "0", "created_at": "2023-11-01T14:30:00Z",
		})
		_, _ = w.Write(out)
	})

	order, err := c.SubmitOrder(context.Background(), NewMarketOrder("MSFT", decimal.NewFromInt(10), SideBuy, TIFDay))
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, "accepted", order.Status)
	assert.True(t, order.Qty.Equal(decimal.NewFromInt(10)))
	assert.Nil(t, order.FilledAt)
}

func TestClient_SubmitOrderInvalidSkipsNetwork(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	_, err := c.SubmitOrder(context.Background(), OrderRequest{Symbol: "MSFT"})
	require.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_SubmitOrderRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"code":40310000,"message":"insufficient qty available for order"}`)
	})
	_, err := c.SubmitOrder(context.Background(), NewMarketOrder("MSFT", decimal.NewFromInt(10), SideSell, TIFDay))
	var apiErr *rest.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 40310000, apiErr.Code)
}
