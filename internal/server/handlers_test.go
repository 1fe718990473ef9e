package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/dashboard"
	"StockScope/internal/marketdata"
	"StockScope/internal/model"
)

type stubAnalyst struct {
	reply string
	err   error
}

func (s *stubAnalyst) Chat(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

func newTestServer(fetcher marketdata.Fetcher, analyst dashboard.Analyst) *Server {
	return New(dashboard.NewService(fetcher, nil, analyst), 5*time.Second)
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postForm(t *testing.T, srv *Server, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&marketdata.MockFetcher{}, nil)

	rec := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestDashboardAPI(t *testing.T) {
	srv := newTestServer(&marketdata.MockFetcher{BasePrice: 180, BarCount: 60}, nil)

	rec := get(t, srv, "/api/dashboard?market=us&symbol=AAPL&range=1y")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var view model.ViewModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "AAPL", view.Symbol)
	assert.Equal(t, "$", view.Currency)
	assert.Equal(t, "1y", view.Range)
	assert.Equal(t, 60, view.BarCount)
	assert.NotEmpty(t, view.StatLines)
	assert.NotNil(t, view.News, "news panel defaults to an empty list, not null")
}

func TestDashboardAPI_CustomOverridesDropdown(t *testing.T) {
	srv := newTestServer(&marketdata.MockFetcher{BasePrice: 250, BarCount: 30}, nil)

	rec := get(t, srv, "/api/dashboard?market=india&symbol=RELIANCE.NS&custom=tcs")
	require.Equal(t, http.StatusOK, rec.Code)

	var view model.ViewModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "TCS.NS", view.Symbol)
	assert.Equal(t, "₹", view.Currency)
}

func TestDashboardAPI_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		fetcher marketdata.Fetcher
		target  string
		status  int
		code    string
	}{
		{
			name:    "bad symbol characters",
			fetcher: &marketdata.MockFetcher{},
			target:  "/api/dashboard?market=us&custom=BAD%24%24",
			status:  http.StatusBadRequest,
			code:    "invalid_symbol",
		},
		{
			name:    "unknown market",
			fetcher: &marketdata.MockFetcher{},
			target:  "/api/dashboard?market=mars",
			status:  http.StatusBadRequest,
			code:    "invalid_symbol",
		},
		{
			name:    "provider unavailable",
			fetcher: &marketdata.MockFetcher{Err: marketdata.ErrDataUnavailable},
			target:  "/api/dashboard?market=us&symbol=AAPL",
			status:  http.StatusBadGateway,
			code:    "data_unavailable",
		},
		{
			name:    "empty history",
			fetcher: &marketdata.MockFetcher{Series: &model.PriceSeries{Symbol: "AAPL"}},
			target:  "/api/dashboard?market=us&symbol=AAPL",
			status:  http.StatusUnprocessableEntity,
			code:    "insufficient_data",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(tc.fetcher, nil)

			rec := get(t, srv, tc.target)
			require.Equal(t, tc.status, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestChat(t *testing.T) {
	analyst := &stubAnalyst{reply: "The trend points up."}
	srv := newTestServer(&marketdata.MockFetcher{BasePrice: 180, BarCount: 60}, analyst)

	form := url.Values{}
	form.Set("market", "us")
	form.Set("symbol", "AAPL")
	form.Set("range", "1y")
	form.Set("question", "Is the trend up?")

	rec := postForm(t, srv, "/api/chat", form)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reply":"The trend points up."}`, rec.Body.String())
}

func TestChat_EmptyQuestion(t *testing.T) {
	srv := newTestServer(&marketdata.MockFetcher{}, &stubAnalyst{reply: "never reached"})

	form := url.Values{}
	form.Set("market", "us")
	form.Set("symbol", "AAPL")

	rec := postForm(t, srv, "/api/chat", form)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "empty_question", resp.Code)
}

func TestChat_NoAnalyst(t *testing.T) {
	srv := newTestServer(&marketdata.MockFetcher{BasePrice: 180, BarCount: 60}, nil)

	form := url.Values{}
	form.Set("market", "us")
	form.Set("symbol", "AAPL")
	form.Set("question", "Anything?")

	rec := postForm(t, srv, "/api/chat", form)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "chat_unavailable", resp.Code)
}

func TestChartEndpoints(t *testing.T) {
	srv := newTestServer(&marketdata.MockFetcher{BasePrice: 180, BarCount: 60}, nil)

	cases := []struct {
		path   string
		marker string
	}{
		{"/charts/price", "AAPL Price Chart"},
		{"/charts/volume", "AAPL Trading Volume"},
		{"/charts/rsi", "Relative Strength Index (RSI)"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := get(t, srv, tc.path+"?market=us&symbol=AAPL&range=1y")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tc.marker)
		})
	}
}

func TestChartEndpoint_ErrorNotice(t *testing.T) {
	srv := newTestServer(&marketdata.MockFetcher{Err: marketdata.ErrDataUnavailable}, nil)

	rec := get(t, srv, "/charts/price?market=us&symbol=AAPL")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Unable to fetch data")
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(&marketdata.MockFetcher{BasePrice: 180, BarCount: 60}, nil)

	rec := get(t, srv, "/?market=us&symbol=MSFT&range=1y")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "Stock Analysis Dashboard")
	assert.Contains(t, body, "Key Statistics")
	assert.Contains(t, body, "Latest News")
	// chart frames carry the canonical selection query
	assert.Contains(t, body, "/charts/price?market=us&amp;range=1y&amp;symbol=MSFT")
	assert.Contains(t, body, "/charts/volume?market=us&amp;range=1y&amp;symbol=MSFT")
	assert.Contains(t, body, "/charts/rsi?market=us&amp;range=1y&amp;symbol=MSFT")
	assert.Contains(t, body, `<option value="MSFT" selected>`)
	assert.Contains(t, body, `<option value="us" selected>`)
}

func TestIndexPage_FetchErrorShowsBanner(t *testing.T) {
	srv := newTestServer(&marketdata.MockFetcher{Err: marketdata.ErrDataUnavailable}, nil)

	rec := get(t, srv, "/?market=us&symbol=AAPL")
	require.Equal(t, http.StatusOK, rec.Code, "the page itself still renders")

	body := rec.Body.String()
	assert.Contains(t, body, "Unable to fetch data")
	assert.NotContains(t, body, "/charts/price", "no chart frames without data")
}

func TestIndexPage_BadMarketFallsBackToUS(t *testing.T) {
	srv := newTestServer(&marketdata.MockFetcher{BasePrice: 180, BarCount: 60}, nil)

	rec := get(t, srv, "/?market=mars&symbol=AAPL")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<option value="us" selected>`)
	assert.Contains(t, body, "valid ticker symbol")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&marketdata.MockFetcher{}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
