package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockScope/internal/httpx"
	"StockScope/internal/model"
)

// YahooClient fetches price series from the Yahoo Finance chart API.
type YahooClient struct {
	client   *httpx.Client
	baseURL  string
	interval string
	logger   zerolog.Logger
}

// NewYahooClient creates a Yahoo Finance client. An empty baseURL selects
// the public endpoint; an empty interval selects weekly bars.
func NewYahooClient(baseURL, interval string, client *httpx.Client) *YahooClient {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	if interval == "" {
		interval = "1wk"
	}
	if client == nil {
		client = httpx.NewClient(httpx.Options{})
	}
	return &YahooClient{
		client:   client,
		baseURL:  baseURL,
		interval: interval,
		logger:   log.With().Str("component", "yahoo_client").Logger(),
	}
}

func (c *YahooClient) Name() string { return "yahoo" }

// chartResponse mirrors the v8 chart API payload. Quote arrays hold nulls
// for non-trading periods, hence interface{} elements.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency  string `json:"currency"`
				Symbol    string `json:"symbol"`
				ShortName string `json:"shortName"`
				LongName  string `json:"longName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchSeries fetches bars for the configured interval over the given
// range. Provider errors and unknown tickers map to ErrDataUnavailable.
func (c *YahooClient) FetchSeries(ctx context.Context, symbol, rng string) (*model.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		c.baseURL, url.PathEscape(symbol), c.interval, NormalizeRange(rng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}

	// Unknown symbols come back as a JSON error payload with a 4xx status.
	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", ErrDataUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrDataUnavailable, chart.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrDataUnavailable, resp.StatusCode)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("%w: no data returned for %s", ErrDataUnavailable, symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: missing quote block for %s", ErrDataUnavailable, symbol)
	}
	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return nil, fmt.Errorf("%w: malformed quote arrays for %s", ErrDataUnavailable, symbol)
	}

	bars := make([]model.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		cl := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // null bar (holiday etc.)
		}
		bars = append(bars, model.PriceBar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: int64(toFloat(quote.Volume[i])),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: only null bars returned for %s", ErrDataUnavailable, symbol)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	name := result.Meta.LongName
	if name == "" {
		name = result.Meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	series := &model.PriceSeries{
		Symbol:      symbol,
		CompanyName: name,
		Currency:    result.Meta.Currency,
		Bars:        bars,
		FetchedAt:   time.Now().UTC(),
	}
	c.logger.Debug().
		Str("symbol", symbol).
		Str("range", NormalizeRange(rng)).
		Int("bars", len(bars)).
		Msg("fetched price series")
	return series, nil
}
