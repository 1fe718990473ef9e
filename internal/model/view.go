package model

import "time"

// Statistics summarizes one price series for the dashboard panel.
// Change fields compare the last close to the one before it; the MA and RSI
// fields carry the latest defined indicator values.
type Statistics struct {
	LatestPrice float64 `json:"latest_price"`
	Change      float64 `json:"change"`
	ChangePct   float64 `json:"change_pct"`
	ChangeValid bool    `json:"change_valid"`
	High52w     float64 `json:"high_52w"`
	Low52w      float64 `json:"low_52w"`
	AvgVolume   float64 `json:"avg_volume"`
	MA50        float64 `json:"ma50"`
	MA50Valid   bool    `json:"ma50_valid"`
	MA200       float64 `json:"ma200"`
	MA200Valid  bool    `json:"ma200_valid"`
	RSI14       float64 `json:"rsi14"`
	RSI14Valid  bool    `json:"rsi14_valid"`
}

// StatLine is one formatted row of the statistics panel.
type StatLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Note  string `json:"note,omitempty"`
}

// ViewModel is the complete output of one interaction cycle, ready for the
// HTML template and the JSON API.
type ViewModel struct {
	Market      string         `json:"market"`
	MarketLabel string         `json:"market_label"`
	Symbol      string         `json:"symbol"`
	CompanyName string         `json:"company_name"`
	Currency    string         `json:"currency"` // display symbol, "$" or "₹"
	Range       string         `json:"range"`
	Statistics  Statistics     `json:"statistics"`
	StatLines   []StatLine     `json:"stat_lines"`
	Indicators  IndicatorTable `json:"indicators"`
	News        []NewsArticle  `json:"news"`
	BarCount    int            `json:"bar_count"`
	FetchedAt   time.Time      `json:"fetched_at"`
}
