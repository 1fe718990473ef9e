package model

import "time"

// PriceBar represents a single OHLCV bar.
type PriceBar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries holds the time-ordered bars for one ticker over a date range.
// It is immutable once fetched and owned by a single render cycle.
type PriceSeries struct {
	Symbol      string
	CompanyName string
	Currency    string // provider currency code, e.g. "USD" or "INR"
	Bars        []PriceBar
	FetchedAt   time.Time
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Closes returns the close prices in series order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}
