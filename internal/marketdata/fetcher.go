// Package marketdata fetches price series from the market-data
// collaborator. The dashboard consumes it through the Fetcher interface so
// the provider can be swapped for a mock in development and tests.
package marketdata

import (
	"context"
	"errors"

	"StockScope/internal/model"
)

// ErrDataUnavailable reports that the provider could not supply data for a
// ticker: unknown symbol, empty response or provider failure.
var ErrDataUnavailable = errors.New("market data unavailable")

// DefaultRange is one year of history, matching the dashboard default.
const DefaultRange = "1y"

// Fetcher fetches the price series for a resolved ticker over a named
// range ("6mo", "1y", ...).
type Fetcher interface {
	FetchSeries(ctx context.Context, symbol, rng string) (*model.PriceSeries, error)
	Name() string
}

var validRanges = map[string]bool{
	"3mo": true,
	"6mo": true,
	"1y":  true,
	"2y":  true,
	"5y":  true,
	"max": true,
}

// NormalizeRange maps user input to a supported provider range, falling
// back to the default for anything unrecognized.
func NormalizeRange(rng string) string {
	if validRanges[rng] {
		return rng
	}
	return DefaultRange
}

// Ranges lists the selectable history ranges in menu order.
func Ranges() []string {
	return []string{"3mo", "6mo", "1y", "2y", "5y", "max"}
}
