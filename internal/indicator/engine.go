// Package indicator derives technical indicator series from price data.
// All outputs keep the length and date alignment of the source series;
// points without enough trailing history are marked invalid instead of
// being dropped.
package indicator

import (
	"errors"
	"fmt"

	"StockScope/internal/model"
)

// Standard windows for the dashboard indicator set.
const (
	MA50Window  = 50
	MA200Window = 200
	RSIWindow   = 14
)

// ErrInsufficientData reports an empty input series.
var ErrInsufficientData = errors.New("insufficient data")

// Compute derives the standard indicator set (MA50, MA200, RSI14).
func Compute(series *model.PriceSeries) (model.IndicatorSet, error) {
	ma50, err := MovingAverage(series, MA50Window)
	if err != nil {
		return model.IndicatorSet{}, fmt.Errorf("ma%d: %w", MA50Window, err)
	}
	ma200, err := MovingAverage(series, MA200Window)
	if err != nil {
		return model.IndicatorSet{}, fmt.Errorf("ma%d: %w", MA200Window, err)
	}
	rsi, err := RSI(series, RSIWindow)
	if err != nil {
		return model.IndicatorSet{}, fmt.Errorf("rsi%d: %w", RSIWindow, err)
	}
	return model.IndicatorSet{MA50: ma50, MA200: ma200, RSI14: rsi}, nil
}

func checkSeries(series *model.PriceSeries, window int) error {
	if window <= 0 {
		return fmt.Errorf("window must be positive, got %d", window)
	}
	if series == nil || len(series.Bars) == 0 {
		return fmt.Errorf("%w: empty price series", ErrInsufficientData)
	}
	return nil
}
