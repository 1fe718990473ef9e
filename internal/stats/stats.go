// Package stats summarizes a price series into the key figures shown on
// the dashboard statistics panel.
package stats

import (
	"fmt"

	mstats "github.com/montanaflynn/stats"

	"StockScope/internal/indicator"
	"StockScope/internal/model"
)

// Window52w is the number of weekly bars in one trading year. When the
// fetched range is longer than a year, the 52-week figures scan only the
// trailing window.
const Window52w = 52

// Build summarizes the series and the latest defined indicator values.
func Build(series *model.PriceSeries, set model.IndicatorSet) (model.Statistics, error) {
	if series == nil || len(series.Bars) == 0 {
		return model.Statistics{}, fmt.Errorf("%w: empty price series", indicator.ErrInsufficientData)
	}

	bars := series.Bars
	n := len(bars)
	st := model.Statistics{LatestPrice: bars[n-1].Close}

	if n >= 2 && bars[n-2].Close != 0 {
		st.Change = bars[n-1].Close - bars[n-2].Close
		st.ChangePct = st.Change / bars[n-2].Close * 100
		st.ChangeValid = true
	}

	start := n - Window52w
	if start < 0 {
		start = 0
	}
	highs := make([]float64, 0, n-start)
	lows := make([]float64, 0, n-start)
	for i := start; i < n; i++ {
		highs = append(highs, bars[i].High)
		lows = append(lows, bars[i].Low)
	}
	high, err := mstats.Max(highs)
	if err != nil {
		return model.Statistics{}, fmt.Errorf("52w high: %w", err)
	}
	low, err := mstats.Min(lows)
	if err != nil {
		return model.Statistics{}, fmt.Errorf("52w low: %w", err)
	}
	st.High52w = high
	st.Low52w = low

	volumes := make([]float64, n)
	for i, b := range bars {
		volumes[i] = float64(b.Volume)
	}
	avgVolume, err := mstats.Mean(volumes)
	if err != nil {
		return model.Statistics{}, fmt.Errorf("average volume: %w", err)
	}
	st.AvgVolume = avgVolume

	if p, ok := latestDefined(set.MA50); ok {
		st.MA50, st.MA50Valid = p.Value, true
	}
	if p, ok := latestDefined(set.MA200); ok {
		st.MA200, st.MA200Valid = p.Value, true
	}
	if p, ok := latestDefined(set.RSI14); ok {
		st.RSI14, st.RSI14Valid = p.Value, true
	}
	return st, nil
}

// latestDefined returns the most recent valid point, scanning backwards.
func latestDefined(points []model.IndicatorPoint) (model.IndicatorPoint, bool) {
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].Valid {
			return points[i], true
		}
	}
	return model.IndicatorPoint{}, false
}
