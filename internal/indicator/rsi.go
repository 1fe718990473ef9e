package indicator

import "StockScope/internal/model"

// RSI computes the relative strength index over the given window, smoothing
// gains and losses with a simple moving average rather than Wilder's
// recursive form. The point at index i is valid once i >= window, since the
// first close-to-close delta only exists at index 1. A delta of exactly
// zero adds to neither the gain nor the loss sum but still occupies a
// window slot. When the average loss is zero the RSI is 100.
func RSI(series *model.PriceSeries, window int) ([]model.IndicatorPoint, error) {
	if err := checkSeries(series, window); err != nil {
		return nil, err
	}

	bars := series.Bars
	points := make([]model.IndicatorPoint, len(bars))
	for i, bar := range bars {
		points[i] = model.IndicatorPoint{Time: bar.Time}
	}
	for i := window; i < len(bars); i++ {
		var gains, losses float64
		for j := i - window + 1; j <= i; j++ {
			delta := bars[j].Close - bars[j-1].Close
			if delta > 0 {
				gains += delta
			} else {
				losses -= delta
			}
		}
		avgGain := gains / float64(window)
		avgLoss := losses / float64(window)

		points[i].Valid = true
		if avgLoss == 0 {
			points[i].Value = 100
			continue
		}
		rs := avgGain / avgLoss
		points[i].Value = 100 - 100/(1+rs)
	}
	return points, nil
}
