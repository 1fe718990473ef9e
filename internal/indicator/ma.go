package indicator

import "StockScope/internal/model"

// MovingAverage computes the trailing simple moving average of close prices
// over the given window. The point at index i is valid once i+1 >= window.
func MovingAverage(series *model.PriceSeries, window int) ([]model.IndicatorPoint, error) {
	if err := checkSeries(series, window); err != nil {
		return nil, err
	}

	bars := series.Bars
	points := make([]model.IndicatorPoint, len(bars))
	for i, bar := range bars {
		points[i] = model.IndicatorPoint{Time: bar.Time}
		if i+1 < window {
			continue
		}
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += bars[j].Close
		}
		points[i].Value = sum / float64(window)
		points[i].Valid = true
	}
	return points, nil
}
