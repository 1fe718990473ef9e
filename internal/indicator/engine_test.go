package indicator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/model"
)

// seriesFromCloses builds a weekly test series where every bar closes at the
// given price.
func seriesFromCloses(closes ...float64) *model.PriceSeries {
	base := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Time:   base.AddDate(0, 0, 7*i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return &model.PriceSeries{Symbol: "TEST", Currency: "USD", Bars: bars}
}

func TestCompute_ShortSeries(t *testing.T) {
	series := seriesFromCloses(10, 11, 12, 13, 14)
	set, err := Compute(series)
	require.NoError(t, err)

	assert.Len(t, set.MA50, 5)
	assert.Len(t, set.MA200, 5)
	assert.Len(t, set.RSI14, 5)
	for i := range series.Bars {
		assert.False(t, set.MA50[i].Valid, "ma50[%d] should be undefined", i)
		assert.False(t, set.MA200[i].Valid, "ma200[%d] should be undefined", i)
		assert.False(t, set.RSI14[i].Valid, "rsi14[%d] should be undefined", i)
	}
}

func TestCompute_EmptySeries(t *testing.T) {
	_, err := Compute(&model.PriceSeries{Symbol: "EMPTY"})
	assert.True(t, errors.Is(err, ErrInsufficientData), "expected ErrInsufficientData, got %v", err)

	_, err = Compute(nil)
	assert.True(t, errors.Is(err, ErrInsufficientData), "expected ErrInsufficientData, got %v", err)
}

func TestCompute_Alignment(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}
	series := seriesFromCloses(closes...)

	set, err := Compute(series)
	require.NoError(t, err)

	for i, bar := range series.Bars {
		assert.Equal(t, bar.Time, set.MA50[i].Time)
		assert.Equal(t, bar.Time, set.MA200[i].Time)
		assert.Equal(t, bar.Time, set.RSI14[i].Time)
	}
	// 60 bars: MA50 defined from index 49, MA200 never, RSI14 from index 14
	assert.False(t, set.MA50[48].Valid)
	assert.True(t, set.MA50[49].Valid)
	assert.False(t, set.MA200[59].Valid)
	assert.False(t, set.RSI14[13].Valid)
	assert.True(t, set.RSI14[14].Valid)
}
