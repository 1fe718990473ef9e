package marketdata

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/model"
)

type countingFetcher struct {
	calls int32
	inner Fetcher
}

func (f *countingFetcher) Name() string { return "counting" }

func (f *countingFetcher) FetchSeries(ctx context.Context, symbol, rng string) (*model.PriceSeries, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.inner.FetchSeries(ctx, symbol, rng)
}

func TestCachedFetcher_Hit(t *testing.T) {
	counting := &countingFetcher{inner: &MockFetcher{BasePrice: 100, BarCount: 10}}
	cached := NewCachedFetcher(counting, time.Minute)

	first, err := cached.FetchSeries(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	second, err := cached.FetchSeries(context.Background(), "AAPL", "1y")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&counting.calls))
	assert.Same(t, first, second, "cache should return the stored series")
}

func TestCachedFetcher_KeyIncludesRange(t *testing.T) {
	counting := &countingFetcher{inner: &MockFetcher{BasePrice: 100, BarCount: 10}}
	cached := NewCachedFetcher(counting, time.Minute)

	_, err := cached.FetchSeries(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	_, err = cached.FetchSeries(context.Background(), "AAPL", "5y")
	require.NoError(t, err)
	_, err = cached.FetchSeries(context.Background(), "MSFT", "1y")
	require.NoError(t, err)

	assert.Equal(t, int32(3), atomic.LoadInt32(&counting.calls))
}

func TestCachedFetcher_Invalidate(t *testing.T) {
	counting := &countingFetcher{inner: &MockFetcher{BasePrice: 100, BarCount: 10}}
	cached := NewCachedFetcher(counting, time.Minute)

	_, err := cached.FetchSeries(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	cached.Invalidate("AAPL", "1y")
	_, err = cached.FetchSeries(context.Background(), "AAPL", "1y")
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&counting.calls))
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	counting := &countingFetcher{inner: &MockFetcher{Err: ErrDataUnavailable}}
	cached := NewCachedFetcher(counting, time.Minute)

	_, err := cached.FetchSeries(context.Background(), "AAPL", "1y")
	assert.True(t, errors.Is(err, ErrDataUnavailable))
	_, err = cached.FetchSeries(context.Background(), "AAPL", "1y")
	assert.True(t, errors.Is(err, ErrDataUnavailable))

	assert.Equal(t, int32(2), atomic.LoadInt32(&counting.calls))
}

func TestMockFetcher_GeneratesValidBars(t *testing.T) {
	series, err := (&MockFetcher{BasePrice: 200, BarCount: 30}).FetchSeries(context.Background(), "TEST", "1y")
	require.NoError(t, err)
	require.Len(t, series.Bars, 30)

	for i, b := range series.Bars {
		assert.LessOrEqual(t, b.Low, b.Open, "bar %d", i)
		assert.LessOrEqual(t, b.Low, b.Close, "bar %d", i)
		assert.GreaterOrEqual(t, b.High, b.Open, "bar %d", i)
		assert.GreaterOrEqual(t, b.High, b.Close, "bar %d", i)
		if i > 0 {
			assert.True(t, series.Bars[i-1].Time.Before(b.Time), "bar %d time order", i)
		}
	}
}
