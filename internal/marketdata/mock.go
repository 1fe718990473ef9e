package marketdata

import (
	"context"
	"time"

	"StockScope/internal/model"
)

// MockFetcher returns controllable synthetic data for development and
// testing.
type MockFetcher struct {
	BasePrice float64
	BarCount  int
	Series    *model.PriceSeries // overrides generated data when set
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbol, _ string) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Series != nil {
		return m.Series, nil
	}
	base := m.BasePrice
	if base == 0 {
		base = 100
	}
	count := m.BarCount
	if count == 0 {
		count = 52
	}
	return GenerateSeries(symbol, base, count), nil
}

// GenerateSeries builds count weekly bars ending this week, drifting gently
// upward around basePrice with a small repeating wobble so indicator charts
// have shape.
func GenerateSeries(symbol string, basePrice float64, count int) *model.PriceSeries {
	now := time.Now().UTC()
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice*(1+float64(i-count/2)*0.001) + float64(i%7-3)*basePrice*0.002
		bars[i] = model.PriceBar{
			Time:   now.AddDate(0, 0, -7*(count-i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000 + int64(i%5)*50_000,
		}
	}
	return &model.PriceSeries{
		Symbol:      symbol,
		CompanyName: symbol,
		Currency:    "USD",
		Bars:        bars,
		FetchedAt:   now,
	}
}
