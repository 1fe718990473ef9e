// Package chart builds ECharts options for the dashboard: a
// candlestick chart with moving-average overlays, a volume bar chart and
// an RSI line. Builders are pure transformations of the price series;
// rendering to HTML happens at the server boundary.
package chart

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockScope/internal/model"
)

const (
	priceHeight = "520px"
	panelHeight = "320px"
	chartWidth  = "1160px"

	dateFormat = "2006-01-02"
)

// axisDates returns the shared x-axis labels for a series.
func axisDates(series *model.PriceSeries) []string {
	dates := make([]string, len(series.Bars))
	for i, b := range series.Bars {
		dates[i] = b.Time.Format(dateFormat)
	}
	return dates
}

// Candlestick builds the price chart, one kline point per bar. An empty
// series yields an empty chart, not an error.
func Candlestick(series *model.PriceSeries, title string) *charts.Kline {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: priceHeight,
			Theme:  "white",
		}),
		charts.WithYAxisOpts(opts.YAxis{Scale: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Start:      0,
			End:        100,
			Throttle:   16.666,
			XAxisIndex: []int{0},
			Type:       "inside",
		}),
	)

	klineY := make([]opts.KlineData, len(series.Bars))
	for i, b := range series.Bars {
		// kline value order is open, close, low, high
		klineY[i] = opts.KlineData{Value: []float64{b.Open, b.Close, b.Low, b.High}}
	}
	kline.SetXAxis(axisDates(series)).
		AddSeries("Price", klineY).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:        "#2f9e44",
				Color0:       "#e03131",
				BorderColor:  "#2f9e44",
				BorderColor0: "#e03131",
			}),
		)
	return kline
}

// OverlayMovingAverages adds the MA50 and MA200 line traces onto the
// candlestick chart. Points without enough history render as gaps.
func OverlayMovingAverages(kline *charts.Kline, series *model.PriceSeries, set model.IndicatorSet) {
	line := charts.NewLine()
	line.SetXAxis(axisDates(series)).
		AddSeries("MA50", lineData(set.MA50)).
		AddSeries("MA200", lineData(set.MA200))
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{Smooth: true}),
	)
	kline.Overlap(line)
}

// lineData converts indicator points to line points, leaving undefined
// entries without a value so the renderer breaks the line instead of
// interpolating.
func lineData(points []model.IndicatorPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		if p.Valid {
			data[i] = opts.LineData{Value: p.Value}
		} else {
			data[i] = opts.LineData{SymbolSize: 0}
		}
	}
	return data
}

// Volume builds the trading-volume bar chart.
func Volume(series *model.PriceSeries, title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: panelHeight,
			Theme:  "white",
		}),
		charts.WithYAxisOpts(opts.YAxis{Scale: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	)

	barY := make([]opts.BarData, len(series.Bars))
	for i, b := range series.Bars {
		barY[i] = opts.BarData{Value: b.Volume}
	}
	bar.SetXAxis(axisDates(series)).AddSeries("Volume", barY)
	return bar
}

// RSILine builds the RSI chart. The y-axis is pinned to the 0-100 RSI
// scale and undefined points render as gaps.
func RSILine(series *model.PriceSeries, points []model.IndicatorPoint, title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: panelHeight,
			Theme:  "white",
		}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	)

	line.SetXAxis(axisDates(series)).AddSeries("RSI", lineData(points))
	return line
}
