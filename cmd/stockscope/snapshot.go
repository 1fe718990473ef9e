package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"StockScope/internal/chart"
	"StockScope/internal/config"
	"StockScope/internal/dashboard"
	"StockScope/internal/model"
	"StockScope/internal/symbol"
)

var (
	snapMarket string
	snapSymbol string
	snapRange  string
	snapCSV    string
	snapHTML   string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one stock analysis to the terminal, optionally exporting bars and a chart",
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&snapMarket, "market", "us", "market to analyze (us or india)")
	snapshotCmd.Flags().StringVar(&snapSymbol, "symbol", "", "ticker symbol (defaults to the market's first dropdown entry)")
	snapshotCmd.Flags().StringVar(&snapRange, "range", "", "history range (3mo, 6mo, 1y, 2y, 5y, max)")
	snapshotCmd.Flags().StringVar(&snapCSV, "csv", "", "write the fetched bars to this CSV file")
	snapshotCmd.Flags().StringVar(&snapHTML, "html", "", "write a standalone price chart page to this HTML file")
}

// runSnapshot renders one analysis without the web server or the AI
// collaborator, so it needs no API key.
func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	setupLogger(cfg.LogLevel)

	market, err := symbol.ParseMarket(snapMarket)
	if err != nil {
		return err
	}
	sym := snapSymbol
	if sym == "" {
		sym = symbol.Defaults(market)[0]
	}
	rng := snapRange
	if rng == "" {
		rng = cfg.DataSource.Range
	}

	svc := dashboard.NewService(buildFetcher(cfg), nil, nil)
	req := dashboard.Request{Market: market, Symbol: sym, Range: rng}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()

	view, err := svc.Render(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s) over %s\n\n", view.Symbol, view.MarketLabel, view.Range)

	table := tablewriter.NewWriter(out)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnSeparator("")
	for _, line := range view.StatLines {
		value := line.Value
		if line.Note != "" {
			value = fmt.Sprintf("%s (%s)", line.Value, line.Note)
		}
		table.Append([]string{line.Label, value})
	}
	table.Render()

	if snapCSV == "" && snapHTML == "" {
		return nil
	}

	series, set, err := svc.Series(ctx, req)
	if err != nil {
		return err
	}
	if snapCSV != "" {
		if err := writeBarsCSV(snapCSV, series); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nwrote %d bars to %s\n", series.Len(), snapCSV)
	}
	if snapHTML != "" {
		if err := writeChartHTML(snapHTML, series, set); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote price chart to %s\n", snapHTML)
	}
	return nil
}

// barRecord is the CSV export row for one weekly bar.
type barRecord struct {
	Date   string  `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume int64   `csv:"volume"`
}

func writeBarsCSV(path string, series *model.PriceSeries) error {
	records := make([]barRecord, 0, series.Len())
	for _, b := range series.Bars {
		records = append(records, barRecord{
			Date:   b.Time.Format("2006-01-02"),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeChartHTML(path string, series *model.PriceSeries, set model.IndicatorSet) error {
	kline := chart.Candlestick(series, fmt.Sprintf("%s Price Chart", series.Symbol))
	chart.OverlayMovingAverages(kline, series, set)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html: %w", err)
	}
	defer f.Close()

	if err := kline.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
