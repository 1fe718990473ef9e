package stats

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"StockScope/internal/model"
)

var printer = message.NewPrinter(language.English)

// FormatMoney renders a price with its display currency. Rupee amounts get
// thousand separators, dollar amounts do not.
func FormatMoney(value float64, currencySymbol string) string {
	if currencySymbol == "₹" {
		return currencySymbol + printer.Sprintf("%.2f", value)
	}
	return fmt.Sprintf("%s%.2f", currencySymbol, value)
}

// FormatVolume renders a share count with thousand separators.
func FormatVolume(value float64) string {
	return printer.Sprintf("%d", int64(value))
}

// Lines renders the statistics panel rows in display order. Moving-average
// rows appear only when enough history exists for them.
func Lines(st model.Statistics, currencySymbol string) []model.StatLine {
	lines := make([]model.StatLine, 0, 6)

	latest := model.StatLine{Label: "Latest Price", Value: FormatMoney(st.LatestPrice, currencySymbol)}
	if st.ChangeValid {
		latest.Note = fmt.Sprintf("%+.2f%%", st.ChangePct)
	}
	lines = append(lines, latest)

	lines = append(lines,
		model.StatLine{Label: "52-Week High", Value: FormatMoney(st.High52w, currencySymbol)},
		model.StatLine{Label: "52-Week Low", Value: FormatMoney(st.Low52w, currencySymbol)},
		model.StatLine{Label: "Average Volume", Value: FormatVolume(st.AvgVolume)},
	)

	if st.MA50Valid {
		lines = append(lines, model.StatLine{Label: "50-Day MA", Value: FormatMoney(st.MA50, currencySymbol)})
	}
	if st.MA200Valid {
		lines = append(lines, model.StatLine{Label: "200-Day MA", Value: FormatMoney(st.MA200, currencySymbol)})
	}
	return lines
}
