// Package symbol maps user-facing market and symbol choices to canonical
// tickers understood by the market-data provider.
package symbol

import (
	"errors"
	"fmt"
	"strings"
)

// Market identifies which exchange family a symbol belongs to.
type Market string

const (
	MarketUS    Market = "us"
	MarketIndia Market = "india"
)

// NSE is the default exchange suffix for Indian symbols; BSE is accepted
// as an explicit alternative.
const (
	suffixNSE = ".NS"
	suffixBSE = ".BO"
)

// ErrInvalidSymbol reports user input that cannot form a ticker.
var ErrInvalidSymbol = errors.New("invalid symbol")

// ParseMarket parses a market selector string.
func ParseMarket(s string) (Market, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "us", "usa", "united states":
		return MarketUS, nil
	case "india", "in", "indian":
		return MarketIndia, nil
	default:
		return "", fmt.Errorf("%w: unknown market %q", ErrInvalidSymbol, s)
	}
}

// DisplayName returns the label shown in the market selector.
func (m Market) DisplayName() string {
	if m == MarketIndia {
		return "Indian Stocks"
	}
	return "US Stocks"
}

// CurrencySymbol returns the display currency for the market.
func (m Market) CurrencySymbol() string {
	if m == MarketIndia {
		return "₹"
	}
	return "$"
}

// Resolve canonicalizes raw user input into a ticker for the given market.
// Indian symbols get the NSE suffix unless an exchange suffix is already
// present; US symbols have a stray NSE/BSE suffix stripped. Input is
// upper-cased and must contain only letters, digits, dots and hyphens.
func Resolve(market Market, raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidSymbol)
	}
	for _, r := range ticker {
		valid := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-'
		if !valid {
			return "", fmt.Errorf("%w: unexpected character %q in %q", ErrInvalidSymbol, r, raw)
		}
	}

	switch market {
	case MarketIndia:
		if !strings.HasSuffix(ticker, suffixNSE) && !strings.HasSuffix(ticker, suffixBSE) {
			ticker += suffixNSE
		}
	case MarketUS:
		ticker = strings.TrimSuffix(ticker, suffixNSE)
		ticker = strings.TrimSuffix(ticker, suffixBSE)
		if ticker == "" {
			return "", fmt.Errorf("%w: %q has no base symbol", ErrInvalidSymbol, raw)
		}
	default:
		return "", fmt.Errorf("%w: unknown market %q", ErrInvalidSymbol, market)
	}
	return ticker, nil
}

// Defaults returns the default dropdown tickers for a market.
func Defaults(market Market) []string {
	if market == MarketIndia {
		return []string{
			"RELIANCE.NS",
			"TCS.NS",
			"HDFCBANK.NS",
			"INFY.NS",
			"ICICIBANK.NS",
			"BHARTIARTL.NS",
			"WIPRO.NS",
			"ZOMATO.NS",
			"PAYTM.NS",
			"JIOFIN.NS",
		}
	}
	return []string{
		"AAPL",
		"GOOGL",
		"MSFT",
		"AMZN",
		"TSLA",
		"META",
		"NVDA",
		"NFLX",
		"JPM",
		"V",
	}
}
