package model

import "time"

// IndicatorPoint is one dated indicator value, aligned with the source bar
// at the same index. Valid is false where the trailing window does not yet
// have enough history.
type IndicatorPoint struct {
	Time  time.Time
	Value float64
	Valid bool
}

// IndicatorSet holds all computed indicator series for one price series.
// Each slice has the same length and date alignment as the source bars.
type IndicatorSet struct {
	MA50  []IndicatorPoint
	MA200 []IndicatorPoint
	RSI14 []IndicatorPoint
}

// IndicatorTable is the JSON projection of an IndicatorSet: aligned arrays
// with null entries for undefined points.
type IndicatorTable struct {
	Dates []string   `json:"dates"`
	MA50  []*float64 `json:"ma50"`
	MA200 []*float64 `json:"ma200"`
	RSI14 []*float64 `json:"rsi14"`
}

// NewIndicatorTable converts an IndicatorSet into its JSON projection.
func NewIndicatorTable(set IndicatorSet) IndicatorTable {
	t := IndicatorTable{
		Dates: make([]string, len(set.RSI14)),
		MA50:  toNullable(set.MA50),
		MA200: toNullable(set.MA200),
		RSI14: toNullable(set.RSI14),
	}
	for i, p := range set.RSI14 {
		t.Dates[i] = p.Time.Format("2006-01-02")
	}
	return t
}

func toNullable(points []IndicatorPoint) []*float64 {
	out := make([]*float64, len(points))
	for i, p := range points {
		if p.Valid {
			v := p.Value
			out[i] = &v
		}
	}
	return out
}
