package server

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"StockScope/internal/dashboard"
	"StockScope/internal/marketdata"
	"StockScope/internal/model"
	"StockScope/internal/symbol"
)

//go:embed index.html.tmpl
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

// pageData feeds the dashboard template. View is nil when the render
// cycle failed; Error then carries the user-facing message. ChartQuery
// is typed as a URL fragment so the template embeds it verbatim in the
// chart frame sources.
type pageData struct {
	View       *model.ViewModel
	Error      string
	Markets    []selectOption
	Symbols    []selectOption
	Custom     string
	Ranges     []selectOption
	ChartQuery template.URL
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var q dashboardQuery
	if err := s.decoder.Decode(&q, r.URL.Query()); err != nil {
		q = dashboardQuery{}
	}

	req, err := q.toRequest()
	if err != nil {
		req = dashboard.Request{Market: symbol.MarketUS, Symbol: symbol.Defaults(symbol.MarketUS)[0]}
	}

	data := pageData{Custom: q.Custom}
	if err == nil {
		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		view, rerr := s.svc.Render(ctx, req)
		cancel()
		if rerr != nil {
			_, resp := mapError(rerr)
			data.Error = resp.Error
			zerolog.Ctx(r.Context()).Debug().Err(rerr).Msg("page render degraded")
		} else {
			data.View = view
			req.Symbol = view.Symbol
			data.ChartQuery = template.URL(chartQuery(req))
		}
	} else {
		_, resp := mapError(err)
		data.Error = resp.Error
	}

	selected := req.Symbol
	if data.View != nil {
		selected = data.View.Symbol
	}
	data.Markets = marketOptions(req.Market)
	data.Symbols = symbolOptions(req.Market, selected)
	data.Ranges = rangeOptions(marketdata.NormalizeRange(req.Range))

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("template execution failed")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func marketOptions(current symbol.Market) []selectOption {
	opts := make([]selectOption, 0, 2)
	for _, m := range []symbol.Market{symbol.MarketIndia, symbol.MarketUS} {
		opts = append(opts, selectOption{
			Value:    string(m),
			Label:    m.DisplayName(),
			Selected: m == current,
		})
	}
	return opts
}

func symbolOptions(market symbol.Market, selected string) []selectOption {
	defaults := symbol.Defaults(market)
	opts := make([]selectOption, 0, len(defaults))
	for _, sym := range defaults {
		opts = append(opts, selectOption{Value: sym, Label: sym, Selected: sym == selected})
	}
	return opts
}

func rangeOptions(selected string) []selectOption {
	ranges := marketdata.Ranges()
	opts := make([]selectOption, 0, len(ranges))
	for _, rng := range ranges {
		opts = append(opts, selectOption{Value: rng, Label: rng, Selected: rng == selected})
	}
	return opts
}
