package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"StockScope/internal/chart"
	"StockScope/internal/dashboard"
	"StockScope/internal/indicator"
	"StockScope/internal/marketdata"
	"StockScope/internal/model"
	"StockScope/internal/symbol"
)

// dashboardQuery carries the selection form fields. A non-empty custom
// symbol wins over the dropdown choice.
type dashboardQuery struct {
	Market string `schema:"market"`
	Symbol string `schema:"symbol"`
	Custom string `schema:"custom"`
	Range  string `schema:"range"`
}

// chatForm extends the selection with the user question.
type chatForm struct {
	Market   string `schema:"market"`
	Symbol   string `schema:"symbol"`
	Custom   string `schema:"custom"`
	Range    string `schema:"range"`
	Question string `schema:"question"`
}

func (q dashboardQuery) toRequest() (dashboard.Request, error) {
	market, err := symbol.ParseMarket(q.Market)
	if err != nil {
		return dashboard.Request{}, err
	}
	raw := q.Symbol
	if q.Custom != "" {
		raw = q.Custom
	}
	if raw == "" {
		raw = symbol.Defaults(market)[0]
	}
	return dashboard.Request{Market: market, Symbol: raw, Range: q.Range}, nil
}

func (s *Server) decodeQuery(r *http.Request) (dashboard.Request, error) {
	var q dashboardQuery
	if err := s.decoder.Decode(&q, r.URL.Query()); err != nil {
		return dashboard.Request{}, fmt.Errorf("%w: %v", symbol.ErrInvalidSymbol, err)
	}
	return q.toRequest()
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// mapError translates the error taxonomy into a status, a machine code
// and a user-facing message. Everything is recoverable from the UI.
func mapError(err error) (int, errorResponse) {
	switch {
	case errors.Is(err, symbol.ErrInvalidSymbol):
		return http.StatusBadRequest, errorResponse{
			Code:  "invalid_symbol",
			Error: "Please enter a valid ticker symbol (letters, digits, dots and hyphens).",
		}
	case errors.Is(err, marketdata.ErrDataUnavailable):
		return http.StatusBadGateway, errorResponse{
			Code:  "data_unavailable",
			Error: "Unable to fetch data for the selected symbol. Please try another symbol or check if the stock exists.",
		}
	case errors.Is(err, indicator.ErrInsufficientData):
		return http.StatusUnprocessableEntity, errorResponse{
			Code:  "insufficient_data",
			Error: "No price history is available for this symbol.",
		}
	case errors.Is(err, dashboard.ErrNoAnalyst):
		return http.StatusServiceUnavailable, errorResponse{
			Code:  "chat_unavailable",
			Error: "The analysis chat is not available right now.",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errorResponse{
			Code:  "timeout",
			Error: "The data provider took too long to answer. Please retry.",
		}
	default:
		return http.StatusInternalServerError, errorResponse{
			Code:  "internal",
			Error: "An unexpected error occurred. Please try again.",
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := mapError(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	} else {
		zerolog.Ctx(r.Context()).Debug().Err(err).Str("code", resp.Code).Msg("request rejected")
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	view, err := s.svc.Render(ctx, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", symbol.ErrInvalidSymbol, err))
		return
	}
	var form chatForm
	if err := s.decoder.Decode(&form, r.PostForm); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", symbol.ErrInvalidSymbol, err))
		return
	}
	if form.Question == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:  "empty_question",
			Error: "Please enter a question about the stock.",
		})
		return
	}
	req, err := chatRequest(form)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	reply, err := s.svc.Chat(ctx, req, form.Question)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func chatRequest(form chatForm) (dashboard.Request, error) {
	return dashboardQuery{
		Market: form.Market,
		Symbol: form.Symbol,
		Custom: form.Custom,
		Range:  form.Range,
	}.toRequest()
}

// chartHandler runs the shared fetch-and-render flow for one chart frame.
func (s *Server) chartHandler(w http.ResponseWriter, r *http.Request, render func(http.ResponseWriter, *model.PriceSeries, model.IndicatorSet) error) {
	req, err := s.decodeQuery(r)
	if err != nil {
		s.chartError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	series, set, err := s.svc.Series(ctx, req)
	if err != nil {
		s.chartError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render(w, series, set); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("chart render failed")
	}
}

// chartError renders a small HTML notice inside the chart frame.
func (s *Server) chartError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := mapError(err)
	zerolog.Ctx(r.Context()).Debug().Err(err).Str("code", resp.Code).Msg("chart request rejected")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<!DOCTYPE html><html><body><p>%s</p></body></html>", resp.Error)
}

func (s *Server) handlePriceChart(w http.ResponseWriter, r *http.Request) {
	s.chartHandler(w, r, func(w http.ResponseWriter, series *model.PriceSeries, set model.IndicatorSet) error {
		kline := chart.Candlestick(series, fmt.Sprintf("%s Price Chart", series.Symbol))
		chart.OverlayMovingAverages(kline, series, set)
		return kline.Render(w)
	})
}

func (s *Server) handleVolumeChart(w http.ResponseWriter, r *http.Request) {
	s.chartHandler(w, r, func(w http.ResponseWriter, series *model.PriceSeries, _ model.IndicatorSet) error {
		return chart.Volume(series, fmt.Sprintf("%s Trading Volume", series.Symbol)).Render(w)
	})
}

func (s *Server) handleRSIChart(w http.ResponseWriter, r *http.Request) {
	s.chartHandler(w, r, func(w http.ResponseWriter, series *model.PriceSeries, set model.IndicatorSet) error {
		return chart.RSILine(series, set.RSI14, "Relative Strength Index (RSI)").Render(w)
	})
}

// chartQuery rebuilds the canonical selection query for chart frame URLs.
func chartQuery(req dashboard.Request) string {
	v := url.Values{}
	v.Set("market", string(req.Market))
	v.Set("symbol", req.Symbol)
	v.Set("range", marketdata.NormalizeRange(req.Range))
	return v.Encode()
}
