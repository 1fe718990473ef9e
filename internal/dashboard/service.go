// Package dashboard runs the per-interaction cycle behind the web UI: one
// resolve, fetch, compute, render pass per request, with no state retained
// between cycles beyond the fetch cache.
package dashboard

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockScope/internal/ai"
	"StockScope/internal/indicator"
	"StockScope/internal/marketdata"
	"StockScope/internal/model"
	"StockScope/internal/stats"
	"StockScope/internal/symbol"
)

// NewsSearcher is the news collaborator seam.
type NewsSearcher interface {
	Search(ctx context.Context, query string) ([]model.NewsArticle, error)
}

// Analyst is the AI chat collaborator seam.
type Analyst interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Request identifies one interaction: a market, a raw symbol and a history
// range.
type Request struct {
	Market symbol.Market
	Symbol string
	Range  string
}

// Service wires the collaborators for the render cycle. The news searcher
// and analyst may be nil; rendering then skips the news panel and Chat
// reports the collaborator as unconfigured.
type Service struct {
	fetcher marketdata.Fetcher
	news    NewsSearcher
	analyst Analyst
	logger  zerolog.Logger
}

// NewService creates the dashboard service.
func NewService(fetcher marketdata.Fetcher, news NewsSearcher, analyst Analyst) *Service {
	return &Service{
		fetcher: fetcher,
		news:    news,
		analyst: analyst,
		logger:  log.With().Str("component", "dashboard").Logger(),
	}
}

// Render runs one full cycle and returns the view for the UI. Resolver,
// fetch and indicator errors pass through unwrapped so the boundary can
// map them; a failed news search only empties the news panel.
func (s *Service) Render(ctx context.Context, req Request) (*model.ViewModel, error) {
	series, set, err := s.Series(ctx, req)
	if err != nil {
		return nil, err
	}

	st, err := stats.Build(series, set)
	if err != nil {
		return nil, err
	}

	currency := req.Market.CurrencySymbol()
	view := &model.ViewModel{
		Market:      string(req.Market),
		MarketLabel: req.Market.DisplayName(),
		Symbol:      series.Symbol,
		CompanyName: series.CompanyName,
		Currency:    currency,
		Range:       marketdata.NormalizeRange(req.Range),
		Statistics:  st,
		StatLines:   stats.Lines(st, currency),
		Indicators:  model.NewIndicatorTable(set),
		News:        []model.NewsArticle{},
		BarCount:    series.Len(),
		FetchedAt:   series.FetchedAt,
	}

	if s.news != nil {
		articles, err := s.news.Search(ctx, series.CompanyName)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", series.Symbol).Msg("news search failed, showing empty panel")
		} else {
			view.News = articles
		}
	}

	s.logger.Debug().
		Str("symbol", series.Symbol).
		Str("market", string(req.Market)).
		Int("bars", view.BarCount).
		Msg("render cycle done")
	return view, nil
}

// Series resolves the request and returns the fetched bars with the
// computed indicator set. Chart handlers use it directly; within the
// cache TTL it costs no extra fetch.
func (s *Service) Series(ctx context.Context, req Request) (*model.PriceSeries, model.IndicatorSet, error) {
	ticker, err := symbol.Resolve(req.Market, req.Symbol)
	if err != nil {
		return nil, model.IndicatorSet{}, err
	}

	series, err := s.fetcher.FetchSeries(ctx, ticker, req.Range)
	if err != nil {
		return nil, model.IndicatorSet{}, err
	}

	set, err := indicator.Compute(series)
	if err != nil {
		return nil, model.IndicatorSet{}, err
	}
	return series, set, nil
}

// Chat renders the request (a cache hit in the usual page-then-ask flow)
// and puts the question to the analyst with the rendered context.
func (s *Service) Chat(ctx context.Context, req Request, question string) (string, error) {
	if s.analyst == nil {
		return "", ErrNoAnalyst
	}
	view, err := s.Render(ctx, req)
	if err != nil {
		return "", err
	}
	return s.analyst.Chat(ctx, ai.BuildPrompt(view, question))
}
