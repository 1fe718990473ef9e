// Package news fetches headlines from the DuckDuckGo news API. A failed
// search is not fatal to a render cycle; the dashboard shows an empty news
// panel instead.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockScope/internal/httpx"
	"StockScope/internal/model"
)

// DefaultMaxResults caps how many articles one search returns.
const DefaultMaxResults = 5

// ErrNoToken reports that the search token could not be extracted from the
// DuckDuckGo homepage, usually a markup change or a block.
var ErrNoToken = errors.New("news: no vqd token in response")

// vqd tokens look like "3-12345678901234567890".
var vqdPattern = regexp.MustCompile(`vqd=['"]?([\d-]+)`)

// Client searches DuckDuckGo news. Each search is two requests: one to the
// homepage for a vqd token, one to the news endpoint with that token.
type Client struct {
	client     *httpx.Client
	baseURL    string
	maxResults int
	dayFilter  bool
	logger     zerolog.Logger
}

// NewClient creates a news client. An empty baseURL selects the public
// endpoint; maxResults <= 0 selects the default. dayFilter restricts
// results to articles from the last day.
func NewClient(baseURL string, maxResults int, dayFilter bool, client *httpx.Client) *Client {
	if baseURL == "" {
		baseURL = "https://duckduckgo.com"
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if client == nil {
		client = httpx.NewClient(httpx.Options{})
	}
	return &Client{
		client:     client,
		baseURL:    baseURL,
		maxResults: maxResults,
		dayFilter:  dayFilter,
		logger:     log.With().Str("component", "news_client").Logger(),
	}
}

// newsResponse mirrors the news.js payload.
type newsResponse struct {
	Results []struct {
		Date    int64  `json:"date"`
		Excerpt string `json:"excerpt"`
		Image   string `json:"image"`
		Source  string `json:"source"`
		Title   string `json:"title"`
		URL     string `json:"url"`
	} `json:"results"`
}

// Search returns up to maxResults articles for the query, most recent
// first as the provider ranks them.
func (c *Client) Search(ctx context.Context, query string) ([]model.NewsArticle, error) {
	vqd, err := c.fetchToken(ctx, query)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("l", "wt-wt")
	params.Set("o", "json")
	params.Set("noamp", "1")
	params.Set("q", query)
	params.Set("vqd", vqd)
	params.Set("p", "-1") // moderate safesearch
	if c.dayFilter {
		params.Set("df", "d")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/news.js?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", c.baseURL+"/")

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("news search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news search: status %d", resp.StatusCode)
	}

	var payload newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("news decode: %w", err)
	}

	articles := make([]model.NewsArticle, 0, c.maxResults)
	for _, r := range payload.Results {
		if len(articles) == c.maxResults {
			break
		}
		articles = append(articles, model.NewsArticle{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Excerpt,
			Source:  r.Source,
			Image:   r.Image,
			Date:    time.Unix(r.Date, 0).UTC(),
		})
	}
	c.logger.Debug().Str("query", query).Int("articles", len(articles)).Msg("news search done")
	return articles, nil
}

// fetchToken requests the homepage with the query and extracts the vqd
// token the news endpoint requires.
func (c *Client) fetchToken(ctx context.Context, query string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?q="+url.QueryEscape(query), nil)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read token page: %w", err)
	}
	m := vqdPattern.FindSubmatch(body)
	if m == nil {
		return "", ErrNoToken
	}
	return string(m[1]), nil
}
