package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/model"
)

const completionFixture = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1735689600,
  "model": "mixtral-8x7b-32768",
  "choices": [
    {
      "index": 0,
      "message": {"role": "assistant", "content": "The stock looks range-bound."},
      "finish_reason": "stop"
    }
  ]
}`

type capturedRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestChat(t *testing.T) {
	var captured capturedRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionFixture))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "", 0)
	reply, err := client.Chat(context.Background(), "Is AAPL overbought?")
	require.NoError(t, err)

	assert.Equal(t, "The stock looks range-bound.", reply)
	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, DefaultModel, captured.Model)
	assert.InDelta(t, DefaultTemperature, captured.Temperature, 1e-6)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "professional stock market analyst")
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "Is AAPL overbought?", captured.Messages[1].Content)
}

func TestChat_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-2","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient("k", srv.URL, "", 0).Chat(context.Background(), "q")
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestChat_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("bad-key", srv.URL, "", 0).Chat(context.Background(), "q")
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	view := &model.ViewModel{
		Symbol:      "TCS.NS",
		MarketLabel: "Indian Stocks",
		Currency:    "₹",
		Statistics: model.Statistics{
			LatestPrice: 4125.5,
			High52w:     4592.25,
			Low52w:      3311,
		},
		News: []model.NewsArticle{
			{Title: "TCS wins large deal"},
			{Title: "IT sector outlook improves"},
		},
	}

	prompt := BuildPrompt(view, "Should I hold?")

	assert.Contains(t, prompt, "Stock: TCS.NS\n")
	assert.Contains(t, prompt, "Market: Indian Stocks\n")
	assert.Contains(t, prompt, "Latest Price: ₹4,125.50\n")
	assert.Contains(t, prompt, "52-Week Range: ₹3,311.00 - ₹4,592.25\n")
	assert.Contains(t, prompt, "News: 2 articles found\n")
	assert.Contains(t, prompt, "TCS wins large deal\n")
	assert.Contains(t, prompt, "User Question: Should I hold?\n")
	assert.Contains(t, prompt, "detailed and informative answer")
}

func TestBuildPrompt_NoNews(t *testing.T) {
	view := &model.ViewModel{
		Symbol:      "AAPL",
		MarketLabel: "US Stocks",
		Currency:    "$",
		Statistics:  model.Statistics{LatestPrice: 182.5, High52w: 199.6, Low52w: 164.1},
	}

	prompt := BuildPrompt(view, "What changed?")
	assert.Contains(t, prompt, "News: 0 articles found\n")
	assert.Contains(t, prompt, "Latest Price: $182.50\n")
}
