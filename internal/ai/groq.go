// Package ai answers stock questions through the Groq chat-completion API,
// which speaks the OpenAI wire protocol.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"StockScope/internal/model"
	"StockScope/internal/stats"
)

// Groq connection defaults.
const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "mixtral-8x7b-32768"
	DefaultTemperature = 0.3
)

const systemPrompt = "You are a professional stock market analyst with expertise in both Indian and US markets."

// ErrEmptyReply reports a completion with no choices.
var ErrEmptyReply = errors.New("ai: empty completion")

// Client wraps the Groq chat API.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      zerolog.Logger
}

// NewClient creates a Groq client. Empty baseURL and model select the
// defaults; temperature <= 0 selects the default.
func NewClient(apiKey, baseURL, chatModel string, temperature float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if chatModel == "" {
		chatModel = DefaultModel
	}
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       chatModel,
		temperature: float32(temperature),
		logger:      log.With().Str("component", "groq_client").Logger(),
	}
}

// Chat sends the prompt under the analyst system role and returns the
// model's reply.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	c.logger.Debug().Str("model", c.model).Msg("chat completion done")
	return resp.Choices[0].Message.Content, nil
}

// BuildPrompt embeds the rendered dashboard context and the user question
// into the analyst prompt.
func BuildPrompt(view *model.ViewModel, question string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock: %s\n", view.Symbol)
	fmt.Fprintf(&b, "Market: %s\n", view.MarketLabel)
	fmt.Fprintf(&b, "Latest Price: %s\n", stats.FormatMoney(view.Statistics.LatestPrice, view.Currency))
	fmt.Fprintf(&b, "52-Week Range: %s - %s\n\n",
		stats.FormatMoney(view.Statistics.Low52w, view.Currency),
		stats.FormatMoney(view.Statistics.High52w, view.Currency))

	fmt.Fprintf(&b, "News: %d articles found\n", len(view.News))
	for _, article := range view.News {
		b.WriteString(article.Title)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nUser Question: %s\n\n", question)
	b.WriteString("Please provide a detailed and informative answer based on the available data.\n")
	return b.String()
}
