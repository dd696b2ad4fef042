package completion

import (
	"brandichat/app/config"
	"context"
	"errors"
	"net/http"
	"time"

	"brandichat/app/service/history"

	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/sashabaranov/go-openai"
)

const (
	requestTimeout   = 30 * time.Second
	presencePenalty  = 0.1
	frequencyPenalty = 0.1
)

// Closed failure taxonomy for upstream calls. The orchestrator matches on
// these to pick a canned response, so every failure must map to exactly one.
var (
	ErrQuotaExceeded = errors.New("completion: insufficient quota")
	ErrRateLimited   = errors.New("completion: rate limit exceeded")
	ErrNotConfigured = errors.New("completion: client not configured")
)

type Result struct {
	Content    string
	TokensUsed int
}

// Client wraps the OpenAI chat-completions API. When the token is missing or
// malformed the client stays in fallback mode and Complete always fails with
// ErrNotConfigured.
type Client struct {
	cfg *config.Config
	api *openai.Client
}

func New(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	c := &Client{cfg: cfg}

	if !cfg.UpstreamConfigured() {
		return c, nil
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAI.Token)
	clientConfig.BaseURL = cfg.OpenAI.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: requestTimeout,
	}

	c.api = openai.NewClientWithConfig(clientConfig)

	return c, nil
}

// Available reports whether a completion client was initialized at all.
func (c *Client) Available() bool {
	return c.api != nil
}

// Complete performs a single chat-completion attempt. Retrying is left to the
// caller's policy; this layer never retries. The conversation id is passed as
// the OpenAI user field for abuse monitoring.
func (c *Client) Complete(ctx context.Context, conversationID string, messages []history.Message) (*Result, error) {
	if c.api == nil {
		return nil, ErrNotConfigured
	}

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:            c.cfg.OpenAI.Model,
		Messages:         chatMessages,
		MaxTokens:        c.cfg.OpenAI.MaxTokens,
		Temperature:      c.cfg.OpenAI.Temperature,
		PresencePenalty:  presencePenalty,
		FrequencyPenalty: frequencyPenalty,
		User:             conversationID,
	})
	if err != nil {
		return nil, classify(err)
	}

	if len(resp.Choices) == 0 {
		return nil, oops.Errorf("no chat completion found")
	}

	return &Result{
		Content:    resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

func classify(err error) error {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return oops.Errorf("chat completion failed: %w", err)
	}

	code, _ := apiErr.Code.(string)

	switch code {
	case "insufficient_quota":
		return ErrQuotaExceeded
	case "rate_limit_exceeded":
		return ErrRateLimited
	}

	if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}

	return oops.Errorf("chat completion failed: %w", err)
}
