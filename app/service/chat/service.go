package chat

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"brandichat/app/client/completion"
	"brandichat/app/config"
	"brandichat/app/service/history"
	"brandichat/app/service/respcache"

	"github.com/samber/do"
)

const (
	// Per-identifier ceiling enforced inside the orchestrator, independent of
	// the outer HTTP rate limiter.
	userHourlyLimit = 20

	counterTTL       = time.Hour
	commonAnswerTTL  = 30 * time.Minute
	counterKeyPrefix = "requests_"
)

// Canned replies for upstream failures. Every failure steers toward a booked
// call.
const (
	quotaExceededReply = "I'm temporarily unable to access my AI capabilities due to usage limits, but I'd love to help! " +
		"Let's schedule a call with our team to discuss your needs directly."
	rateLimitedReply = "I'm getting a lot of requests right now. " +
		"Let's schedule a call with our team so we can give you the attention you deserve!"
	userRateLimitedReply = "You've been very active! " +
		"Let's schedule a call with our team to continue our conversation and dive deeper into your needs."
	generalErrorReply = "I'm having a technical hiccup, but I'd love to help! " +
		"Let's schedule a call with our team to discuss your needs directly."
)

// Completer is the upstream completion collaborator.
type Completer interface {
	Available() bool
	Complete(ctx context.Context, conversationID string, messages []history.Message) (*completion.Result, error)
}

type Service struct {
	cfg        *config.Config
	upstream   Completer
	historySvc *history.Service
	cacheSvc   *respcache.Service
}

func New(di *do.Injector) (*Service, error) {
	return newService(
		do.MustInvoke[*config.Config](di),
		do.MustInvoke[*completion.Client](di),
		do.MustInvoke[*history.Service](di),
		do.MustInvoke[*respcache.Service](di),
	), nil
}

func newService(cfg *config.Config, upstream Completer, historySvc *history.Service, cacheSvc *respcache.Service) *Service {
	return &Service{
		cfg:        cfg,
		upstream:   upstream,
		historySvc: historySvc,
		cacheSvc:   cacheSvc,
	}
}

// ProcessMessage runs one inbound message through the whole pipeline:
// rate check, fallback, cache lookup, prompt assembly, upstream call, history
// update, analysis, cache write. Failures never escape as errors; every
// outcome is a well-formed Response.
func (s *Service) ProcessMessage(ctx context.Context, message, conversationID, clientIP string) *Response {
	if !s.allowRequest(clientIP) {
		slog.Warn("Internal rate limit exceeded", "ip", clientIP)
		return errorResponse(conversationID, userRateLimitedReply)
	}

	if !s.upstream.Available() {
		slog.Debug("Upstream not configured, using fallback response")
		return Classify(message, conversationID)
	}

	cacheKey := CacheKey(message)
	if cached, ok := s.cacheSvc.Get(cacheKey); ok {
		if resp, ok := cached.(Response); ok {
			resp.ConversationID = conversationID
			resp.Cached = true
			return &resp
		}
	}

	prior := s.historySvc.Get(conversationID)
	prompt := buildPrompt(prior, message)

	result, err := s.upstream.Complete(ctx, conversationID, prompt)
	if err != nil {
		slog.Error("Chat completion failed", "error", err)
		return s.failureResponse(conversationID, err)
	}

	s.historySvc.Append(conversationID,
		history.Message{Role: history.RoleUser, Content: message},
		history.Message{Role: history.RoleAssistant, Content: result.Content},
	)

	responseType, action := Analyze(result.Content, message)

	response := &Response{
		Message:         result.Content,
		Type:            responseType,
		SuggestedAction: action,
		ConversationID:  conversationID,
		Timestamp:       time.Now(),
		TokensUsed:      result.TokensUsed,
	}

	if IsCommonQuestion(message) {
		s.cacheSvc.Set(cacheKey, *response, commonAnswerTTL)
	}

	return response
}

// ClearConversation drops stored history for one conversation.
func (s *Service) ClearConversation(conversationID string) {
	s.historySvc.Clear(conversationID)
}

// UpstreamConfigured is exposed for the health endpoint.
func (s *Service) UpstreamConfigured() bool {
	return s.upstream.Available()
}

// allowRequest enforces the best-effort 20-per-hour counter. A refused
// request does not consume a slot, so the window is not extended by retries.
func (s *Service) allowRequest(clientIP string) bool {
	identifier := clientIP
	if identifier == "" {
		identifier = "unknown"
	}

	key := counterKeyPrefix + identifier

	count := 0
	if v, ok := s.cacheSvc.Get(key); ok {
		count, _ = v.(int)
	}

	if count >= userHourlyLimit {
		return false
	}

	s.cacheSvc.Set(key, count+1, counterTTL)

	return true
}

func (s *Service) failureResponse(conversationID string, err error) *Response {
	switch {
	case errors.Is(err, completion.ErrQuotaExceeded):
		return errorResponse(conversationID, quotaExceededReply)
	case errors.Is(err, completion.ErrRateLimited):
		return errorResponse(conversationID, rateLimitedReply)
	case errors.Is(err, completion.ErrNotConfigured):
		// Lost the client after the availability check; degrade like any
		// other failure.
		return errorResponse(conversationID, generalErrorReply)
	default:
		return errorResponse(conversationID, generalErrorReply)
	}
}

func errorResponse(conversationID, message string) *Response {
	return &Response{
		Message:         message,
		Type:            TypeError,
		SuggestedAction: ActionBookCall,
		ConversationID:  conversationID,
		Timestamp:       time.Now(),
	}
}
