package advisor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/beauty-advisor/internal/conversation"
	"github.com/ziadkadry99/beauty-advisor/internal/format"
	"github.com/ziadkadry99/beauty-advisor/internal/llm"
	"github.com/ziadkadry99/beauty-advisor/internal/transcript"
)

// Messages shown in place of a model reply.
const (
	ChatFallback     = "Sorry, I couldn't process your request. Please try again later."
	RoutineFallback  = "Sorry, I couldn't generate your routine. Please try again later."
	NoProductsNotice = "Please select at least one product to generate your routine!"
)

// ErrInvalidInput is returned by Chat for blank input. Callers ignore it.
var ErrInvalidInput = conversation.ErrInvalidInput

// ReplyType tells the presentation layer how to show a reply.
type ReplyType string

const (
	ReplyResponse ReplyType = "response"
	ReplyFallback ReplyType = "fallback"
	ReplyNotice   ReplyType = "notice"
)

// Reply is the outcome of a chat or routine request.
type Reply struct {
	Type ReplyType `json:"type"`
	// Content is the raw model output or the fixed message.
	Content string `json:"content"`
	// HTML is Content rendered for display.
	HTML     string `json:"html"`
	Fallback bool   `json:"fallback"`
	// ErrorKind classifies the remote failure behind a fallback.
	ErrorKind llm.Kind `json:"error_kind,omitempty"`
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	Provider llm.Provider
	// Model overrides the provider's default model. Optional.
	Model   string
	Chat    llm.GenerationOptions
	Routine llm.GenerationOptions
	// Archive records every appended turn. Optional.
	Archive *transcript.Store
	Logger  *zap.Logger
}

// DefaultRoutineOptions are the generation options for routine requests.
var DefaultRoutineOptions = llm.GenerationOptions{MaxTokens: 1000, Temperature: llm.Float64(0.7)}

// Service runs chat and routine requests for sessions.
type Service struct {
	provider llm.Provider
	model    string
	chat     llm.GenerationOptions
	routine  llm.GenerationOptions
	archive  *transcript.Store
	logger   *zap.Logger
}

// NewService creates a new advisor service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	routine := cfg.Routine
	if routine == (llm.GenerationOptions{}) {
		routine = DefaultRoutineOptions
	}
	return &Service{
		provider: cfg.Provider,
		model:    cfg.Model,
		chat:     cfg.Chat,
		routine:  routine,
		archive:  cfg.Archive,
		logger:   logger,
	}
}

// Chat appends text to the session's conversation and asks the model for
// a reply. A remote failure yields a fallback Reply, not an error; the
// user turn stays in the conversation and no assistant turn is added.
func (s *Service) Chat(ctx context.Context, sess *Session, text string) (Reply, error) {
	messages, err := sess.appendUser(text)
	if err != nil {
		return Reply{}, err
	}
	s.record(ctx, sess.ID, llm.RoleUser, transcript.KindChat, text)

	content, err := s.complete(ctx, sess.ID, messages, s.chat)
	if err != nil {
		return fallback(ChatFallback, err), nil
	}

	sess.appendAssistant(content)
	s.record(ctx, sess.ID, llm.RoleAssistant, transcript.KindChat, content)
	return Reply{Type: ReplyResponse, Content: content, HTML: format.ChatHTML(content)}, nil
}

// GenerateRoutine asks the model for a routine built from the session's
// selection. An empty selection yields a notice and leaves the
// conversation untouched.
func (s *Service) GenerateRoutine(ctx context.Context, sess *Session) (Reply, error) {
	messages, prompt, err := sess.appendRoutineRequest()
	if errors.Is(err, conversation.ErrNoProducts) {
		return Reply{Type: ReplyNotice, Content: NoProductsNotice, HTML: format.Format(NoProductsNotice)}, nil
	}
	if err != nil {
		return Reply{}, err
	}
	s.record(ctx, sess.ID, llm.RoleUser, transcript.KindRoutine, prompt)

	content, err := s.complete(ctx, sess.ID, messages, s.routine)
	if err != nil {
		return fallback(RoutineFallback, err), nil
	}

	sess.appendAssistant(content)
	s.record(ctx, sess.ID, llm.RoleAssistant, transcript.KindRoutine, content)
	return Reply{Type: ReplyResponse, Content: content, HTML: format.RoutineHTML(content)}, nil
}

func (s *Service) complete(ctx context.Context, sessionID string, messages []llm.Message, opts llm.GenerationOptions) (string, error) {
	start := time.Now()
	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:             s.model,
		Messages:          messages,
		GenerationOptions: opts,
	})
	if err != nil {
		s.logger.Warn("completion failed",
			zap.String("session", sessionID),
			zap.String("provider", s.provider.Name()),
			zap.String("kind", string(llm.Classify(err))),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}
	s.logger.Info("completion",
		zap.String("session", sessionID),
		zap.String("provider", s.provider.Name()),
		zap.String("model", resp.Model),
		zap.Int("turns", len(messages)),
		zap.Int("input_tokens", resp.InputTokens),
		zap.Int("output_tokens", resp.OutputTokens),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp.Content, nil
}

// record archives a turn. Failures are logged only.
func (s *Service) record(ctx context.Context, sessionID string, role llm.Role, kind, content string) {
	if s.archive == nil {
		return
	}
	_, err := s.archive.AddMessage(context.WithoutCancel(ctx), transcript.Message{
		SessionID: sessionID,
		Role:      string(role),
		Kind:      kind,
		Content:   content,
	})
	if err != nil {
		s.logger.Warn("archiving turn failed", zap.String("session", sessionID), zap.Error(err))
	}
}

func fallback(message string, err error) Reply {
	return Reply{
		Type:      ReplyFallback,
		Content:   message,
		HTML:      format.Format(message),
		Fallback:  true,
		ErrorKind: llm.Classify(err),
	}
}
