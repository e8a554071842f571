// Package chat answers visitor questions in the website's help widget by
// relaying the conversation to a hosted language model.
package chat

import (
	"context"
	"labourdesk/backend/internal/apperr"
	"labourdesk/backend/internal/config"
	"labourdesk/backend/internal/localization"
	"labourdesk/backend/internal/models"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("chat-service")

type Service struct {
	Generator    Generator
	Logger       *zap.Logger
	systemPrompt string
}

// NewService builds the widget service. gen may be nil, in which case every
// Reply returns apperr.ErrUnavailable.
func NewService(gen Generator, loc *localization.Localizer, hotline string, logger *zap.Logger) *Service {
	return &Service{
		Generator: gen,
		Logger:    logger,
		systemPrompt: loc.Render(localization.DefaultLanguage, "chat.system_prompt", map[string]string{
			"hotline": hotline,
		}),
	}
}

// Enabled reports whether a model is configured.
func (s *Service) Enabled() bool {
	return s.Generator != nil
}

// Reply returns the assistant's answer to message. Only the most recent
// history turns are forwarded; turns with an unknown role or no content are
// dropped.
func (s *Service) Reply(ctx context.Context, req models.ChatRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "chat.Reply")
	defer span.End()

	if !s.Enabled() {
		return "", apperr.ErrUnavailable
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return "", apperr.FieldValidation("message", "message is required")
	}
	if utf8.RuneCountInString(message) > config.MaxChatMessageRunes {
		return "", apperr.FieldValidation("message", "message is too long")
	}

	turns := append(recentHistory(req.History), models.ChatTurn{Role: models.ChatRoleUser, Content: message})

	ctx, cancel := context.WithTimeout(ctx, config.ChatRequestTimeout)
	defer cancel()

	reply, err := s.Generator.Generate(ctx, s.systemPrompt, turns)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate")
		s.Logger.Error("chat model request failed", zap.Error(err))
		return "", &apperr.UpstreamError{Service: "gemini", Err: err}
	}
	return strings.TrimSpace(reply), nil
}

func recentHistory(history []models.ChatTurn) []models.ChatTurn {
	kept := make([]models.ChatTurn, 0, len(history))
	for _, t := range history {
		if t.Role != models.ChatRoleUser && t.Role != models.ChatRoleAssistant {
			continue
		}
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) > config.MaxChatHistoryTurns {
		kept = kept[len(kept)-config.MaxChatHistoryTurns:]
	}
	return kept
}
