// Package contact stores messages sent through the website's contact form and
// alerts staff about them.
package contact

import (
	"context"
	"labourdesk/backend/internal/apperr"
	"labourdesk/backend/internal/models"
	"labourdesk/backend/internal/notify"
	"labourdesk/backend/internal/storage"
	"labourdesk/backend/internal/validation"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Service struct {
	Storage  storage.Storage
	Notifier notify.Dispatcher
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewService(s storage.Storage, notifier notify.Dispatcher, logger *zap.Logger) *Service {
	return &Service{Storage: s, Notifier: notifier, Logger: logger, Now: time.Now}
}

type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit validates and stores a contact message and returns its id.
func (s *Service) Submit(ctx context.Context, in Input) (string, error) {
	if !validation.Present(in.Name) || !validation.Present(in.Email) || !validation.Present(in.Message) {
		return "", apperr.Validation("missing required fields")
	}
	email := strings.TrimSpace(in.Email)
	if !validation.IsValidEmail(email) {
		return "", apperr.FieldValidation("email", "invalid email address")
	}

	msg := &models.ContactMessage{
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Phone:     validation.Optional(in.Phone),
		Subject:   validation.Optional(in.Subject),
		Message:   in.Message,
		Status:    "new",
		CreatedAt: s.Now(),
	}
	if err := s.Storage.CreateContactMessage(ctx, msg); err != nil {
		s.Logger.Error("failed to save contact message", zap.Error(err))
		return "", &apperr.StorageError{Op: "create contact message", Err: err}
	}

	subject := "-"
	if msg.Subject != nil {
		subject = *msg.Subject
	}
	s.Logger.Info("contact message received", zap.String("id", msg.ID))
	notify.Async(ctx, s.Notifier, s.Logger, notify.Job{
		Channel:  notify.ChannelStaff,
		Template: notify.TemplateNewContact,
		Data: map[string]string{
			"name":    msg.Name,
			"email":   msg.Email,
			"subject": subject,
		},
	})

	return msg.ID, nil
}
