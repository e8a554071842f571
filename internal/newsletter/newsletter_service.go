// Package newsletter manages newsletter subscriptions.
package newsletter

import (
	"context"
	"errors"
	"labourdesk/backend/internal/apperr"
	"labourdesk/backend/internal/config"
	"labourdesk/backend/internal/models"
	"labourdesk/backend/internal/storage"
	"labourdesk/backend/internal/validation"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Service struct {
	Storage storage.Storage
	Logger  *zap.Logger
	Now     func() time.Time
}

func NewService(s storage.Storage, logger *zap.Logger) *Service {
	return &Service{Storage: s, Logger: logger, Now: time.Now}
}

type SubscribeInput struct {
	Email  string   `json:"email"`
	Topics []string `json:"topics"`
}

type SubscribeResult struct {
	AlreadySubscribed bool
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validation.IsValidEmail(email) {
		return "", apperr.FieldValidation("email", "invalid email address")
	}
	return email, nil
}

func normalizeTopics(topics []string) (pq.StringArray, error) {
	if len(topics) == 0 {
		return pq.StringArray{config.NewsletterTopics[0]}, nil
	}
	seen := make(map[string]bool, len(topics))
	out := make(pq.StringArray, 0, len(topics))
	for _, t := range topics {
		t = strings.ToLower(strings.TrimSpace(t))
		if !validation.OneOf(t, config.NewsletterTopics) {
			return nil, apperr.FieldValidation("topics", "unknown topic "+t)
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}

// Subscribe signs an address up. Subscribing an address that is already on
// the list is not an error: the topics are replaced and an unsubscribed
// address is reactivated.
func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (*SubscribeResult, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	topics, err := normalizeTopics(in.Topics)
	if err != nil {
		return nil, err
	}

	existing, err := s.Storage.GetSubscriberByEmail(ctx, email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		sub := &models.Subscriber{Email: email, Topics: topics, Active: true, SubscribedAt: s.Now()}
		if err := s.Storage.SaveSubscriber(ctx, sub); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				// Lost a race with a concurrent signup for the same address.
				return &SubscribeResult{AlreadySubscribed: true}, nil
			}
			s.Logger.Error("failed to save subscriber", zap.Error(err))
			return nil, &apperr.StorageError{Op: "save subscriber", Err: err}
		}
		s.Logger.Info("newsletter subscription", zap.Uint("subscriber_id", sub.ID))
		return &SubscribeResult{}, nil
	case err != nil:
		s.Logger.Error("failed to load subscriber", zap.Error(err))
		return nil, &apperr.StorageError{Op: "get subscriber", Err: err}
	}

	wasActive := existing.Active
	existing.Topics = topics
	if !existing.Active {
		existing.Active = true
		existing.SubscribedAt = s.Now()
		existing.UnsubscribedAt = nil
	}
	if err := s.Storage.SaveSubscriber(ctx, existing); err != nil {
		s.Logger.Error("failed to save subscriber", zap.Error(err))
		return nil, &apperr.StorageError{Op: "save subscriber", Err: err}
	}
	return &SubscribeResult{AlreadySubscribed: wasActive}, nil
}

// Unsubscribe deactivates an address. Unknown and already inactive addresses
// succeed silently so the endpoint does not reveal who is subscribed.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	sub, err := s.Storage.GetSubscriberByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		s.Logger.Debug("unsubscribe for unknown address")
		return nil
	}
	if err != nil {
		s.Logger.Error("failed to load subscriber", zap.Error(err))
		return &apperr.StorageError{Op: "get subscriber", Err: err}
	}
	if !sub.Active {
		return nil
	}

	now := s.Now()
	sub.Active = false
	sub.UnsubscribedAt = &now
	if err := s.Storage.SaveSubscriber(ctx, sub); err != nil {
		s.Logger.Error("failed to save subscriber", zap.Error(err))
		return &apperr.StorageError{Op: "save subscriber", Err: err}
	}
	return nil
}
