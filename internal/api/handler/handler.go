// Package handler exposes the intake services over HTTP with gin.
package handler

import (
	"context"
	"labourdesk/backend/internal/auth"
	"labourdesk/backend/internal/chat"
	"labourdesk/backend/internal/complaint"
	"labourdesk/backend/internal/contact"
	"labourdesk/backend/internal/newsletter"

	"go.uber.org/zap"
)

// Pinger is satisfied by storage.Storage.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the services behind the HTTP routes.
type Handler struct {
	Complaints  *complaint.Service
	Contact     *contact.Service
	Newsletter  *newsletter.Service
	Chat        *chat.Service
	Auth        *auth.Authenticator
	Health      Pinger
	Logger      *zap.Logger
	CORSOrigins []string
}

func NewHandler(
	complaints *complaint.Service,
	contacts *contact.Service,
	subscribers *newsletter.Service,
	chatSvc *chat.Service,
	authn *auth.Authenticator,
	health Pinger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Complaints: complaints,
		Contact:    contacts,
		Newsletter: subscribers,
		Chat:       chatSvc,
		Auth:       authn,
		Health:     health,
		Logger:     logger,
	}
}
