package service

import (
	"context"
	"strings"

	"github.com/soportek/helpdesk-service/internal/auth"
	"github.com/soportek/helpdesk-service/internal/domain"
	"github.com/soportek/helpdesk-service/internal/persistence"
	"github.com/soportek/helpdesk-service/internal/repository"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// MessageService manages the private user-to-administrator channel.
type MessageService struct {
	messages repository.MessageRepository
}

// NewMessageService builds the service.
func NewMessageService(messages repository.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// Create records a message from the principal.
func (s *MessageService) Create(ctx context.Context, p auth.Principal, body string) (*domain.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, util.NewValidationError("body required", nil)
	}
	msg := &domain.Message{Body: body, SenderID: p.ID}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, persistence.MapError(err, "message")
	}
	return msg, nil
}

// Get fetches a message, checking existence before permission.
func (s *MessageService) Get(ctx context.Context, p auth.Principal, id string) (*domain.Message, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, persistence.MapError(err, "message")
	}
	if !auth.CanAccessMessage(p, msg) {
		return nil, util.NewForbidden("no permission to view this message")
	}
	return msg, nil
}

// List returns the principal's messages, or every message for administrators.
func (s *MessageService) List(ctx context.Context, p auth.Principal, page repository.Page) ([]domain.Message, error) {
	msgs, err := s.messages.List(ctx, auth.ScopeMessages(p), page)
	if err != nil {
		return nil, persistence.MapError(err, "message")
	}
	return msgs, nil
}

// Update replaces the body of an owned message.
func (s *MessageService) Update(ctx context.Context, p auth.Principal, id, body string) (*domain.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, util.NewValidationError("body required", nil)
	}
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, persistence.MapError(err, "message")
	}
	if !auth.CanAccessMessage(p, msg) {
		return nil, util.NewForbidden("no permission to update this message")
	}

	msg.Body = body
	if err := s.messages.Update(ctx, msg); err != nil {
		return nil, persistence.MapError(err, "message")
	}
	return msg, nil
}

// Delete removes an owned message.
func (s *MessageService) Delete(ctx context.Context, p auth.Principal, id string) error {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return persistence.MapError(err, "message")
	}
	if !auth.CanAccessMessage(p, msg) {
		return util.NewForbidden("no permission to delete this message")
	}
	if err := s.messages.Delete(ctx, msg.ID); err != nil {
		return persistence.MapError(err, "message")
	}
	return nil
}
