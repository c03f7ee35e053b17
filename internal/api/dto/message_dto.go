package dto

import (
	"time"

	"github.com/soportek/helpdesk-service/internal/domain"
)

// MessageRequest payload for create and update.
type MessageRequest struct {
	Body string `json:"body"`
}

// MessageResponse payload.
type MessageResponse struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	SenderID  string    `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMessageResponse maps a domain message.
func NewMessageResponse(msg *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		Body:      msg.Body,
		SenderID:  msg.SenderID,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}
