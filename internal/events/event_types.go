package events

import (
	"time"

	"github.com/soportek/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketUpdated       EventType = "ticket_updated"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventCommentAdded        EventType = "comment_added"
	EventAttachmentAdded     EventType = "attachment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	DepartmentID string                `json:"department_id"`
	Priority     domain.TicketPriority `json:"priority"`
	Title        string                `json:"title"`
	RequesterID  string                `json:"requester_id"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketUpdatedPayload lists the fields touched by a patch.
type TicketUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	AuthorID    string `json:"author_id"`
	BodyPreview string `json:"body_preview"`
}

// AttachmentAddedPayload payload.
type AttachmentAddedPayload struct {
	AttachmentID string `json:"attachment_id"`
	FileName     string `json:"file_name"`
}
