package dto

import (
	"time"

	"github.com/soportek/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload. Status and requester are ignored even if a
// client sends them; creation always starts open and owned by the caller.
type CreateTicketRequest struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	DepartmentID string                 `json:"department_id"`
	CategoryID   *string                `json:"category_id"`
	Priority     *domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest is the allow-listed partial patch.
type UpdateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Priority    *domain.TicketPriority `json:"priority"`
	Status      *domain.TicketStatus   `json:"status"`
	CategoryID  *string                `json:"category_id"`
	AssigneeID  *string                `json:"assigned_to"`
}

// TicketResponse payload.
type TicketResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	DepartmentID string                `json:"department_id"`
	CategoryID   *string               `json:"category_id,omitempty"`
	Priority     domain.TicketPriority `json:"priority"`
	Status       domain.TicketStatus   `json:"status"`
	RequesterID  string                `json:"requested_by"`
	AssigneeID   *string               `json:"assigned_to,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:           ticket.ID,
		Title:        ticket.Title,
		Description:  ticket.Description,
		DepartmentID: ticket.DepartmentID,
		CategoryID:   ticket.CategoryID,
		Priority:     ticket.Priority,
		Status:       ticket.Status,
		RequesterID:  ticket.RequesterID,
		AssigneeID:   ticket.AssigneeID,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse payload.
type CommentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	TicketID  string    `json:"ticket_id"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		TicketID:  comment.TicketID,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt,
	}
}
