package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/soportek/helpdesk-service/internal/auth"
	"github.com/soportek/helpdesk-service/internal/domain"
	"github.com/soportek/helpdesk-service/internal/events"
	"github.com/soportek/helpdesk-service/internal/persistence"
	"github.com/soportek/helpdesk-service/internal/repository"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// FileStore is the slice of attachment storage the ticket service needs for
// cascade cleanup.
type FileStore interface {
	RemoveTicketDir(ticketID string) error
}

// TicketService coordinates the ticket lifecycle.
type TicketService struct {
	tickets     repository.TicketRepository
	comments    repository.CommentRepository
	departments repository.DepartmentRepository
	categories  repository.CategoryRepository
	users       repository.UserRepository
	files       FileStore
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	CommentRepo    repository.CommentRepository
	DepartmentRepo repository.DepartmentRepository
	CategoryRepo   repository.CategoryRepository
	UserRepo       repository.UserRepository
	Files          FileStore
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewTicketService builds the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:     deps.TicketRepo,
		comments:    deps.CommentRepo,
		departments: deps.DepartmentRepo,
		categories:  deps.CategoryRepo,
		users:       deps.UserRepo,
		files:       deps.Files,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// TicketCreateInput describes ticket creation. Status and requester are not
// accepted here: creation always starts open and belongs to the caller.
type TicketCreateInput struct {
	Title        string
	Description  string
	DepartmentID string
	CategoryID   *string
	Priority     *domain.TicketPriority
}

// TicketUpdateInput is the allow-listed partial update. Nil fields are left
// untouched; there is no way to clear a field that is absent from the patch.
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Priority    *domain.TicketPriority
	Status      *domain.TicketStatus
	CategoryID  *string
	AssigneeID  *string
}

// TicketListFilter captures caller-facing list parameters before the
// authorization filter narrows them.
type TicketListFilter struct {
	Status       *domain.TicketStatus
	DepartmentID *string
	Page         repository.Page
}

// Create opens a new ticket for the principal.
func (s *TicketService) Create(ctx context.Context, p auth.Principal, in TicketCreateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, util.NewValidationError("title required", nil)
	}

	if _, err := s.departments.GetByID(ctx, in.DepartmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewValidationError("department does not exist", nil)
		}
		return nil, util.NewInternalError(err)
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, util.NewValidationError("category does not exist", nil)
			}
			return nil, util.NewInternalError(err)
		}
	}

	priority := domain.TicketPriorityMedium
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, util.NewValidationError("unknown priority", map[string]any{"priority": *in.Priority})
		}
		priority = *in.Priority
	}

	ticket := &domain.Ticket{
		Title:        in.Title,
		Description:  in.Description,
		DepartmentID: in.DepartmentID,
		CategoryID:   in.CategoryID,
		Priority:     priority,
		Status:       domain.TicketStatusOpen,
		RequesterID:  p.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, persistence.MapError(err, "ticket")
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  p.ID,
		Payload: events.TicketCreatedPayload{
			DepartmentID: ticket.DepartmentID,
			Priority:     ticket.Priority,
			Title:        ticket.Title,
			RequesterID:  ticket.RequesterID,
		},
	})
	return ticket, nil
}

// Get fetches a single ticket. Existence is checked before permission so a
// missing id is always 404 regardless of the caller.
func (s *TicketService) Get(ctx context.Context, p auth.Principal, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, persistence.MapError(err, "ticket")
	}
	if !auth.CanReadTicket(p, ticket) {
		return nil, util.NewForbidden("no permission to view this ticket")
	}
	return ticket, nil
}

// List returns the tickets visible to the principal. Out-of-scope tickets
// are narrowed away rather than denied.
func (s *TicketService) List(ctx context.Context, p auth.Principal, filter TicketListFilter) ([]domain.Ticket, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, util.NewValidationError("unknown status", map[string]any{"status": *filter.Status})
	}

	repoFilter := repository.TicketFilter{
		Status:       filter.Status,
		DepartmentID: filter.DepartmentID,
		Page:         filter.Page,
	}
	auth.ScopeTickets(p, &repoFilter)

	tickets, err := s.tickets.List(ctx, repoFilter)
	if err != nil {
		return nil, persistence.MapError(err, "ticket")
	}
	return tickets, nil
}

// Update applies a partial patch to a ticket. Every successful update stamps
// updated_at, whether or not any field changed.
func (s *TicketService) Update(ctx context.Context, p auth.Principal, id string, in TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, persistence.MapError(err, "ticket")
	}
	if !auth.CanUpdateTicket(p, ticket) {
		return nil, util.NewForbidden("no permission to update this ticket")
	}

	oldStatus := ticket.Status
	var touched []string

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, util.NewValidationError("title cannot be empty", nil)
		}
		ticket.Title = *in.Title
		touched = append(touched, "title")
	}
	if in.Description != nil {
		ticket.Description = *in.Description
		touched = append(touched, "description")
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, util.NewValidationError("unknown priority", map[string]any{"priority": *in.Priority})
		}
		ticket.Priority = *in.Priority
		touched = append(touched, "priority")
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, util.NewValidationError("unknown status", map[string]any{"status": *in.Status})
		}
		ticket.Status = *in.Status
		touched = append(touched, "status")
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, util.NewValidationError("category does not exist", nil)
			}
			return nil, util.NewInternalError(err)
		}
		ticket.CategoryID = in.CategoryID
		touched = append(touched, "category_id")
	}
	if in.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *in.AssigneeID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, util.NewValidationError("assignee does not exist", nil)
			}
			return nil, util.NewInternalError(err)
		}
		ticket.AssigneeID = in.AssigneeID
		touched = append(touched, "assigned_to")
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, persistence.MapError(err, "ticket")
	}

	if ticket.Status != oldStatus {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			ActorID:  p.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	} else if len(touched) > 0 {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketUpdated,
			TicketID: ticket.ID,
			ActorID:  p.ID,
			Payload:  events.TicketUpdatedPayload{Fields: touched},
		})
	}
	return ticket, nil
}

// Delete removes a ticket; the database cascades its comments and
// attachments, and the upload directory is removed best-effort.
func (s *TicketService) Delete(ctx context.Context, p auth.Principal, id string) error {
	if !p.IsAdmin() {
		return util.NewForbidden("only administrators can delete tickets")
	}
	if _, err := s.tickets.GetByID(ctx, id); err != nil {
		return persistence.MapError(err, "ticket")
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		return persistence.MapError(err, "ticket")
	}
	if s.files != nil {
		if err := s.files.RemoveTicketDir(id); err != nil {
			s.logger.Warn("failed to remove ticket uploads", zap.String("ticket_id", id), zap.Error(err))
		}
	}
	return nil
}

// AddComment appends a comment to a ticket the principal can see.
func (s *TicketService) AddComment(ctx context.Context, p auth.Principal, ticketID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, util.NewValidationError("content required", nil)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, persistence.MapError(err, "ticket")
	}
	if !auth.CanCommentTicket(p, ticket) {
		return nil, util.NewForbidden("no permission to comment on this ticket")
	}

	comment := &domain.Comment{
		Content:  content,
		TicketID: ticket.ID,
		AuthorID: p.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, persistence.MapError(err, "comment")
	}

	s.publish(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticket.ID,
		ActorID:  p.ID,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    comment.AuthorID,
			BodyPreview: preview(comment.Content, 80),
		},
	})
	return comment, nil
}

// ListComments returns a ticket's comment thread, subject to ticket read scope.
func (s *TicketService) ListComments(ctx context.Context, p auth.Principal, ticketID string) ([]domain.Comment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, persistence.MapError(err, "ticket")
	}
	if !auth.CanReadTicket(p, ticket) {
		return nil, util.NewForbidden("no permission to view this ticket")
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, persistence.MapError(err, "comment")
	}
	return comments, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// preview truncates on rune boundaries so multi-byte content is never split.
func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
