package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soportek/helpdesk-service/internal/auth"
	"github.com/soportek/helpdesk-service/internal/domain"
	"github.com/soportek/helpdesk-service/internal/events"
	"github.com/soportek/helpdesk-service/internal/persistence"
	"github.com/soportek/helpdesk-service/internal/repository"
	"github.com/soportek/helpdesk-service/internal/storage"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// AttachmentService stores uploaded files and their metadata.
type AttachmentService struct {
	attachments repository.AttachmentRepository
	tickets     repository.TicketRepository
	store       *storage.LocalStore
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewAttachmentService builds the service.
func NewAttachmentService(
	attachments repository.AttachmentRepository,
	tickets repository.TicketRepository,
	store *storage.LocalStore,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *AttachmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttachmentService{
		attachments: attachments,
		tickets:     tickets,
		store:       store,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Upload saves the file under the ticket's directory and records metadata.
// The ticket must exist and be visible to the principal.
func (s *AttachmentService) Upload(ctx context.Context, p auth.Principal, ticketID, fileName string, src io.Reader) (*domain.Attachment, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, util.NewValidationError("file name required", nil)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, persistence.MapError(err, "ticket")
	}
	if !auth.CanAccessAttachment(p, ticket) {
		return nil, util.NewForbidden("no permission to attach files to this ticket")
	}

	path, err := s.store.Save(ticket.ID, fileName, src)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	attachment := &domain.Attachment{
		FileName:      filepath.Base(fileName),
		StoragePath:   path,
		FileExtension: strings.TrimPrefix(filepath.Ext(fileName), "."),
		TicketID:      ticket.ID,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		if removeErr := s.store.Remove(path); removeErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.String("path", path), zap.Error(removeErr))
		}
		return nil, persistence.MapError(err, "attachment")
	}

	s.publish(ctx, events.Event{
		Type:     events.EventAttachmentAdded,
		TicketID: ticket.ID,
		ActorID:  p.ID,
		Payload: events.AttachmentAddedPayload{
			AttachmentID: attachment.ID,
			FileName:     attachment.FileName,
		},
	})
	return attachment, nil
}

// ListByTicket returns a ticket's attachments subject to ticket read scope.
func (s *AttachmentService) ListByTicket(ctx context.Context, p auth.Principal, ticketID string) ([]domain.Attachment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, persistence.MapError(err, "ticket")
	}
	if !auth.CanAccessAttachment(p, ticket) {
		return nil, util.NewForbidden("no permission to view this ticket's attachments")
	}
	attachments, err := s.attachments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, persistence.MapError(err, "attachment")
	}
	return attachments, nil
}

// Get fetches attachment metadata, gated by the owning ticket's scope.
func (s *AttachmentService) Get(ctx context.Context, p auth.Principal, id string) (*domain.Attachment, error) {
	attachment, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return nil, persistence.MapError(err, "attachment")
	}
	if err := s.authorize(ctx, p, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

// Delete removes the metadata row, then the backing file best-effort: a
// failed unlink is logged and never blocks the record deletion.
func (s *AttachmentService) Delete(ctx context.Context, p auth.Principal, id string) error {
	attachment, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return persistence.MapError(err, "attachment")
	}
	if err := s.authorize(ctx, p, attachment); err != nil {
		return err
	}

	if err := s.attachments.Delete(ctx, attachment.ID); err != nil {
		return persistence.MapError(err, "attachment")
	}
	if err := s.store.Remove(attachment.StoragePath); err != nil {
		s.logger.Warn("failed to remove attachment file",
			zap.String("path", attachment.StoragePath), zap.Error(err))
	}
	return nil
}

func (s *AttachmentService) authorize(ctx context.Context, p auth.Principal, attachment *domain.Attachment) error {
	ticket, err := s.tickets.GetByID(ctx, attachment.TicketID)
	if err != nil {
		return persistence.MapError(err, "ticket")
	}
	if !auth.CanAccessAttachment(p, ticket) {
		return util.NewForbidden("no permission to access this attachment")
	}
	return nil
}

func (s *AttachmentService) publish(ctx context.Context, event events.Event) {
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
