package dto

import "github.com/soportek/helpdesk-service/internal/domain"

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID            string `json:"id"`
	FileName      string `json:"file_name"`
	FileExtension string `json:"file_extension"`
	TicketID      string `json:"ticket_id"`
}

// NewAttachmentResponse maps a domain attachment. The storage path stays
// server-side.
func NewAttachmentResponse(attachment *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:            attachment.ID,
		FileName:      attachment.FileName,
		FileExtension: attachment.FileExtension,
		TicketID:      attachment.TicketID,
	}
}
