package domain

// Attachment records metadata for an uploaded file tied to a ticket. The
// backing file lives on disk under StoragePath.
type Attachment struct {
	ID            string
	FileName      string
	StoragePath   string
	FileExtension string
	TicketID      string
}
