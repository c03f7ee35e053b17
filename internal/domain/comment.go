package domain

import "time"

// Comment is a note on a ticket thread.
type Comment struct {
	ID        string
	Content   string
	TicketID  string
	AuthorID  string
	CreatedAt time.Time
}
