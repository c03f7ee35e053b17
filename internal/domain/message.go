package domain

import "time"

// Message is a private note between a user and the administrators. It is
// independent of any ticket.
type Message struct {
	ID        string
	Body      string
	SenderID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
