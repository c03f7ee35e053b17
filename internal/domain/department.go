package domain

import "time"

// Department represents an organizational unit tickets are routed to.
type Department struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
