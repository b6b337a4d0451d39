package domain

import "time"

// Comment is an append-only note attached to a ticket. Comments are never
// mutated or deleted and are always ordered by creation time ascending.
type Comment struct {
	ID        string
	TicketID  string
	UserID    string
	Content   string
	Author    *Profile
	CreatedAt time.Time
}
