package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// TicketSource enumerates the channel a ticket arrived through.
type TicketSource string

const (
	TicketSourceWhatsApp TicketSource = "whatsapp"
	TicketSourceEmail    TicketSource = "email"
	TicketSourcePhone    TicketSource = "phone"
	TicketSourceWeb      TicketSource = "web"
)

// Ticket is the aggregate for customer support requests.
type Ticket struct {
	ID            string
	TicketNumber  string
	Title         string
	Description   string
	Status        TicketStatus
	Priority      TicketPriority
	Source        TicketSource
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	AssignedTo    *string
	CreatedBy     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidStatus reports whether s is one of the enumerated statuses.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the enumerated priorities.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// ValidSource reports whether s is one of the enumerated sources.
func ValidSource(s TicketSource) bool {
	switch s {
	case TicketSourceWhatsApp, TicketSourceEmail, TicketSourcePhone, TicketSourceWeb:
		return true
	}
	return false
}

// statusTransitions declares which status changes are permitted. Keeping the
// current status is always allowed; any change not listed here is rejected.
var statusTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed},
	TicketStatusInProgress: {TicketStatusOpen, TicketStatusResolved, TicketStatusClosed},
	TicketStatusResolved:   {TicketStatusInProgress, TicketStatusClosed},
	TicketStatusClosed:     {TicketStatusInProgress},
}

// CanTransition reports whether a ticket may move from current to next.
func CanTransition(current, next TicketStatus) bool {
	if current == next {
		return true
	}
	for _, candidate := range statusTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
