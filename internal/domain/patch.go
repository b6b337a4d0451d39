package domain

import "fmt"

// TicketPatch is a partial update to a ticket. Every field is optional; nil
// means "leave unchanged". The id and created_at of a ticket are never
// patchable.
type TicketPatch struct {
	Title         *string
	Description   *string
	Status        *TicketStatus
	Priority      *TicketPriority
	Source        *TicketSource
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	AssignedTo    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TicketPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.Source == nil && p.CustomerName == nil &&
		p.CustomerEmail == nil && p.CustomerPhone == nil && p.AssignedTo == nil
}

// Validate checks each present field against the enumerations before the
// patch is dispatched to storage.
func (p TicketPatch) Validate() error {
	if p.Status != nil && !ValidStatus(*p.Status) {
		return fmt.Errorf("invalid status %q", *p.Status)
	}
	if p.Priority != nil && !ValidPriority(*p.Priority) {
		return fmt.Errorf("invalid priority %q", *p.Priority)
	}
	if p.Source != nil && !ValidSource(*p.Source) {
		return fmt.Errorf("invalid source %q", *p.Source)
	}
	if p.Title != nil && *p.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if p.CustomerName != nil && *p.CustomerName == "" {
		return fmt.Errorf("customer name cannot be empty")
	}
	return nil
}

// Apply copies the present fields of the patch onto the ticket.
func (p TicketPatch) Apply(ticket *Ticket) {
	if p.Title != nil {
		ticket.Title = *p.Title
	}
	if p.Description != nil {
		ticket.Description = *p.Description
	}
	if p.Status != nil {
		ticket.Status = *p.Status
	}
	if p.Priority != nil {
		ticket.Priority = *p.Priority
	}
	if p.Source != nil {
		ticket.Source = *p.Source
	}
	if p.CustomerName != nil {
		ticket.CustomerName = *p.CustomerName
	}
	if p.CustomerEmail != nil {
		ticket.CustomerEmail = p.CustomerEmail
	}
	if p.CustomerPhone != nil {
		ticket.CustomerPhone = p.CustomerPhone
	}
	if p.AssignedTo != nil {
		ticket.AssignedTo = p.AssignedTo
	}
}
