package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// AuditLogResponse is the wire shape of an audit entry.
type AuditLogResponse struct {
	ID           string                   `json:"id"`
	UserID       *string                  `json:"user_id,omitempty"`
	Action       domain.AuditAction       `json:"action"`
	ResourceType domain.AuditResourceType `json:"resource_type"`
	ResourceID   string                   `json:"resource_id"`
	Details      string                   `json:"details"`
	ActorName    string                   `json:"actor_name"`
	ActorEmail   string                   `json:"actor_email,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
}

// FromAuditEntry maps an entry, tolerating a missing actor profile.
func FromAuditEntry(entry *domain.AuditLogEntry) AuditLogResponse {
	resp := AuditLogResponse{
		ID:           entry.ID,
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Details:      entry.Details,
		ActorName:    unknownUserLabel,
		CreatedAt:    entry.CreatedAt,
	}
	if entry.Actor != nil {
		if entry.Actor.FullName != "" {
			resp.ActorName = entry.Actor.FullName
		}
		resp.ActorEmail = entry.Actor.Email
	}
	return resp
}

// FromAuditEntries maps the feed.
func FromAuditEntries(entries []domain.AuditLogEntry) []AuditLogResponse {
	items := make([]AuditLogResponse, 0, len(entries))
	for i := range entries {
		items = append(items, FromAuditEntry(&entries[i]))
	}
	return items
}
