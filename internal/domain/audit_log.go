package domain

import "time"

// AuditAction enumerates recorded action kinds.
type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionAssign  AuditAction = "assign"
	AuditActionComment AuditAction = "comment"
)

// AuditResourceType enumerates the resources an action can target.
type AuditResourceType string

const (
	AuditResourceTicket  AuditResourceType = "ticket"
	AuditResourceComment AuditResourceType = "comment"
	AuditResourceUser    AuditResourceType = "user"
)

// AuditLogEntry is an immutable record of an action taken on a resource.
type AuditLogEntry struct {
	ID           string
	UserID       *string
	Action       AuditAction
	ResourceType AuditResourceType
	ResourceID   string
	Details      string
	Actor        *Profile
	CreatedAt    time.Time
}
