package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
)

// AuditRecorder turns domain events into audit log rows. Recording is best
// effort: a failed insert is logged and never fails the originating request.
type AuditRecorder struct {
	logs   repository.AuditLogRepository
	logger *zap.Logger
}

// NewAuditRecorder creates the recorder.
func NewAuditRecorder(logs repository.AuditLogRepository, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{logs: logs, logger: logger}
}

// RegisterHandlers subscribes to the recorded event types.
func (r *AuditRecorder) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, r.handleTicketCreated)
	dispatcher.Subscribe(events.EventTicketUpdated, r.handleTicketUpdated)
	dispatcher.Subscribe(events.EventCommentAdded, r.handleCommentAdded)
}

func (r *AuditRecorder) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	return r.record(ctx, &domain.AuditLogEntry{
		UserID:       event.ActorID,
		Action:       domain.AuditActionCreate,
		ResourceType: domain.AuditResourceTicket,
		ResourceID:   payload.TicketID,
		Details:      fmt.Sprintf("created ticket %s: %s", payload.TicketNumber, payload.Title),
	})
}

func (r *AuditRecorder) handleTicketUpdated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketUpdatedPayload)
	if !ok {
		return nil
	}
	action := domain.AuditActionUpdate
	details := "updated " + strings.Join(payload.Changed, ", ")
	if payload.Assigned != nil && len(payload.Changed) == 1 {
		action = domain.AuditActionAssign
		details = "assigned ticket"
	}
	if payload.OldStatus != nil && payload.NewStatus != nil {
		details = fmt.Sprintf("status %s -> %s", *payload.OldStatus, *payload.NewStatus)
	}
	return r.record(ctx, &domain.AuditLogEntry{
		UserID:       event.ActorID,
		Action:       action,
		ResourceType: domain.AuditResourceTicket,
		ResourceID:   payload.TicketID,
		Details:      details,
	})
}

func (r *AuditRecorder) handleCommentAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CommentAddedPayload)
	if !ok {
		return nil
	}
	return r.record(ctx, &domain.AuditLogEntry{
		UserID:       event.ActorID,
		Action:       domain.AuditActionComment,
		ResourceType: domain.AuditResourceComment,
		ResourceID:   payload.CommentID,
		Details:      fmt.Sprintf("commented on ticket %s: %s", payload.TicketID, payload.ContentPreview),
	})
}

func (r *AuditRecorder) record(ctx context.Context, entry *domain.AuditLogEntry) error {
	if err := r.logs.Create(ctx, entry); err != nil {
		r.logger.Warn("audit record failed",
			zap.String("action", string(entry.Action)),
			zap.String("resource_id", entry.ResourceID),
			zap.Error(err))
	}
	return nil
}
