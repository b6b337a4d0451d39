package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// TicketService owns the canonical ticket collection. It keeps the last
// successfully fetched snapshot; after every mutation it re-lists the whole
// collection instead of merging deltas, so the snapshot is always either a
// full consistent copy or the previous one.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu       sync.RWMutex
	snapshot []domain.Ticket
}

// TicketCreateInput describes ticket creation payload. Status is not part of
// the input; a new ticket is always open.
type TicketCreateInput struct {
	Title         string
	Description   string
	Priority      domain.TicketPriority
	Source        domain.TicketSource
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	AssignedTo    *string
	CreatedBy     *string
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher, logger: logger}
}

// List fetches the full ticket collection, newest created first. On a fetch
// failure the previous snapshot is returned alongside the error so callers
// can keep rendering last-known-good data.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		s.logger.Error("ticket list failed", zap.Error(err))
		return s.Snapshot(), apperrors.NewFetchError("tickets", err)
	}
	s.replaceSnapshot(tickets)
	return tickets, nil
}

// Snapshot returns the last successfully fetched collection.
func (s *TicketService) Snapshot() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Get fetches a single ticket by id.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		s.logger.Error("ticket load failed", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewFetchError("ticket", err)
	}
	return ticket, nil
}

// Create inserts a new ticket and re-lists the collection before returning.
// The server assigns id, ticket number and both timestamps; status is open.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	customer := strings.TrimSpace(input.CustomerName)
	if title == "" || customer == "" {
		return nil, apperrors.NewValidationError("title and customer_name required", nil)
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}
	if !domain.ValidSource(input.Source) {
		return nil, apperrors.NewValidationError("invalid source", map[string]any{"source": input.Source})
	}

	ticket := &domain.Ticket{
		TicketNumber:  generateTicketNumber(),
		Title:         title,
		Description:   strings.TrimSpace(input.Description),
		Status:        domain.TicketStatusOpen,
		Priority:      input.Priority,
		Source:        input.Source,
		CustomerName:  customer,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		AssignedTo:    input.AssignedTo,
		CreatedBy:     input.CreatedBy,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		s.logger.Error("ticket create failed", zap.Error(err))
		return nil, apperrors.NewCreateError("ticket", err)
	}

	s.refreshAfterMutation(ctx)
	s.publishEvent(ctx, events.Event{
		Type:    events.EventTicketCreated,
		ActorID: input.CreatedBy,
		Payload: events.TicketCreatedPayload{
			TicketID:     ticket.ID,
			TicketNumber: ticket.TicketNumber,
			Title:        ticket.Title,
			Priority:     ticket.Priority,
			Source:       ticket.Source,
		},
	})
	return ticket, nil
}

// Update applies a partial patch to a ticket, refreshes updated_at, then
// re-lists the collection. Status changes are checked against the declared
// transition table.
func (s *TicketService) Update(ctx context.Context, id string, patch domain.TicketPatch, actorID *string) (*domain.Ticket, error) {
	if patch.IsEmpty() {
		return nil, apperrors.NewValidationError("empty patch", nil)
	}
	if err := patch.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		s.logger.Error("ticket load failed", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewFetchError("ticket", err)
	}

	oldStatus := ticket.Status
	if patch.Status != nil && !domain.CanTransition(ticket.Status, *patch.Status) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   *patch.Status,
		})
	}

	patch.Apply(ticket)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		s.logger.Error("ticket update failed", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewUpdateError("ticket", err)
	}

	s.refreshAfterMutation(ctx)
	payload := events.TicketUpdatedPayload{
		TicketID: ticket.ID,
		Changed:  changedFields(patch),
	}
	if patch.Status != nil && *patch.Status != oldStatus {
		old := oldStatus
		payload.OldStatus = &old
		payload.NewStatus = patch.Status
	}
	if patch.AssignedTo != nil {
		payload.Assigned = patch.AssignedTo
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventTicketUpdated,
		ActorID: actorID,
		Payload: payload,
	})
	return ticket, nil
}

// refreshAfterMutation re-lists the whole collection. A failed refresh keeps
// the previous snapshot; the mutation itself already succeeded.
func (s *TicketService) refreshAfterMutation(ctx context.Context) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		s.logger.Warn("post-mutation refresh failed", zap.Error(err))
		return
	}
	s.replaceSnapshot(tickets)
}

func (s *TicketService) replaceSnapshot(tickets []domain.Ticket) {
	s.mu.Lock()
	s.snapshot = tickets
	s.mu.Unlock()
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateTicketNumber() string {
	return "T-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func changedFields(patch domain.TicketPatch) []string {
	var changed []string
	if patch.Title != nil {
		changed = append(changed, "title")
	}
	if patch.Description != nil {
		changed = append(changed, "description")
	}
	if patch.Status != nil {
		changed = append(changed, "status")
	}
	if patch.Priority != nil {
		changed = append(changed, "priority")
	}
	if patch.Source != nil {
		changed = append(changed, "source")
	}
	if patch.CustomerName != nil {
		changed = append(changed, "customer_name")
	}
	if patch.CustomerEmail != nil {
		changed = append(changed, "customer_email")
	}
	if patch.CustomerPhone != nil {
		changed = append(changed, "customer_phone")
	}
	if patch.AssignedTo != nil {
		changed = append(changed, "assigned_to")
	}
	return changed
}
