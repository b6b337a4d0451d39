package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
)

// memoryTicketRepo is an in-memory TicketRepository for tests. failList /
// failCreate / failUpdate force remote-style failures; listCalls counts
// re-fetches so tests can observe the reload-after-mutation behavior.
type memoryTicketRepo struct {
	mu         sync.Mutex
	tickets    map[string]domain.Ticket
	failList   bool
	failCreate bool
	failUpdate bool
	listCalls  int
	now        func() time.Time
}

func newMemoryTicketRepo() *memoryTicketRepo {
	return &memoryTicketRepo{
		tickets: make(map[string]domain.Ticket),
		now:     time.Now,
	}
}

var errRemote = errors.New("remote call failed")

func (r *memoryTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errRemote
	}
	ticket.ID = uuid.NewString()
	now := r.now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memoryTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return errRemote
	}
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.CreatedAt = stored.CreatedAt
	ticket.UpdatedAt = r.now()
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memoryTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (r *memoryTicketRepo) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.failList {
		return nil, errRemote
	}
	result := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		result = append(result, ticket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryTicketRepo) seed(ticket domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	r.tickets[ticket.ID] = ticket
}

// memoryCommentRepo is an in-memory CommentRepository.
type memoryCommentRepo struct {
	mu          sync.Mutex
	comments    map[string][]domain.Comment
	failCreate  bool
	failList    bool
	createCalls int
}

func newMemoryCommentRepo() *memoryCommentRepo {
	return &memoryCommentRepo{comments: make(map[string][]domain.Comment)}
}

func (r *memoryCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.failCreate {
		return errRemote
	}
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now()
	r.comments[comment.TicketID] = append(r.comments[comment.TicketID], *comment)
	return nil
}

func (r *memoryCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errRemote
	}
	thread := r.comments[ticketID]
	result := make([]domain.Comment, len(thread))
	copy(result, thread)
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// memoryAuditRepo is an in-memory AuditLogRepository.
type memoryAuditRepo struct {
	mu       sync.Mutex
	entries  []domain.AuditLogEntry
	failRead bool
}

func newMemoryAuditRepo() *memoryAuditRepo {
	return &memoryAuditRepo{}
}

func (r *memoryAuditRepo) Create(_ context.Context, entry *domain.AuditLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memoryAuditRepo) Recent(_ context.Context, limit int) ([]domain.AuditLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failRead {
		return nil, errRemote
	}
	result := make([]domain.AuditLogEntry, len(r.entries))
	copy(result, r.entries)
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
