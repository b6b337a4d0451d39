package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

func seedAuditEntries(repo *memoryAuditRepo, n int) {
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		repo.entries = append(repo.entries, domain.AuditLogEntry{
			ID:           fmt.Sprintf("entry-%d", i),
			Action:       domain.AuditActionUpdate,
			ResourceType: domain.AuditResourceTicket,
			ResourceID:   fmt.Sprintf("ticket-%d", i),
			CreatedAt:    base.Add(time.Duration(i) * time.Second),
		})
	}
}

func TestRecentDefaultsToTwenty(t *testing.T) {
	repo := newMemoryAuditRepo()
	seedAuditEntries(repo, 30)
	svc := NewAuditService(repo, zap.NewNop())

	entries, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
	// newest first
	assert.Equal(t, "entry-29", entries[0].ID)
}

func TestRecentClampsLargeLimit(t *testing.T) {
	repo := newMemoryAuditRepo()
	seedAuditEntries(repo, 150)
	svc := NewAuditService(repo, zap.NewNop())

	entries, err := svc.Recent(context.Background(), 500)
	require.NoError(t, err)
	assert.Len(t, entries, 100)
}

func TestRecentFetchFailure(t *testing.T) {
	repo := newMemoryAuditRepo()
	repo.failRead = true
	svc := NewAuditService(repo, zap.NewNop())

	_, err := svc.Recent(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, "FETCH_FAILED", apperrors.ToDomainError(err).Code)
}

func TestRecorderWritesTicketLifecycleEntries(t *testing.T) {
	ticketRepo := newMemoryTicketRepo()
	auditRepo := newMemoryAuditRepo()
	dispatcher := events.NewInMemoryDispatcher()

	recorder := NewAuditRecorder(auditRepo, zap.NewNop())
	recorder.RegisterHandlers(dispatcher)

	svc := NewTicketService(ticketRepo, dispatcher, zap.NewNop())
	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	status := domain.TicketStatusResolved
	_, err = svc.Update(context.Background(), created.ID, domain.TicketPatch{Status: &status}, nil)
	require.NoError(t, err)

	require.Len(t, auditRepo.entries, 2)
	assert.Equal(t, domain.AuditActionCreate, auditRepo.entries[0].Action)
	assert.Equal(t, domain.AuditResourceTicket, auditRepo.entries[0].ResourceType)
	assert.Equal(t, created.ID, auditRepo.entries[0].ResourceID)
	assert.Equal(t, domain.AuditActionUpdate, auditRepo.entries[1].Action)
	assert.Contains(t, auditRepo.entries[1].Details, "resolved")
}

func TestRecorderMarksAssignments(t *testing.T) {
	ticketRepo := newMemoryTicketRepo()
	auditRepo := newMemoryAuditRepo()
	dispatcher := events.NewInMemoryDispatcher()

	recorder := NewAuditRecorder(auditRepo, zap.NewNop())
	recorder.RegisterHandlers(dispatcher)

	svc := NewTicketService(ticketRepo, dispatcher, zap.NewNop())
	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	agent := "agent-7"
	_, err = svc.Update(context.Background(), created.ID, domain.TicketPatch{AssignedTo: &agent}, nil)
	require.NoError(t, err)

	require.Len(t, auditRepo.entries, 2)
	assert.Equal(t, domain.AuditActionAssign, auditRepo.entries[1].Action)
}

func TestRecorderWritesCommentEntries(t *testing.T) {
	commentRepo := newMemoryCommentRepo()
	auditRepo := newMemoryAuditRepo()
	dispatcher := events.NewInMemoryDispatcher()

	recorder := NewAuditRecorder(auditRepo, zap.NewNop())
	recorder.RegisterHandlers(dispatcher)

	svc := NewCommentService(commentRepo, dispatcher, zap.NewNop())
	_, err := svc.Add(context.Background(), "ticket-1", "agent-1", "checking in")
	require.NoError(t, err)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, domain.AuditActionComment, auditRepo.entries[0].Action)
	assert.Equal(t, domain.AuditResourceComment, auditRepo.entries[0].ResourceType)
	require.NotNil(t, auditRepo.entries[0].UserID)
	assert.Equal(t, "agent-1", *auditRepo.entries[0].UserID)
}
