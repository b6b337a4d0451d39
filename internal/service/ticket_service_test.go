package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

func newTicketService(repo *memoryTicketRepo) *TicketService {
	return NewTicketService(repo, nil, zap.NewNop())
}

func validCreateInput() TicketCreateInput {
	return TicketCreateInput{
		Title:        "Login issue",
		CustomerName: "John Doe",
		Priority:     domain.TicketPriorityHigh,
		Source:       domain.TicketSourceEmail,
	}
}

func TestCreateTicketDefaults(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)

	ticket, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, ticket.CreatedAt, ticket.UpdatedAt)
	assert.NotEmpty(t, ticket.ID)
	assert.NotEmpty(t, ticket.TicketNumber)
}

func TestCreateTicketValidation(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)

	cases := []struct {
		name   string
		mutate func(*TicketCreateInput)
	}{
		{"missing title", func(in *TicketCreateInput) { in.Title = "  " }},
		{"missing customer", func(in *TicketCreateInput) { in.CustomerName = "" }},
		{"bad priority", func(in *TicketCreateInput) { in.Priority = "urgent" }},
		{"bad source", func(in *TicketCreateInput) { in.Source = "fax" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
		})
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)
	base := time.Now().Add(-time.Hour)

	repo.seed(domain.Ticket{Title: "oldest", Status: domain.TicketStatusOpen, CreatedAt: base, UpdatedAt: base})
	repo.seed(domain.Ticket{Title: "middle", Status: domain.TicketStatusOpen, CreatedAt: base.Add(10 * time.Minute), UpdatedAt: base.Add(10 * time.Minute)})
	repo.seed(domain.Ticket{Title: "newest", Status: domain.TicketStatusOpen, CreatedAt: base.Add(20 * time.Minute), UpdatedAt: base.Add(20 * time.Minute)})

	tickets, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, "newest", tickets[0].Title)
	assert.Equal(t, "oldest", tickets[2].Title)
}

func TestCreatedTicketListedFirst(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)
	earlier := time.Now().Add(-time.Hour)
	repo.seed(domain.Ticket{Title: "existing", Status: domain.TicketStatusOpen, CreatedAt: earlier, UpdatedAt: earlier})

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	tickets, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, tickets)
	assert.Equal(t, created.ID, tickets[0].ID)
	assert.Equal(t, domain.TicketStatusOpen, tickets[0].Status)
}

func TestListFailureKeepsPreviousSnapshot(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)
	repo.seed(domain.Ticket{Title: "known good", Status: domain.TicketStatusOpen, CreatedAt: time.Now(), UpdatedAt: time.Now()})

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	repo.failList = true
	second, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "FETCH_FAILED", apperrors.ToDomainError(err).Code)
	require.Len(t, second, 1)
	assert.Equal(t, "known good", second[0].Title)
}

func TestUpdateStatusRefreshesUpdatedAt(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	priorUpdated := created.UpdatedAt

	status := domain.TicketStatusInProgress
	updated, err := svc.Update(context.Background(), created.ID, domain.TicketPatch{Status: &status}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(priorUpdated))

	tickets, err := svc.List(context.Background())
	require.NoError(t, err)
	found := false
	for _, ticket := range tickets {
		if ticket.ID == created.ID {
			found = true
			assert.Equal(t, domain.TicketStatusInProgress, ticket.Status)
		}
	}
	assert.True(t, found)
}

func TestUpdateRejectsUndeclaredTransition(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	// closed -> open is not in the transition table
	closed := domain.TicketStatusClosed
	_, err = svc.Update(context.Background(), created.ID, domain.TicketPatch{Status: &closed}, nil)
	require.NoError(t, err)

	open := domain.TicketStatusOpen
	_, err = svc.Update(context.Background(), created.ID, domain.TicketPatch{Status: &open}, nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateRejectsEmptyAndInvalidPatch(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, domain.TicketPatch{}, nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	bogus := domain.TicketStatus("archived")
	_, err = svc.Update(context.Background(), created.ID, domain.TicketPatch{Status: &bogus}, nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateUnknownTicket(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)

	title := "renamed"
	_, err := svc.Update(context.Background(), "missing-id", domain.TicketPatch{Title: &title}, nil)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestUpdateFailureSurfacesUpdateError(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	repo.failUpdate = true
	priority := domain.TicketPriorityCritical
	_, err = svc.Update(context.Background(), created.ID, domain.TicketPatch{Priority: &priority}, nil)
	require.Error(t, err)
	assert.Equal(t, "UPDATE_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCreateFailureSurfacesCreateError(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)
	repo.failCreate = true

	_, err := svc.Create(context.Background(), validCreateInput())
	require.Error(t, err)
	assert.Equal(t, "CREATE_FAILED", apperrors.ToDomainError(err).Code)
}

func TestMutationTriggersFullReList(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)

	_, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	snapshot := svc.Snapshot()
	require.Len(t, snapshot, 1)
}

func TestPartialPatchLeavesOtherFieldsAlone(t *testing.T) {
	repo := newMemoryTicketRepo()
	svc := newTicketService(repo)

	input := validCreateInput()
	input.Description = "cannot log in since Tuesday"
	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	priority := domain.TicketPriorityLow
	updated, err := svc.Update(context.Background(), created.ID, domain.TicketPatch{Priority: &priority}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.TicketPriorityLow, updated.Priority)
	assert.Equal(t, "Login issue", updated.Title)
	assert.Equal(t, "cannot log in since Tuesday", updated.Description)
	assert.Equal(t, "John Doe", updated.CustomerName)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}
