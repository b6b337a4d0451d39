package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

func newCommentService(repo *memoryCommentRepo) *CommentService {
	return NewCommentService(repo, nil, zap.NewNop())
}

func TestAddCommentAppendsAndReLists(t *testing.T) {
	repo := newMemoryCommentRepo()
	svc := newCommentService(repo)

	thread, err := svc.Add(context.Background(), "ticket-1", "agent-1", "  first reply  ")
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, "first reply", thread[0].Content)
	assert.Equal(t, "agent-1", thread[0].UserID)

	thread, err = svc.Add(context.Background(), "ticket-1", "agent-2", "second reply")
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "first reply", thread[0].Content)
	assert.Equal(t, "second reply", thread[1].Content)
}

func TestAddCommentEmptyContentRejectedLocally(t *testing.T) {
	repo := newMemoryCommentRepo()
	svc := newCommentService(repo)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.Add(context.Background(), "ticket-1", "agent-1", content)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	}
	// no remote call was made
	assert.Equal(t, 0, repo.createCalls)
}

func TestAddCommentRequiresActingUser(t *testing.T) {
	repo := newMemoryCommentRepo()
	svc := newCommentService(repo)

	_, err := svc.Add(context.Background(), "ticket-1", "", "hello")
	require.Error(t, err)
	assert.Equal(t, "AUTH_REQUIRED", apperrors.ToDomainError(err).Code)
	assert.Equal(t, 0, repo.createCalls)
}

func TestAddCommentRemoteFailure(t *testing.T) {
	repo := newMemoryCommentRepo()
	repo.failCreate = true
	svc := newCommentService(repo)

	_, err := svc.Add(context.Background(), "ticket-1", "agent-1", "hello")
	require.Error(t, err)
	assert.Equal(t, "CREATE_FAILED", apperrors.ToDomainError(err).Code)
}

func TestListCommentsOrderedOldestFirst(t *testing.T) {
	repo := newMemoryCommentRepo()
	base := time.Now().Add(-time.Hour)
	repo.comments["ticket-1"] = []domain.Comment{
		{ID: "c2", TicketID: "ticket-1", Content: "later", CreatedAt: base.Add(time.Minute)},
		{ID: "c1", TicketID: "ticket-1", Content: "earlier", CreatedAt: base},
	}
	svc := newCommentService(repo)

	thread, err := svc.List(context.Background(), "ticket-1")
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "earlier", thread[0].Content)
	assert.False(t, thread[1].CreatedAt.Before(thread[0].CreatedAt))
}

func TestListCommentsFetchFailure(t *testing.T) {
	repo := newMemoryCommentRepo()
	repo.failList = true
	svc := newCommentService(repo)

	_, err := svc.List(context.Background(), "ticket-1")
	require.Error(t, err)
	assert.Equal(t, "FETCH_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAddCommentPublishesEvent(t *testing.T) {
	repo := newMemoryCommentRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewCommentService(repo, dispatcher, zap.NewNop())

	var received []events.Event
	dispatcher.Subscribe(events.EventCommentAdded, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	_, err := svc.Add(context.Background(), "ticket-1", "agent-1", "hello")
	require.NoError(t, err)
	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(events.CommentAddedPayload)
	require.True(t, ok)
	assert.Equal(t, "ticket-1", payload.TicketID)
	assert.Equal(t, "hello", payload.ContentPreview)
}
