package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// CommentService owns the append-only comment thread of a ticket.
type CommentService struct {
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCommentService constructs the service.
func NewCommentService(comments repository.CommentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CommentService {
	return &CommentService{comments: comments, dispatcher: dispatcher, logger: logger}
}

// List returns the comments of a ticket, oldest first.
func (s *CommentService) List(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		s.logger.Error("comment list failed", zap.String("ticket_id", ticketID), zap.Error(err))
		return nil, apperrors.NewFetchError("comments", err)
	}
	return comments, nil
}

// Add appends a comment and re-lists the thread. Empty content is rejected
// before any remote call; an identified acting user is mandatory.
func (s *CommentService) Add(ctx context.Context, ticketID, actorID, content string) ([]domain.Comment, error) {
	if actorID == "" {
		return nil, apperrors.NewAuthRequired("adding a comment requires an authenticated user")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("comment content cannot be empty", nil)
	}

	comment := &domain.Comment{
		TicketID: ticketID,
		UserID:   actorID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		s.logger.Error("comment create failed", zap.String("ticket_id", ticketID), zap.Error(err))
		return nil, apperrors.NewCreateError("comment", err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventCommentAdded,
		ActorID: &comment.UserID,
		Payload: events.CommentAddedPayload{
			CommentID:      comment.ID,
			TicketID:       ticketID,
			ContentPreview: contentPreview(content, 120),
		},
	})
	return s.List(ctx, ticketID)
}

func (s *CommentService) publishEvent(ctx context.Context, event events.Event) {
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

func contentPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
