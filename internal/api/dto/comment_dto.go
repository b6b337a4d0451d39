package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// unknownUserLabel is rendered when a referenced profile no longer exists.
const unknownUserLabel = "Unknown user"

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse is the wire shape of a comment.
type CommentResponse struct {
	ID          string    `json:"id"`
	TicketID    string    `json:"ticket_id"`
	UserID      string    `json:"user_id"`
	Content     string    `json:"content"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromComment maps a comment, falling back to a label when the author
// profile is missing.
func FromComment(comment *domain.Comment) CommentResponse {
	resp := CommentResponse{
		ID:         comment.ID,
		TicketID:   comment.TicketID,
		UserID:     comment.UserID,
		Content:    comment.Content,
		AuthorName: unknownUserLabel,
		CreatedAt:  comment.CreatedAt,
	}
	if comment.Author != nil {
		if comment.Author.FullName != "" {
			resp.AuthorName = comment.Author.FullName
		}
		resp.AuthorEmail = comment.Author.Email
	}
	return resp
}

// FromComments maps a comment thread.
func FromComments(comments []domain.Comment) []CommentResponse {
	items := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, FromComment(&comments[i]))
	}
	return items
}
