package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePostRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}

type UpdatePostRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}

type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

type UpdateCommentRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

// Response DTOs

type PostResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Body      string    `json:"body"`
	Likes     int64     `json:"likes"`
	Dislikes  int64     `json:"dislikes"`
	Comments  int64     `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int            `json:"total"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int               `json:"total"`
}

// CommentMutationResponse is returned when a comment is added or removed.
type CommentMutationResponse struct {
	Comment      *CommentResponse `json:"comment"`
	CommentCount int64            `json:"comment_count"`
}

type ReactionResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PostID    uuid.UUID `json:"post_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactionResultResponse carries the reaction (nil after removal) and the
// post's counts as of the same transaction.
type ReactionResultResponse struct {
	Reaction *ReactionResponse `json:"reaction,omitempty"`
	Likes    int64             `json:"likes"`
	Dislikes int64             `json:"dislikes"`
}
