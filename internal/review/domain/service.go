package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rahvarz/bazar/internal/principal"
	"github.com/rahvarz/bazar/pkg/db/pagination"
)

var (
	ErrNotFound        = errors.New("review_not_found")
	ErrCommentNotFound = errors.New("comment_not_found")
	ErrCommentExists   = errors.New("comment_exists")
)

type Service interface {
	Create(ctx context.Context, actor principal.Principal, req CreateRequest) (*Response, error)
	ListByProduct(ctx context.Context, productID int64, req ListRequest) ([]Response, *pagination.PageInfo, error)
	ListMine(ctx context.Context, actor principal.Principal, req ListRequest) ([]Response, *pagination.PageInfo, error)
	Get(ctx context.Context, id int64) (*Response, error)
	Update(ctx context.Context, actor principal.Principal, id int64, req UpdateRequest) (*Response, error)
	// Delete removes the review and its comment, if any.
	Delete(ctx context.Context, actor principal.Principal, id int64) error

	CreateComment(ctx context.Context, actor principal.Principal, req CommentRequest) (*CommentResponse, error)
	UpdateComment(ctx context.Context, actor principal.Principal, id int64, req CommentUpdateRequest) (*CommentResponse, error)
	DeleteComment(ctx context.Context, actor principal.Principal, id int64) error
}

type CreateRequest struct {
	Rating    int    `json:"rating"`
	ProductID string `json:"product_id"`
}

type UpdateRequest struct {
	Rating *int `json:"rating"`
}

type ListRequest struct {
	Pagination pagination.Pagination
	OrderBy    string
	Direction  string
}

type CommentRequest struct {
	Text     *string `json:"text"`
	ImageURL *string `json:"image_url"`
	ReviewID string  `json:"review_id"`
}

type CommentUpdateRequest struct {
	Text     *string `json:"text"`
	ImageURL *string `json:"image_url"`
}

type Response struct {
	ID        string           `json:"id"`
	Rating    int              `json:"rating"`
	UserID    string           `json:"user_id"`
	ProductID string           `json:"product_id"`
	Comment   *CommentResponse `json:"comment,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	Text      *string   `json:"text,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	ReviewID  string    `json:"review_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
