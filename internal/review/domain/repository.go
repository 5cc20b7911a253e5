package domain

import (
	"context"

	"github.com/rahvarz/bazar/pkg/db/option"
)

type ListFilter struct {
	ProductID int64
	UserID    int64
}

type Repository interface {
	Create(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id int64) (*Review, error)
	List(ctx context.Context, filter ListFilter, opts ...option.QueryOption) ([]*Review, int64, error)
	Update(ctx context.Context, id int64, mutate func(*Review) error) (*Review, error)
	// Delete removes the review together with its comment.
	Delete(ctx context.Context, id int64) error

	CreateComment(ctx context.Context, comment *Comment) error
	FindCommentByID(ctx context.Context, id int64) (*Comment, error)
	FindCommentByReview(ctx context.Context, reviewID int64) (*Comment, error)
	UpdateComment(ctx context.Context, id int64, mutate func(*Comment) error) (*Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}
