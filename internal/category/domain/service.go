package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rahvarz/bazar/pkg/db/pagination"
	"github.com/rahvarz/bazar/internal/principal"
)

var ErrNotFound = errors.New("category_not_found")

type Service interface {
	Create(ctx context.Context, actor principal.Principal, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, *pagination.PageInfo, error)
	Get(ctx context.Context, id int64) (*Response, error)
	Update(ctx context.Context, actor principal.Principal, id int64, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, actor principal.Principal, id int64) error
}

type CreateRequest struct {
	Name string `json:"name"`
}

type UpdateRequest struct {
	Name *string `json:"name"`
}

type ListRequest struct {
	Pagination pagination.Pagination
	OrderBy    string
	Direction  string
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
