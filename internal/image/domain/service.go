package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rahvarz/bazar/internal/principal"
)

var ErrNotFound = errors.New("image_not_found")

type Service interface {
	Create(ctx context.Context, actor principal.Principal, req CreateRequest) (*Response, error)
	ListByProduct(ctx context.Context, productID int64) ([]Response, error)
	Update(ctx context.Context, actor principal.Principal, id int64, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, actor principal.Principal, id int64) error
}

type CreateRequest struct {
	URL       string `json:"url"`
	IsMain    bool   `json:"is_main"`
	ProductID string `json:"product_id"`
}

type UpdateRequest struct {
	URL    *string `json:"url"`
	IsMain *bool   `json:"is_main"`
}

type Response struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	IsMain    bool      `json:"is_main"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
