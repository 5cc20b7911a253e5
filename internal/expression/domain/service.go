package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rahvarz/bazar/internal/principal"
)

var ErrNotFound = errors.New("expression_not_found")

type Service interface {
	// Set records like/dislike or clears the caller's signal on a product,
	// creating the (user, product) row on first touch.
	Set(ctx context.Context, actor principal.Principal, req SetRequest) (*Response, error)
	GetMine(ctx context.Context, actor principal.Principal, productID int64) (*Response, error)
}

type SetRequest struct {
	ProductID string  `json:"product_id"`
	Action    *string `json:"action"`
}

type Response struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Action    *string   `json:"action"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
