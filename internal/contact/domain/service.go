package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rahvarz/bazar/internal/principal"
)

var (
	ErrNotFound     = errors.New("contact_not_found")
	ErrTypeNotFound = errors.New("contact_type_not_found")
)

type Service interface {
	Create(ctx context.Context, actor principal.Principal, req CreateRequest) (*Response, error)
	ListMine(ctx context.Context, actor principal.Principal) ([]Response, error)
	ListTypes(ctx context.Context) ([]TypeResponse, error)
	Update(ctx context.Context, actor principal.Principal, id int64, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, actor principal.Principal, id int64) error
}

type CreateRequest struct {
	Link          string `json:"link"`
	ContactTypeID string `json:"contact_type_id"`
}

type UpdateRequest struct {
	Link          *string `json:"link"`
	ContactTypeID *string `json:"contact_type_id"`
}

type Response struct {
	ID        string       `json:"id"`
	Link      string       `json:"link"`
	Type      TypeResponse `json:"type"`
	UserID    string       `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type TypeResponse struct {
	ID     string `json:"id"`
	NameEN string `json:"name_en"`
	NameFA string `json:"name_fa"`
}
