package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rahvarz/bazar/internal/principal"
	"github.com/rahvarz/bazar/pkg/db/pagination"
)

var ErrNotFound = errors.New("product_not_found")

type Service interface {
	Create(ctx context.Context, actor principal.Principal, req CreateRequest) (*View, error)
	List(ctx context.Context, req ListRequest) ([]View, *pagination.PageInfo, error)
	ListMine(ctx context.Context, actor principal.Principal, req ListRequest) ([]View, *pagination.PageInfo, error)
	// Get returns the detail view, which additionally carries reviews.
	Get(ctx context.Context, id int64) (*View, error)
	Update(ctx context.Context, actor principal.Principal, id int64, req UpdateRequest) (*View, error)
	Delete(ctx context.Context, actor principal.Principal, id int64) error
}

type CreateRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	CategoryID  string  `json:"category_id"`
}

type UpdateRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	CategoryID  *string  `json:"category_id"`
}

type ListRequest struct {
	Pagination pagination.Pagination
	OrderBy    string
	Direction  string
	CategoryID int64
	Name       string
}

// View is the read-only projection returned by the API. Everything beyond the
// persisted columns is computed per request and never stored.
type View struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	CategoryID  string    `json:"category_id"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	CurrentPrice  float64      `json:"current_price"`
	Likes         int64        `json:"likes"`
	Dislikes      int64        `json:"dislikes"`
	Views         int64        `json:"views"`
	TotalAmount   int64        `json:"total_amount"`
	ExpiryDate    *string      `json:"expiry_date"`
	AverageRating float64      `json:"average_rating"`
	Offers        []OfferView  `json:"offers"`
	Reviews       []ReviewView `json:"reviews,omitempty"`
}

type OfferView struct {
	ID         string `json:"id"`
	Percentage string `json:"percentage"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type ReviewView struct {
	ID      string       `json:"id"`
	Author  string       `json:"author"`
	Rating  int          `json:"rating"`
	Comment *CommentView `json:"comment,omitempty"`
}

type CommentView struct {
	Text     *string `json:"text,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}
