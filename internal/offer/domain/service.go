package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rahvarz/bazar/internal/principal"
	"github.com/rahvarz/bazar/pkg/db/pagination"
)

var ErrNotFound = errors.New("offer_not_found")

const MaxDiscountPercentage = 99.99

type Service interface {
	Create(ctx context.Context, actor principal.Principal, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, *pagination.PageInfo, error)
	ListMine(ctx context.Context, actor principal.Principal, req ListRequest) ([]Response, *pagination.PageInfo, error)
	Get(ctx context.Context, id int64) (*Response, error)
	Update(ctx context.Context, actor principal.Principal, id int64, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, actor principal.Principal, id int64) error
}

type CreateRequest struct {
	DiscountPercentage float64 `json:"discount_percentage"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	WarehouseID        string  `json:"warehouse_id"`
}

type UpdateRequest struct {
	DiscountPercentage *float64 `json:"discount_percentage"`
	StartDate          *string  `json:"start_date"`
	EndDate            *string  `json:"end_date"`
}

type ListRequest struct {
	Pagination  pagination.Pagination
	OrderBy     string
	Direction   string
	WarehouseID int64
	// ActiveOnly restricts the listing to offers whose end date has not
	// passed.
	ActiveOnly bool
}

type Response struct {
	ID                 string    `json:"id"`
	DiscountPercentage float64   `json:"discount_percentage"`
	Percentage         string    `json:"percentage"`
	StartDate          string    `json:"start_date"`
	EndDate            string    `json:"end_date"`
	WarehouseID        string    `json:"warehouse_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
