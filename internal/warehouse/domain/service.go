package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rahvarz/bazar/internal/principal"
	"github.com/rahvarz/bazar/pkg/db/pagination"
)

var ErrNotFound = errors.New("warehouse_not_found")

type Service interface {
	Create(ctx context.Context, actor principal.Principal, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, *pagination.PageInfo, error)
	ListMine(ctx context.Context, actor principal.Principal, req ListRequest) ([]Response, *pagination.PageInfo, error)
	Get(ctx context.Context, id int64) (*Response, error)
	Update(ctx context.Context, actor principal.Principal, id int64, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, actor principal.Principal, id int64) error
}

type CreateRequest struct {
	PurePrice      float64 `json:"pure_price"`
	Amount         int64   `json:"amount"`
	PaymentDate    string  `json:"payment_date"`
	SettlementDate *string `json:"settlement_date"`
	ExpiryDate     string  `json:"expiry_date"`
	ProductID      string  `json:"product_id"`
}

// UpdateRequest carries patch semantics: only present fields are validated
// and applied. ExpiryDate is rejected outright, it is immutable after create.
type UpdateRequest struct {
	PurePrice      *float64 `json:"pure_price"`
	Amount         *int64   `json:"amount"`
	PaymentDate    *string  `json:"payment_date"`
	SettlementDate *string  `json:"settlement_date"`
	ExpiryDate     *string  `json:"expiry_date"`
}

type ListRequest struct {
	Pagination pagination.Pagination
	OrderBy    string
	Direction  string
	ProductID  int64
}

type Response struct {
	ID             string    `json:"id"`
	PurePrice      float64   `json:"pure_price"`
	Amount         int64     `json:"amount"`
	PaymentDate    string    `json:"payment_date"`
	SettlementDate *string   `json:"settlement_date"`
	ExpiryDate     string    `json:"expiry_date"`
	ProductID      string    `json:"product_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
