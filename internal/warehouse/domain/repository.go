package domain

import (
	"context"
	"time"

	"github.com/rahvarz/bazar/pkg/db/option"
)

type ListFilter struct {
	ProductID int64
	OwnerID   int64
}

type Repository interface {
	Create(ctx context.Context, warehouse *Warehouse) error
	FindByID(ctx context.Context, id int64) (*Warehouse, error)
	List(ctx context.Context, filter ListFilter, opts ...option.QueryOption) ([]*Warehouse, int64, error)
	ListByProduct(ctx context.Context, productID int64) ([]*Warehouse, error)
	Update(ctx context.Context, id int64, mutate func(*Warehouse) error) (*Warehouse, error)
	// Delete removes the batch and any offers attached to it, in one
	// transaction holding the batch row lock.
	Delete(ctx context.Context, id int64) error

	// Sweep queries.
	ZeroAmountProductIDs(ctx context.Context) ([]int64, error)
	ExpiredProductIDs(ctx context.Context, now time.Time) ([]int64, error)
}
