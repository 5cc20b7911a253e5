package domain

import (
	"context"
	"time"

	"github.com/rahvarz/bazar/pkg/db/option"
)

type ListFilter struct {
	CategoryID int64
	OwnerID    int64
	Name       string
}

type Repository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	List(ctx context.Context, filter ListFilter, opts ...option.QueryOption) ([]*Product, int64, error)
	Update(ctx context.Context, id int64, mutate func(*Product) error) (*Product, error)
	// DeleteCascade removes the product together with its inventory batches,
	// offers, images, expressions, reviews and review comments, all in one
	// transaction holding the product row lock.
	DeleteCascade(ctx context.Context, id int64) error
	CountWarehouses(ctx context.Context, productID int64) (int64, error)

	// OrphanIDs returns products with no inventory batches that were
	// created before cutoff.
	OrphanIDs(ctx context.Context, cutoff time.Time) ([]int64, error)
}
