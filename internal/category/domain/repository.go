package domain

import (
	"context"

	"github.com/rahvarz/bazar/pkg/db/option"
)

type Repository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context, opts ...option.QueryOption) ([]*Category, int64, error)
	Update(ctx context.Context, id int64, mutate func(*Category) error) (*Category, error)
	Delete(ctx context.Context, id int64) error
	CountProducts(ctx context.Context, categoryID int64) (int64, error)
}
