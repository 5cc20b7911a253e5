package repository

import (
	"context"
	"errors"

	"github.com/rahvarz/bazar/pkg/db/option"
	"gorm.io/gorm"
)

// ErrNotFoundOrLocked reports that a mutation's lock target does not exist.
// The HTTP layer surfaces it as a plain not-found.
var ErrNotFoundOrLocked = errors.New("not_found_or_locked")

// Repository is the generic store every entity repository composes.
// Create/Update/Delete run inside a transaction; Update and Delete take a
// row-level write lock on the target before mutating, which serializes
// concurrent mutators of the same row. Reads are lock-free.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	Count(ctx context.Context, query *T) (int64, error)
	Create(ctx context.Context, resource *T) error
	CreateInTrx(ctx context.Context, resource *T, sideEffects func(tx *gorm.DB) error) error
	Update(ctx context.Context, id int64, mutate func(tx *gorm.DB, row *T) error) (*T, error)
	Delete(ctx context.Context, id int64, sideEffects func(tx *gorm.DB, row *T) error) error
}
