package repository

import (
	"context"
	"errors"

	"github.com/rahvarz/bazar/pkg/db/option"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type store[T any] struct {
	db *gorm.DB
}

func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (r *store[T]) WithTrx(tx *gorm.DB) Repository[T] {
	return &store[T]{db: tx}
}

func (r *store[T]) Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error) {
	var result []*T
	stmt := r.buildQuery(ctx, query, opts...)
	err := stmt.Find(&result).Error
	return result, err
}

func (r *store[T]) FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error) {
	var result T
	stmt := r.buildQuery(ctx, query, opts...)
	err := stmt.First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *store[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var result T
	err := r.db.WithContext(ctx).First(&result, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *store[T]) Count(ctx context.Context, query *T) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(query).Where(query).Count(&count).Error
	return count, err
}

func (r *store[T]) Create(ctx context.Context, resource *T) error {
	return r.CreateInTrx(ctx, resource, nil)
}

// CreateInTrx inserts the row and runs sideEffects in the same transaction,
// so a failed side effect rolls the insert back.
func (r *store[T]) CreateInTrx(ctx context.Context, resource *T, sideEffects func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(resource).Error; err != nil {
			return err
		}
		if sideEffects != nil {
			return sideEffects(tx)
		}
		return nil
	})
}

// Update locks the row, applies mutate and saves. The lock is released on
// commit or rollback.
func (r *store[T]) Update(ctx context.Context, id int64, mutate func(tx *gorm.DB, row *T) error) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, &row, id); err != nil {
			return err
		}
		if err := mutate(tx, &row); err != nil {
			return err
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete locks the row, runs sideEffects (dependent-row cleanup) and removes it.
func (r *store[T]) Delete(ctx context.Context, id int64, sideEffects func(tx *gorm.DB, row *T) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row T
		if err := lockRow(tx, &row, id); err != nil {
			return err
		}
		if sideEffects != nil {
			if err := sideEffects(tx, &row); err != nil {
				return err
			}
		}
		return tx.Delete(&row).Error
	})
}

func lockRow[T any](tx *gorm.DB, row *T, id int64) error {
	stmt := tx
	// sqlite has no FOR UPDATE; its single writer serializes mutators anyway.
	if tx.Dialector.Name() != "sqlite" {
		stmt = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := stmt.First(row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFoundOrLocked
	}
	return err
}

func (r *store[T]) buildQuery(ctx context.Context, filter *T, opts ...option.QueryOption) *gorm.DB {
	db := r.db.WithContext(ctx).Where(filter)

	for _, opt := range opts {
		db = opt.Apply(db)
	}

	return db
}
