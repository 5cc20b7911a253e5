package repository

import (
	"context"

	"github.com/rahvarz/bazar/internal/category/domain"
	"github.com/rahvarz/bazar/pkg/db/option"
	"github.com/rahvarz/bazar/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db    *gorm.DB
	store repository.Repository[domain.Category]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db, store: repository.ProvideStore[domain.Category](db)}
}

func (r *repo) Create(ctx context.Context, category *domain.Category) error {
	return r.store.Create(ctx, category)
}

func (r *repo) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	return r.store.FindByID(ctx, id)
}

func (r *repo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.store.FindOne(ctx, &domain.Category{Name: name})
}

func (r *repo) List(ctx context.Context, opts ...option.QueryOption) ([]*domain.Category, int64, error) {
	total, err := r.store.Count(ctx, &domain.Category{})
	if err != nil {
		return nil, 0, err
	}
	items, err := r.store.Find(ctx, &domain.Category{}, opts...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) Update(ctx context.Context, id int64, mutate func(*domain.Category) error) (*domain.Category, error) {
	return r.store.Update(ctx, id, func(_ *gorm.DB, row *domain.Category) error {
		return mutate(row)
	})
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.store.Delete(ctx, id, nil)
}

func (r *repo) CountProducts(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("products").
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
