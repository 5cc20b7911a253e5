package repository

import (
	"context"
	"time"

	"github.com/rahvarz/bazar/internal/warehouse/domain"
	"github.com/rahvarz/bazar/pkg/db/option"
	"github.com/rahvarz/bazar/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db    *gorm.DB
	store repository.Repository[domain.Warehouse]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db, store: repository.ProvideStore[domain.Warehouse](db)}
}

func (r *repo) Create(ctx context.Context, warehouse *domain.Warehouse) error {
	return r.store.Create(ctx, warehouse)
}

func (r *repo) FindByID(ctx context.Context, id int64) (*domain.Warehouse, error) {
	return r.store.FindByID(ctx, id)
}

func (r *repo) List(ctx context.Context, filter domain.ListFilter, opts ...option.QueryOption) ([]*domain.Warehouse, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.Warehouse{})
	if filter.ProductID != 0 {
		base = base.Where("product_id = ?", filter.ProductID)
	}
	if filter.OwnerID != 0 {
		base = base.Where("product_id IN (SELECT id FROM products WHERE user_id = ?)", filter.OwnerID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stmt := base
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var items []*domain.Warehouse
	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) ListByProduct(ctx context.Context, productID int64) ([]*domain.Warehouse, error) {
	return r.store.Find(ctx, &domain.Warehouse{ProductID: productID})
}

func (r *repo) Update(ctx context.Context, id int64, mutate func(*domain.Warehouse) error) (*domain.Warehouse, error) {
	return r.store.Update(ctx, id, func(_ *gorm.DB, row *domain.Warehouse) error {
		return mutate(row)
	})
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.store.Delete(ctx, id, func(tx *gorm.DB, _ *domain.Warehouse) error {
		return tx.Exec(`DELETE FROM offers WHERE warehouse_id = ?`, id).Error
	})
}

func (r *repo) ZeroAmountProductIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table("warehouses").
		Select("product_id").
		Group("product_id").
		Having("SUM(amount) = 0").
		Pluck("product_id", &ids).Error
	return ids, err
}

func (r *repo) ExpiredProductIDs(ctx context.Context, now time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table("warehouses").
		Distinct("product_id").
		Where("expiry_date < ?", now).
		Pluck("product_id", &ids).Error
	return ids, err
}
