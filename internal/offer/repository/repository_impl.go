package repository

import (
	"context"
	"time"

	"github.com/rahvarz/bazar/internal/offer/domain"
	"github.com/rahvarz/bazar/pkg/db/option"
	"github.com/rahvarz/bazar/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db    *gorm.DB
	store repository.Repository[domain.Offer]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db, store: repository.ProvideStore[domain.Offer](db)}
}

func (r *repo) Create(ctx context.Context, offer *domain.Offer) error {
	return r.store.Create(ctx, offer)
}

func (r *repo) FindByID(ctx context.Context, id int64) (*domain.Offer, error) {
	return r.store.FindByID(ctx, id)
}

func (r *repo) List(ctx context.Context, filter domain.ListFilter, opts ...option.QueryOption) ([]*domain.Offer, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.Offer{})
	if filter.WarehouseID != 0 {
		base = base.Where("warehouse_id = ?", filter.WarehouseID)
	}
	if filter.OwnerID != 0 {
		base = base.Where(`warehouse_id IN (
			SELECT warehouses.id FROM warehouses
			JOIN products ON products.id = warehouses.product_id
			WHERE products.user_id = ?)`, filter.OwnerID)
	}
	if filter.EndsOnOrAfter != nil {
		base = base.Where("end_date >= ?", *filter.EndsOnOrAfter)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stmt := base
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var items []*domain.Offer
	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) Update(ctx context.Context, id int64, mutate func(*domain.Offer) error) (*domain.Offer, error) {
	return r.store.Update(ctx, id, func(_ *gorm.DB, row *domain.Offer) error {
		return mutate(row)
	})
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.store.Delete(ctx, id, nil)
}

func (r *repo) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("end_date < ?", cutoff).
		Delete(&domain.Offer{})
	return res.RowsAffected, res.Error
}
