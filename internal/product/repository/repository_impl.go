package repository

import (
	"context"
	"time"

	"github.com/rahvarz/bazar/internal/product/domain"
	"github.com/rahvarz/bazar/pkg/db/option"
	"github.com/rahvarz/bazar/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db    *gorm.DB
	store repository.Repository[domain.Product]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db, store: repository.ProvideStore[domain.Product](db)}
}

func (r *repo) Create(ctx context.Context, product *domain.Product) error {
	return r.store.Create(ctx, product)
}

func (r *repo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return r.store.FindByID(ctx, id)
}

func (r *repo) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.store.FindOne(ctx, &domain.Product{Name: name})
}

func (r *repo) List(ctx context.Context, filter domain.ListFilter, opts ...option.QueryOption) ([]*domain.Product, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.Product{})
	if filter.CategoryID != 0 {
		base = base.Where("category_id = ?", filter.CategoryID)
	}
	if filter.OwnerID != 0 {
		base = base.Where("user_id = ?", filter.OwnerID)
	}
	if filter.Name != "" {
		base = base.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stmt := base
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var items []*domain.Product
	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) Update(ctx context.Context, id int64, mutate func(*domain.Product) error) (*domain.Product, error) {
	return r.store.Update(ctx, id, func(_ *gorm.DB, row *domain.Product) error {
		return mutate(row)
	})
}

// DeleteCascade deletes dependents explicitly rather than relying on the
// store's foreign-key behavior, so the same code path works on every dialect.
func (r *repo) DeleteCascade(ctx context.Context, id int64) error {
	return r.store.Delete(ctx, id, func(tx *gorm.DB, _ *domain.Product) error {
		if err := tx.Exec(
			`DELETE FROM comments WHERE review_id IN (SELECT id FROM reviews WHERE product_id = ?)`, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM reviews WHERE product_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM expressions WHERE product_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM images WHERE product_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			`DELETE FROM offers WHERE warehouse_id IN (SELECT id FROM warehouses WHERE product_id = ?)`, id,
		).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM warehouses WHERE product_id = ?`, id).Error
	})
}

func (r *repo) OrphanIDs(ctx context.Context, cutoff time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table("products").
		Where("created_at < ?", cutoff).
		Where("id NOT IN (SELECT DISTINCT product_id FROM warehouses)").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repo) CountWarehouses(ctx context.Context, productID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("warehouses").
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}
