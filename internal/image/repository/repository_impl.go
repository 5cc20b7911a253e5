package repository

import (
	"context"

	"github.com/rahvarz/bazar/internal/image/domain"
	"github.com/rahvarz/bazar/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db    *gorm.DB
	store repository.Repository[domain.Image]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db, store: repository.ProvideStore[domain.Image](db)}
}

func (r *repo) Create(ctx context.Context, image *domain.Image) error {
	return r.store.CreateInTrx(ctx, image, func(tx *gorm.DB) error {
		if !image.IsMain {
			return nil
		}
		return clearOtherMains(tx, image.ProductID, image.ID)
	})
}

func (r *repo) FindByID(ctx context.Context, id int64) (*domain.Image, error) {
	return r.store.FindByID(ctx, id)
}

func (r *repo) ListByProduct(ctx context.Context, productID int64) ([]*domain.Image, error) {
	return r.store.Find(ctx, &domain.Image{ProductID: productID})
}

func (r *repo) Update(ctx context.Context, id int64, mutate func(*domain.Image) error) (*domain.Image, error) {
	return r.store.Update(ctx, id, func(tx *gorm.DB, row *domain.Image) error {
		if err := mutate(row); err != nil {
			return err
		}
		if row.IsMain {
			return clearOtherMains(tx, row.ProductID, row.ID)
		}
		return nil
	})
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.store.Delete(ctx, id, nil)
}

func clearOtherMains(tx *gorm.DB, productID, keepID int64) error {
	return tx.Model(&domain.Image{}).
		Where("product_id = ? AND id <> ? AND is_main", productID, keepID).
		Update("is_main", false).Error
}
