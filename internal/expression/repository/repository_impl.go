package repository

import (
	"context"

	"github.com/rahvarz/bazar/internal/expression/domain"
	"github.com/rahvarz/bazar/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	store repository.Repository[domain.Expression]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{store: repository.ProvideStore[domain.Expression](db)}
}

func (r *repo) Create(ctx context.Context, expression *domain.Expression) error {
	return r.store.Create(ctx, expression)
}

func (r *repo) FindByUserAndProduct(ctx context.Context, userID, productID int64) (*domain.Expression, error) {
	return r.store.FindOne(ctx, &domain.Expression{UserID: userID, ProductID: productID})
}

func (r *repo) Update(ctx context.Context, id int64, mutate func(*domain.Expression) error) (*domain.Expression, error) {
	return r.store.Update(ctx, id, func(_ *gorm.DB, row *domain.Expression) error {
		return mutate(row)
	})
}
