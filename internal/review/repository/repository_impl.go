package repository

import (
	"context"

	"github.com/rahvarz/bazar/internal/review/domain"
	"github.com/rahvarz/bazar/pkg/db/option"
	"github.com/rahvarz/bazar/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db       *gorm.DB
	reviews  repository.Repository[domain.Review]
	comments repository.Repository[domain.Comment]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{
		db:       db,
		reviews:  repository.ProvideStore[domain.Review](db),
		comments: repository.ProvideStore[domain.Comment](db),
	}
}

func (r *repo) Create(ctx context.Context, review *domain.Review) error {
	return r.reviews.Create(ctx, review)
}

func (r *repo) FindByID(ctx context.Context, id int64) (*domain.Review, error) {
	return r.reviews.FindByID(ctx, id)
}

func (r *repo) List(ctx context.Context, filter domain.ListFilter, opts ...option.QueryOption) ([]*domain.Review, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.Review{})
	if filter.ProductID != 0 {
		base = base.Where("product_id = ?", filter.ProductID)
	}
	if filter.UserID != 0 {
		base = base.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stmt := base
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var items []*domain.Review
	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) Update(ctx context.Context, id int64, mutate func(*domain.Review) error) (*domain.Review, error) {
	return r.reviews.Update(ctx, id, func(_ *gorm.DB, row *domain.Review) error {
		return mutate(row)
	})
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.reviews.Delete(ctx, id, func(tx *gorm.DB, _ *domain.Review) error {
		return tx.Exec(`DELETE FROM comments WHERE review_id = ?`, id).Error
	})
}

func (r *repo) CreateComment(ctx context.Context, comment *domain.Comment) error {
	return r.comments.Create(ctx, comment)
}

func (r *repo) FindCommentByID(ctx context.Context, id int64) (*domain.Comment, error) {
	return r.comments.FindByID(ctx, id)
}

func (r *repo) FindCommentByReview(ctx context.Context, reviewID int64) (*domain.Comment, error) {
	return r.comments.FindOne(ctx, &domain.Comment{ReviewID: reviewID})
}

func (r *repo) UpdateComment(ctx context.Context, id int64, mutate func(*domain.Comment) error) (*domain.Comment, error) {
	return r.comments.Update(ctx, id, func(_ *gorm.DB, row *domain.Comment) error {
		return mutate(row)
	})
}

func (r *repo) DeleteComment(ctx context.Context, id int64) error {
	return r.comments.Delete(ctx, id, nil)
}
