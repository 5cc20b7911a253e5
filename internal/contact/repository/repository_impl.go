package repository

import (
	"context"

	"github.com/rahvarz/bazar/internal/contact/domain"
	"github.com/rahvarz/bazar/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	contacts repository.Repository[domain.Contact]
	types    repository.Repository[domain.ContactType]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{
		contacts: repository.ProvideStore[domain.Contact](db),
		types:    repository.ProvideStore[domain.ContactType](db),
	}
}

func (r *repo) Create(ctx context.Context, contact *domain.Contact) error {
	return r.contacts.Create(ctx, contact)
}

func (r *repo) FindByID(ctx context.Context, id int64) (*domain.Contact, error) {
	return r.contacts.FindByID(ctx, id)
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]*domain.Contact, error) {
	return r.contacts.Find(ctx, &domain.Contact{UserID: userID})
}

func (r *repo) Update(ctx context.Context, id int64, mutate func(*domain.Contact) error) (*domain.Contact, error) {
	return r.contacts.Update(ctx, id, func(_ *gorm.DB, row *domain.Contact) error {
		return mutate(row)
	})
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.contacts.Delete(ctx, id, nil)
}

func (r *repo) FindType(ctx context.Context, id int64) (*domain.ContactType, error) {
	return r.types.FindByID(ctx, id)
}

func (r *repo) ListTypes(ctx context.Context) ([]*domain.ContactType, error) {
	return r.types.Find(ctx, &domain.ContactType{})
}
