package domain

import "context"

type Repository interface {
	Create(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id int64) (*Contact, error)
	ListByUser(ctx context.Context, userID int64) ([]*Contact, error)
	Update(ctx context.Context, id int64, mutate func(*Contact) error) (*Contact, error)
	Delete(ctx context.Context, id int64) error

	FindType(ctx context.Context, id int64) (*ContactType, error)
	ListTypes(ctx context.Context) ([]*ContactType, error)
}
