package domain

import "context"

type Repository interface {
	// Create clears the previous main flag in the same transaction when
	// the new image is flagged main; a product has at most one main image.
	Create(ctx context.Context, image *Image) error
	FindByID(ctx context.Context, id int64) (*Image, error)
	ListByProduct(ctx context.Context, productID int64) ([]*Image, error)
	Update(ctx context.Context, id int64, mutate func(*Image) error) (*Image, error)
	Delete(ctx context.Context, id int64) error
}
