package domain

import "context"

type Repository interface {
	Create(ctx context.Context, expression *Expression) error
	FindByUserAndProduct(ctx context.Context, userID, productID int64) (*Expression, error)
	Update(ctx context.Context, id int64, mutate func(*Expression) error) (*Expression, error)
}
