package domain

import (
	"context"
	"time"

	"github.com/rahvarz/bazar/pkg/db/option"
)

type ListFilter struct {
	WarehouseID int64
	OwnerID     int64
	// EndsOnOrAfter drops offers whose end date precedes it.
	EndsOnOrAfter *time.Time
}

type Repository interface {
	Create(ctx context.Context, offer *Offer) error
	FindByID(ctx context.Context, id int64) (*Offer, error)
	List(ctx context.Context, filter ListFilter, opts ...option.QueryOption) ([]*Offer, int64, error)
	Update(ctx context.Context, id int64, mutate func(*Offer) error) (*Offer, error)
	Delete(ctx context.Context, id int64) error
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
