package domain

import "time"

// Offer is a time-bounded discount attached to an inventory batch. It is
// visible while its end date is today or later; the sweep purges the rest.
type Offer struct {
	ID                 int64     `json:"id" gorm:"primaryKey"`
	DiscountPercentage float64   `json:"discount_percentage" gorm:"not null"`
	StartDate          time.Time `json:"start_date" gorm:"not null"`
	EndDate            time.Time `json:"end_date" gorm:"not null;index"`
	WarehouseID        int64     `json:"warehouse_id" gorm:"not null;index"`
	CreatedAt          time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"not null"`
}

func (Offer) TableName() string { return "offers" }
