package domain

import "time"

// Warehouse is one purchased lot of a product: its own cost, quantity and
// expiry. Settlement marks the lot financially closed once the amount hits
// zero.
type Warehouse struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	PurePrice      float64    `json:"pure_price" gorm:"not null"`
	Amount         int64      `json:"amount" gorm:"not null"`
	PaymentDate    time.Time  `json:"payment_date" gorm:"not null"`
	SettlementDate *time.Time `json:"settlement_date,omitempty"`
	ExpiryDate     time.Time  `json:"expiry_date" gorm:"not null;index"`
	ProductID      int64      `json:"product_id" gorm:"not null;index"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"not null"`
}

func (Warehouse) TableName() string { return "warehouses" }
