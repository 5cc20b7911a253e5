package domain

import "time"

type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Price       float64   `json:"price" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  int64     `json:"category_id" gorm:"not null;index"`
	UserID      int64     `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`
}

func (Product) TableName() string { return "products" }
