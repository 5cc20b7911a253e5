package domain

import "time"

type Image struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	IsMain    bool      `json:"is_main" gorm:"not null;default:false"`
	ProductID int64     `json:"product_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (Image) TableName() string { return "images" }
