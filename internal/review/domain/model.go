package domain

import "time"

type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Rating    int       `json:"rating" gorm:"not null"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	ProductID int64     `json:"product_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (Review) TableName() string { return "reviews" }

// Comment is the single optional note attached to a review. At least one of
// text or image must be present.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Text      *string   `json:"text,omitempty" gorm:"type:text"`
	ImageURL  *string   `json:"image_url,omitempty" gorm:"type:text"`
	ReviewID  int64     `json:"review_id" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (Comment) TableName() string { return "comments" }
