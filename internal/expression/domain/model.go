package domain

import "time"

const (
	ActionLike    = "like"
	ActionDislike = "dislike"
)

// Expression is one user's signal against one product. A null action means
// the signal was cleared; the row still counts as a view.
type Expression struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:ux_expressions_user_product,priority:1"`
	ProductID int64     `json:"product_id" gorm:"not null;uniqueIndex:ux_expressions_user_product,priority:2"`
	Action    *string   `json:"action" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (Expression) TableName() string { return "expressions" }
