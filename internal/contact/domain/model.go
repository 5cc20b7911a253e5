package domain

import "time"

// ContactType is a seeded lookup with a bilingual label pair.
type ContactType struct {
	ID     int64  `json:"id" gorm:"primaryKey"`
	NameEN string `json:"name_en" gorm:"type:text;not null;uniqueIndex"`
	NameFA string `json:"name_fa" gorm:"type:text;not null"`
}

func (ContactType) TableName() string { return "contact_types" }

type Contact struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Link          string    `json:"link" gorm:"type:text;not null"`
	ContactTypeID int64     `json:"contact_type_id" gorm:"not null;index"`
	UserID        int64     `json:"user_id" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"not null"`
}

func (Contact) TableName() string { return "contacts" }
