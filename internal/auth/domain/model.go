package domain

import "time"

type User struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"type:text;not null"`
	Email           string     `json:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash    string     `json:"-" gorm:"type:text;not null"`
	Mobile          string     `json:"mobile" gorm:"type:text"`
	Gender          string     `json:"gender" gorm:"type:text"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"not null"`
}

func (User) TableName() string { return "users" }

type Session struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	UserID    int64      `json:"user_id" gorm:"not null;index"`
	Token     string     `json:"-" gorm:"type:text;not null;uniqueIndex"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null"`
}

func (Session) TableName() string { return "sessions" }

const (
	CodePurposePasswordReset = "password_reset"
	CodePurposeVerifyEmail   = "verify_email"
)

// OneTimeCode is a short-lived numeric code mailed to the user. Valid for a
// fixed window and single-use.
type OneTimeCode struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	UserID     int64      `json:"user_id" gorm:"not null;index"`
	Code       string     `json:"-" gorm:"type:text;not null"`
	Purpose    string     `json:"purpose" gorm:"type:text;not null"`
	ExpiresAt  time.Time  `json:"expires_at" gorm:"not null"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" gorm:"not null"`
}

func (OneTimeCode) TableName() string { return "one_time_codes" }
