package domain

import (
	"context"
	"time"
)

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	FindUserByID(ctx context.Context, id int64) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, id int64, mutate func(*User) error) (*User, error)

	CreateSession(ctx context.Context, session *Session) error
	FindSessionByToken(ctx context.Context, token string) (*Session, error)
	RevokeSession(ctx context.Context, token string, at time.Time) error

	CreateCode(ctx context.Context, code *OneTimeCode) error
	// ConsumeCode marks the newest matching unconsumed, unexpired code as used.
	// Returns ErrInvalidCode when no such code exists.
	ConsumeCode(ctx context.Context, userID int64, purpose, code string, now time.Time) error
	DeleteExpiredCodes(ctx context.Context, before time.Time) (int64, error)
}
