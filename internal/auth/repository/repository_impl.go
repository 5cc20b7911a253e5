package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rahvarz/bazar/internal/auth/domain"
	"github.com/rahvarz/bazar/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db       *gorm.DB
	users    repository.Repository[domain.User]
	sessions repository.Repository[domain.Session]
	codes    repository.Repository[domain.OneTimeCode]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{
		db:       db,
		users:    repository.ProvideStore[domain.User](db),
		sessions: repository.ProvideStore[domain.Session](db),
		codes:    repository.ProvideStore[domain.OneTimeCode](db),
	}
}

func (r *repo) CreateUser(ctx context.Context, user *domain.User) error {
	return r.users.Create(ctx, user)
}

func (r *repo) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.users.FindByID(ctx, id)
}

func (r *repo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.users.FindOne(ctx, &domain.User{Email: email})
}

func (r *repo) UpdateUser(ctx context.Context, id int64, mutate func(*domain.User) error) (*domain.User, error) {
	return r.users.Update(ctx, id, func(_ *gorm.DB, row *domain.User) error {
		return mutate(row)
	})
}

func (r *repo) CreateSession(ctx context.Context, session *domain.Session) error {
	return r.sessions.Create(ctx, session)
}

func (r *repo) FindSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	return r.sessions.FindOne(ctx, &domain.Session{Token: token})
}

func (r *repo) RevokeSession(ctx context.Context, token string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("token = ? AND revoked_at IS NULL", token).
		Update("revoked_at", at).Error
}

func (r *repo) CreateCode(ctx context.Context, code *domain.OneTimeCode) error {
	return r.codes.Create(ctx, code)
}

func (r *repo) ConsumeCode(ctx context.Context, userID int64, purpose, code string, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row domain.OneTimeCode
		err := tx.
			Where("user_id = ? AND purpose = ? AND code = ?", userID, purpose, code).
			Where("consumed_at IS NULL AND expires_at >= ?", now).
			Order("created_at DESC").
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvalidCode
		}
		if err != nil {
			return err
		}
		return tx.Model(&row).Update("consumed_at", now).Error
	})
}

func (r *repo) DeleteExpiredCodes(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&domain.OneTimeCode{})
	return res.RowsAffected, res.Error
}
