package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/rahvarz/bazar/internal/auth/domain"
	"github.com/rahvarz/bazar/internal/auth/password"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/config"
	"github.com/rahvarz/bazar/internal/principal"
	"github.com/rahvarz/bazar/internal/providers/email"
	"github.com/rahvarz/bazar/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
	Mail  email.Provider
}

type Service struct {
	cfg   config.Config
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
	mail  email.Provider
}

func New(p Params) domain.Service {
	return &Service{
		cfg:   p.Cfg,
		log:   p.Log.Named("auth.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		mail:  p.Mail,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserResponse, error) {
	ve := validation.New()

	name := strings.TrimSpace(req.Name)
	ve.Required("name", name)
	if len(name) > 255 {
		ve.Add("name", "must be at most 255 characters")
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	ve.Required("email", emailAddr)
	if emailAddr != "" {
		if _, err := mail.ParseAddress(emailAddr); err != nil {
			ve.Add("email", "must be a valid email address")
		} else if !strings.HasSuffix(emailAddr, s.cfg.EmailSuffix) {
			ve.Add("email", fmt.Sprintf("must end with %s", s.cfg.EmailSuffix))
		}
	}

	if len(req.Password) < 8 {
		ve.Add("password", "must be at least 8 characters")
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindUserByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &domain.User{
		ID:           s.genID.Generate().Int64(),
		Name:         name,
		Email:        emailAddr,
		PasswordHash: hash,
		Mobile:       strings.TrimSpace(req.Mobile),
		Gender:       strings.TrimSpace(req.Gender),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.FindUserByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	session := &domain.Session{
		ID:        s.genID.Generate().Int64(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.cfg.SessionTTL),
		CreatedAt: now,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      toUserResponse(user),
	}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.repo.RevokeSession(ctx, token, s.clock.Now())
}

func (s *Service) Authenticate(ctx context.Context, token string) (principal.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return principal.Principal{}, domain.ErrInvalidSession
	}

	session, err := s.repo.FindSessionByToken(ctx, token)
	if err != nil {
		return principal.Principal{}, err
	}
	if session == nil {
		return principal.Principal{}, domain.ErrInvalidSession
	}
	if session.RevokedAt != nil {
		return principal.Principal{}, domain.ErrSessionRevoked
	}
	if s.clock.Now().After(session.ExpiresAt) {
		return principal.Principal{}, domain.ErrSessionExpired
	}

	user, err := s.repo.FindUserByID(ctx, session.UserID)
	if err != nil {
		return principal.Principal{}, err
	}
	if user == nil {
		return principal.Principal{}, domain.ErrInvalidSession
	}

	return principal.Principal{UserID: user.ID, Email: user.Email}, nil
}

func (s *Service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.repo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return err
	}
	if user == nil {
		// Do not leak whether the address is registered.
		return nil
	}
	return s.issueCode(ctx, user, domain.CodePurposePasswordReset, "Your password reset code")
}

func (s *Service) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	user, err := s.repo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidCode
	}

	if len(req.NewPassword) < 8 {
		ve := validation.New()
		ve.Add("new_password", "must be at least 8 characters")
		return ve.Err()
	}

	if err := s.repo.ConsumeCode(ctx, user.ID, domain.CodePurposePasswordReset, strings.TrimSpace(req.Code), s.clock.Now()); err != nil {
		return err
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	_, err = s.repo.UpdateUser(ctx, user.ID, func(u *domain.User) error {
		u.PasswordHash = hash
		u.UpdatedAt = s.clock.Now()
		return nil
	})
	return err
}

func (s *Service) RequestEmailVerification(ctx context.Context, actor principal.Principal) error {
	user, err := s.repo.FindUserByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.EmailVerifiedAt != nil {
		return nil
	}
	return s.issueCode(ctx, user, domain.CodePurposeVerifyEmail, "Your email verification code")
}

func (s *Service) VerifyEmail(ctx context.Context, actor principal.Principal, code string) error {
	if err := s.repo.ConsumeCode(ctx, actor.UserID, domain.CodePurposeVerifyEmail, strings.TrimSpace(code), s.clock.Now()); err != nil {
		return err
	}

	now := s.clock.Now()
	_, err := s.repo.UpdateUser(ctx, actor.UserID, func(u *domain.User) error {
		u.EmailVerifiedAt = &now
		u.UpdatedAt = now
		return nil
	})
	return err
}

func (s *Service) PurgeExpiredCodes(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredCodes(ctx, s.clock.Now())
}

func (s *Service) issueCode(ctx context.Context, user *domain.User, purpose, subject string) error {
	code, err := numericCode(6)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	record := &domain.OneTimeCode{
		ID:        s.genID.Generate().Int64(),
		UserID:    user.ID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(s.cfg.CodeTTL),
		CreatedAt: now,
	}
	if err := s.repo.CreateCode(ctx, record); err != nil {
		return err
	}

	body := fmt.Sprintf("<p>Your code is <strong>%s</strong>. It expires in %d seconds.</p>",
		code, int(s.cfg.CodeTTL.Seconds()))
	if err := s.mail.Send(ctx, []string{user.Email}, subject, body); err != nil {
		s.log.Warn("failed to send one-time code",
			zap.String("purpose", purpose),
			zap.Error(err),
		)
	}
	return nil
}

func toUserResponse(user *domain.User) domain.UserResponse {
	return domain.UserResponse{
		ID:              snowflake.ID(user.ID).String(),
		Name:            user.Name,
		Email:           user.Email,
		Mobile:          user.Mobile,
		Gender:          user.Gender,
		EmailVerifiedAt: user.EmailVerifiedAt,
		CreatedAt:       user.CreatedAt,
	}
}

func numericCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
