package domain

import (
	"context"
	"time"

	"github.com/rahvarz/bazar/internal/principal"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token to the acting principal.
	Authenticate(ctx context.Context, token string) (principal.Principal, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	RequestEmailVerification(ctx context.Context, actor principal.Principal) error
	VerifyEmail(ctx context.Context, actor principal.Principal, code string) error

	// PurgeExpiredCodes removes stale one-time codes; run by the cleanup job.
	PurgeExpiredCodes(ctx context.Context) (int64, error)
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	Gender   string `json:"gender"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type UserResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Mobile          string     `json:"mobile,omitempty"`
	Gender          string     `json:"gender,omitempty"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
