package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/rahvarz/bazar/internal/auth/domain"
	categorydomain "github.com/rahvarz/bazar/internal/category/domain"
	contactdomain "github.com/rahvarz/bazar/internal/contact/domain"
	expressiondomain "github.com/rahvarz/bazar/internal/expression/domain"
	imagedomain "github.com/rahvarz/bazar/internal/image/domain"
	offerdomain "github.com/rahvarz/bazar/internal/offer/domain"
	"github.com/rahvarz/bazar/internal/ownership"
	productdomain "github.com/rahvarz/bazar/internal/product/domain"
	reviewdomain "github.com/rahvarz/bazar/internal/review/domain"
	warehousedomain "github.com/rahvarz/bazar/internal/warehouse/domain"
	"github.com/rahvarz/bazar/pkg/db"
	"github.com/rahvarz/bazar/pkg/repository"
	"github.com/rahvarz/bazar/pkg/validation"
	"gorm.io/gorm"
)

var errInvalidRequest = errors.New("invalid_request")

// ErrorHandlingMiddleware converts errors attached to the context into
// the uniform envelope. Handlers never write error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, body := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, body)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, envelope) {
	var ve *validation.Errors
	if errors.As(err, &ve) {
		return http.StatusBadRequest, envelope{
			Message:    ve.Error(),
			Errors:     ve.Fields(),
			StatusCode: http.StatusBadRequest,
		}
	}

	var fe *ownership.ErrForbidden
	if errors.As(err, &fe) {
		return http.StatusForbidden, envelope{
			Message:    fe.Error(),
			StatusCode: http.StatusForbidden,
		}
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		status = http.StatusUnauthorized
		message = err.Error()

	case errors.Is(err, categorydomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, warehousedomain.ErrNotFound),
		errors.Is(err, offerdomain.ErrNotFound),
		errors.Is(err, imagedomain.ErrNotFound),
		errors.Is(err, expressiondomain.ErrNotFound),
		errors.Is(err, reviewdomain.ErrNotFound),
		errors.Is(err, reviewdomain.ErrCommentNotFound),
		errors.Is(err, contactdomain.ErrNotFound),
		errors.Is(err, contactdomain.ErrTypeNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, repository.ErrNotFoundOrLocked),
		errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
		message = err.Error()

	case errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, authdomain.ErrInvalidCode),
		errors.Is(err, reviewdomain.ErrCommentExists),
		errors.Is(err, errInvalidRequest):
		status = http.StatusBadRequest
		message = err.Error()

	// Uniqueness is pre-checked in the services, but two concurrent creates
	// can both pass the check; the index rejection still belongs to the
	// caller, not the 500 bucket.
	case db.IsDuplicateKeyErr(err):
		status = http.StatusBadRequest
		message = "already exists"
	}

	return status, envelope{
		Message:    message,
		StatusCode: status,
	}
}
