package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rahvarz/bazar/internal/principal"
	"go.uber.org/zap"
)

const principalKey = "bazar.principal"

// RequireAuth resolves the bearer token to a principal and stores it on
// the request context. Requests without a valid session never reach the
// handler.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{
				Message:    "missing bearer token",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}

		actor, err := s.authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			status, body := mapError(err)
			c.AbortWithStatusJSON(status, body)
			return
		}

		c.Set(principalKey, actor)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func actorFrom(c *gin.Context) principal.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(principal.Principal); ok {
			return p
		}
	}
	return principal.Principal{}
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if last := c.Errors.Last(); last != nil {
			fields = append(fields, zap.Error(last.Err))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
