package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/rahvarz/bazar/internal/auth/domain"
)

func (s *Server) Register(c *gin.Context) {
	var req authdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "registered", resp)
}

func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "logged in", resp)
}

func (s *Server) Logout(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if err := s.authSvc.Logout(c.Request.Context(), token); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "logged out", nil)
}

func (s *Server) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	if err := s.authSvc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		AbortWithError(c, err)
		return
	}

	// Identical response whether or not the account exists.
	respond(c, http.StatusOK, "if the account exists, a code has been sent", nil)
}

func (s *Server) ResetPassword(c *gin.Context) {
	var req authdomain.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	if err := s.authSvc.ResetPassword(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "password reset", nil)
}

func (s *Server) RequestEmailVerification(c *gin.Context) {
	if err := s.authSvc.RequestEmailVerification(c.Request.Context(), actorFrom(c)); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "verification code sent", nil)
}

func (s *Server) VerifyEmail(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	if err := s.authSvc.VerifyEmail(c.Request.Context(), actorFrom(c), req.Code); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "email verified", nil)
}
