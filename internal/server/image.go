package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	imagedomain "github.com/rahvarz/bazar/internal/image/domain"
)

func (s *Server) CreateImage(c *gin.Context) {
	var req imagedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.imageSvc.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "image created", resp)
}

func (s *Server) ListProductImages(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	items, err := s.imageSvc.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "images", items)
}

func (s *Server) UpdateImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req imagedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.imageSvc.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "image updated", resp)
}

func (s *Server) DeleteImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := s.imageSvc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "image deleted", nil)
}
