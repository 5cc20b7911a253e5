package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	categorydomain "github.com/rahvarz/bazar/internal/category/domain"
)

func (s *Server) CreateCategory(c *gin.Context) {
	var req categorydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.categorySvc.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "category created", resp)
}

func (s *Server) ListCategories(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	column, direction := orderParams(c)

	items, pageInfo, err := s.categorySvc.List(c.Request.Context(), categorydomain.ListRequest{
		Pagination: page,
		OrderBy:    column,
		Direction:  direction,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondPage(c, http.StatusOK, "categories", items, pageInfo)
}

func (s *Server) GetCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	resp, err := s.categorySvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "category", resp)
}

func (s *Server) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req categorydomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.categorySvc.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "category updated", resp)
}

func (s *Server) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := s.categorySvc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "category deleted", nil)
}
