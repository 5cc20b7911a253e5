package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reviewdomain "github.com/rahvarz/bazar/internal/review/domain"
)

func (s *Server) CreateReview(c *gin.Context) {
	var req reviewdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.reviewSvc.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "review created", resp)
}

func (s *Server) reviewListRequest(c *gin.Context) (reviewdomain.ListRequest, bool) {
	page, ok := pageQuery(c)
	if !ok {
		return reviewdomain.ListRequest{}, false
	}
	column, direction := orderParams(c)
	return reviewdomain.ListRequest{
		Pagination: page,
		OrderBy:    column,
		Direction:  direction,
	}, true
}

func (s *Server) ListProductReviews(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}
	req, ok := s.reviewListRequest(c)
	if !ok {
		return
	}

	items, pageInfo, err := s.reviewSvc.ListByProduct(c.Request.Context(), productID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondPage(c, http.StatusOK, "reviews", items, pageInfo)
}

func (s *Server) ListMyReviews(c *gin.Context) {
	req, ok := s.reviewListRequest(c)
	if !ok {
		return
	}

	items, pageInfo, err := s.reviewSvc.ListMine(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondPage(c, http.StatusOK, "reviews", items, pageInfo)
}

func (s *Server) GetReview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	resp, err := s.reviewSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "review", resp)
}

func (s *Server) UpdateReview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req reviewdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.reviewSvc.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "review updated", resp)
}

func (s *Server) DeleteReview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := s.reviewSvc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "review deleted", nil)
}

func (s *Server) CreateComment(c *gin.Context) {
	var req reviewdomain.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.reviewSvc.CreateComment(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "comment created", resp)
}

func (s *Server) UpdateComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req reviewdomain.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.reviewSvc.UpdateComment(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "comment updated", resp)
}

func (s *Server) DeleteComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := s.reviewSvc.DeleteComment(c.Request.Context(), actorFrom(c), id); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "comment deleted", nil)
}
