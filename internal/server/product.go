package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	productdomain "github.com/rahvarz/bazar/internal/product/domain"
)

func (s *Server) CreateProduct(c *gin.Context) {
	var req productdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "product created", resp)
}

func (s *Server) productListRequest(c *gin.Context) (productdomain.ListRequest, bool) {
	page, ok := pageQuery(c)
	if !ok {
		return productdomain.ListRequest{}, false
	}
	column, direction := orderParams(c)

	req := productdomain.ListRequest{
		Pagination: page,
		OrderBy:    column,
		Direction:  direction,
		Name:       strings.TrimSpace(c.Query("name")),
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, errInvalidRequest)
			return req, false
		}
		req.CategoryID = parsed.Int64()
	}
	return req, true
}

func (s *Server) ListProducts(c *gin.Context) {
	req, ok := s.productListRequest(c)
	if !ok {
		return
	}

	items, pageInfo, err := s.productSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondPage(c, http.StatusOK, "products", items, pageInfo)
}

func (s *Server) ListMyProducts(c *gin.Context) {
	req, ok := s.productListRequest(c)
	if !ok {
		return
	}

	items, pageInfo, err := s.productSvc.ListMine(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondPage(c, http.StatusOK, "products", items, pageInfo)
}

func (s *Server) GetProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	resp, err := s.productSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "product", resp)
}

func (s *Server) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req productdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.productSvc.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "product updated", resp)
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := s.productSvc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "product deleted", nil)
}
