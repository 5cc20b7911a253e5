package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	warehousedomain "github.com/rahvarz/bazar/internal/warehouse/domain"
)

func (s *Server) CreateWarehouse(c *gin.Context) {
	var req warehousedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.warehouseSvc.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "warehouse created", resp)
}

func (s *Server) warehouseListRequest(c *gin.Context) (warehousedomain.ListRequest, bool) {
	page, ok := pageQuery(c)
	if !ok {
		return warehousedomain.ListRequest{}, false
	}
	column, direction := orderParams(c)

	req := warehousedomain.ListRequest{
		Pagination: page,
		OrderBy:    column,
		Direction:  direction,
	}
	if raw := strings.TrimSpace(c.Query("product_id")); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, errInvalidRequest)
			return req, false
		}
		req.ProductID = parsed.Int64()
	}
	return req, true
}

func (s *Server) ListWarehouses(c *gin.Context) {
	req, ok := s.warehouseListRequest(c)
	if !ok {
		return
	}

	items, pageInfo, err := s.warehouseSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondPage(c, http.StatusOK, "warehouses", items, pageInfo)
}

func (s *Server) ListMyWarehouses(c *gin.Context) {
	req, ok := s.warehouseListRequest(c)
	if !ok {
		return
	}

	items, pageInfo, err := s.warehouseSvc.ListMine(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondPage(c, http.StatusOK, "warehouses", items, pageInfo)
}

func (s *Server) GetWarehouse(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	resp, err := s.warehouseSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "warehouse", resp)
}

func (s *Server) UpdateWarehouse(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req warehousedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.warehouseSvc.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "warehouse updated", resp)
}

func (s *Server) DeleteWarehouse(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := s.warehouseSvc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "warehouse deleted", nil)
}
