package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	offerdomain "github.com/rahvarz/bazar/internal/offer/domain"
)

func (s *Server) CreateOffer(c *gin.Context) {
	var req offerdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.offerSvc.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "offer created", resp)
}

func (s *Server) offerListRequest(c *gin.Context) (offerdomain.ListRequest, bool) {
	page, ok := pageQuery(c)
	if !ok {
		return offerdomain.ListRequest{}, false
	}
	column, direction := orderParams(c)

	req := offerdomain.ListRequest{
		Pagination: page,
		OrderBy:    column,
		Direction:  direction,
	}
	if raw := strings.TrimSpace(c.Query("warehouse_id")); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, errInvalidRequest)
			return req, false
		}
		req.WarehouseID = parsed.Int64()
	}
	if raw := strings.TrimSpace(c.Query("active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			AbortWithError(c, errInvalidRequest)
			return req, false
		}
		req.ActiveOnly = active
	}
	return req, true
}

func (s *Server) ListOffers(c *gin.Context) {
	req, ok := s.offerListRequest(c)
	if !ok {
		return
	}

	items, pageInfo, err := s.offerSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondPage(c, http.StatusOK, "offers", items, pageInfo)
}

func (s *Server) ListMyOffers(c *gin.Context) {
	req, ok := s.offerListRequest(c)
	if !ok {
		return
	}

	items, pageInfo, err := s.offerSvc.ListMine(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondPage(c, http.StatusOK, "offers", items, pageInfo)
}

func (s *Server) GetOffer(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	resp, err := s.offerSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "offer", resp)
}

func (s *Server) UpdateOffer(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req offerdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.offerSvc.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "offer updated", resp)
}

func (s *Server) DeleteOffer(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := s.offerSvc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "offer deleted", nil)
}
