package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	contactdomain "github.com/rahvarz/bazar/internal/contact/domain"
)

func (s *Server) CreateContact(c *gin.Context) {
	var req contactdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.contactSvc.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "contact created", resp)
}

func (s *Server) ListMyContacts(c *gin.Context) {
	items, err := s.contactSvc.ListMine(c.Request.Context(), actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "contacts", items)
}

func (s *Server) ListContactTypes(c *gin.Context) {
	items, err := s.contactSvc.ListTypes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "contact types", items)
}

func (s *Server) UpdateContact(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req contactdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.contactSvc.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "contact updated", resp)
}

func (s *Server) DeleteContact(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := s.contactSvc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "contact deleted", nil)
}
