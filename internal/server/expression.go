package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	expressiondomain "github.com/rahvarz/bazar/internal/expression/domain"
)

// SetExpression records, flips or clears the caller's like/dislike on a
// product. A null action clears the signal while keeping the row, so
// the view counter keeps counting this visitor once.
func (s *Server) SetExpression(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Action *string `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	resp, err := s.expressionSvc.Set(c.Request.Context(), actorFrom(c), expressiondomain.SetRequest{
		ProductID: snowflake.ID(productID).String(),
		Action:    req.Action,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "expression recorded", resp)
}

func (s *Server) GetMyExpression(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	resp, err := s.expressionSvc.GetMine(c.Request.Context(), actorFrom(c), productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "expression", resp)
}
