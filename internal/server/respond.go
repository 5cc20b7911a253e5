package server

import "github.com/gin-gonic/gin"

// envelope is the uniform response body. Data is present on success
// only when the operation returns a payload; Errors carries field
// messages for validation failures.
type envelope struct {
	Successful bool   `json:"successful"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Errors     any    `json:"errors,omitempty"`
	StatusCode int    `json:"status_code"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{
		Successful: true,
		Message:    message,
		Data:       data,
		StatusCode: status,
	})
}

// respondPage wraps a listing with its page info under a single data
// object.
func respondPage(c *gin.Context, status int, message string, items any, page any) {
	respond(c, status, message, gin.H{
		"items":     items,
		"page_info": page,
	})
}
