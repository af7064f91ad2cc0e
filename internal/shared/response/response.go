package response

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Body is the error shape every failing endpoint returns.
type Body struct {
	Message string `json:"message"`
}

// Error writes the plain {message} error body and logs the underlying
// cause. Internal detail stays in the log, never in the response.
func Error(c *gin.Context, status int, message string, cause error) {
	log.Error().
		Err(cause).
		Str("request_id", c.GetString("request_id")).
		Int("status", status).
		Str("path", c.Request.URL.Path).
		Msg(message)

	c.JSON(status, Body{Message: message})
}

// Message writes a bare {message} success body.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, Body{Message: message})
}
