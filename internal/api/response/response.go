// Package response defines the uniform JSON envelope all endpoints use.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body shape of every response, success or failure.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// OK writes a 200 with the standard envelope.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes an error status with the standard envelope and no data.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}
