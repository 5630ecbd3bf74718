package response

import (
	"github.com/gin-gonic/gin"
)

// Body is the standardized API response envelope:
// {success, data|message, count?}.
type Body struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a successful JSON response with the given status code and data.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Body{Success: true, Data: data})
}

// SuccessCount sends a successful response for list payloads, including the
// element count alongside the data.
func SuccessCount(c *gin.Context, statusCode, count int, data interface{}) {
	c.JSON(statusCode, Body{Success: true, Count: &count, Data: data})
}

// SuccessMessage sends a successful response carrying only a message.
func SuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Body{Success: true, Message: message})
}

// Fail sends an error response with a descriptive message.
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Body{Success: false, Message: message})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Body{Success: false, Message: message})
}
