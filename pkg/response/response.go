package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the body of every error response
type ErrorBody struct {
	Detail string `json:"detail"`
}

// StatusMessage is the body returned by delete endpoints
type StatusMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Success sends data as a 200 response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Message sends a 200 status/message response
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, StatusMessage{
		Status:  "success",
		Message: message,
	})
}

// Error sends an error response
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Detail: message})
}

// BadRequest sends a 400 error response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response with a bearer challenge
func Unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	Error(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 error response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError sends a 500 error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
