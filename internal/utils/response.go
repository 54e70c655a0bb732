package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hyperhive-backend/internal/errs"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string, err error) {
	response := APIResponse{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(statusCode, response)
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message, nil)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

func InternalErrorResponse(c *gin.Context, message string, err error) {
	ErrorResponse(c, http.StatusInternalServerError, message, err)
}

func NotFoundResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message, nil)
}

// FromError maps domain errors to HTTP status codes so handlers do not
// inspect error strings.
func FromError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, message, err)
	case errors.Is(err, errs.ErrConflict):
		ErrorResponse(c, http.StatusConflict, message, err)
	case errors.Is(err, errs.ErrValidation):
		ErrorResponse(c, http.StatusBadRequest, message, err)
	default:
		ErrorResponse(c, http.StatusInternalServerError, message, err)
	}
}
