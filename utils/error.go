package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service-layer error taxonomy. Handlers map these onto HTTP status codes;
// everything else is an internal error.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrForbidden        = errors.New("forbidden")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError translates a service error into the right HTTP status.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, ErrNotFound):
		JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, ErrConflict):
		JSONError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, ErrForbidden):
		JSONError(c, http.StatusForbidden, "forbidden", err.Error())
	default:
		JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
