// Package responses writes the API's error envelope. Every error body is
// {"error": <kind>, "message": <detail>}; in production the detail of
// internal failures is masked.
package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"djigbo-server/internal/config"
	"djigbo-server/internal/utils/apperr"
)

// ErrorResponse is the wire shape of every error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleError maps an application error to its HTTP status and envelope.
func HandleError(c *gin.Context, err error) {
	appErr := apperr.From(err)
	if appErr == nil {
		HandleErrorWithStatus(c, http.StatusInternalServerError, "internal_error", maskedMessage(err))
		return
	}

	switch appErr.Type {
	case apperr.TypeValidation:
		HandleErrorWithStatus(c, http.StatusBadRequest, "validation_error", appErr.Message)
	case apperr.TypeNotFound:
		HandleErrorWithStatus(c, http.StatusNotFound, "not_found", appErr.Message)
	case apperr.TypeUnauthorized:
		HandleErrorWithStatus(c, http.StatusUnauthorized, "unauthorized", appErr.Message)
	case apperr.TypeForbidden:
		HandleErrorWithStatus(c, http.StatusForbidden, "forbidden", appErr.Message)
	case apperr.TypeConflict:
		HandleErrorWithStatus(c, http.StatusConflict, "conflict", appErr.Message)
	case apperr.TypeUpstream:
		HandleErrorWithStatus(c, http.StatusBadGateway, "upstream_error", appErr.Message)
	default:
		HandleErrorWithStatus(c, http.StatusInternalServerError, "internal_error", maskedAppMessage(appErr))
	}
}

// HandleErrorWithStatus writes the envelope with an explicit status.
func HandleErrorWithStatus(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: kind, Message: message})
}

// HandleValidationError writes a 400 with the envelope.
func HandleValidationError(c *gin.Context, message string) {
	HandleErrorWithStatus(c, http.StatusBadRequest, "validation_error", message)
}

// HandleUnauthorized writes a 401 with the envelope.
func HandleUnauthorized(c *gin.Context, message string) {
	HandleErrorWithStatus(c, http.StatusUnauthorized, "unauthorized", message)
}

func maskedMessage(err error) string {
	if cfg := config.GetGlobal(); cfg != nil && cfg.IsProduction() {
		return "an internal error occurred"
	}
	if err == nil {
		return "an internal error occurred"
	}
	return err.Error()
}

func maskedAppMessage(appErr *apperr.AppError) string {
	if cfg := config.GetGlobal(); cfg != nil && cfg.IsProduction() {
		return "an internal error occurred"
	}
	return appErr.Error()
}
