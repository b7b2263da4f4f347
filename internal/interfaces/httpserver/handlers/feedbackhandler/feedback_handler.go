// Package feedbackhandler exposes feedback submission and staff review.
package feedbackhandler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"djigbo-server/internal/domain/feedback"
	"djigbo-server/internal/interfaces/httpserver/middlewares"
	"djigbo-server/internal/interfaces/httpserver/requests"
	"djigbo-server/internal/interfaces/httpserver/responses"
)

// FeedbackHandler handles feedback requests.
type FeedbackHandler struct {
	service *feedback.Service
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(service *feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit stores a new feedback entry for the caller.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	var req requests.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleValidationError(c, "feedbackText is required")
		return
	}

	entry, err := h.service.Submit(c.Request.Context(), principal.Subject, req.FeedbackText)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedbackId": entry.ID})
}

// ListMine returns the caller's own feedback.
func (h *FeedbackHandler) ListMine(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	entries, err := h.service.ListForUser(c.Request.Context(), principal.Subject)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": entries})
}

// ListAll returns feedback across all users. Routed behind the admin scope.
func (h *FeedbackHandler) ListAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	entries, err := h.service.ListAll(c.Request.Context(), limit)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": entries})
}

// Stats returns aggregate feedback figures. Routed behind the admin scope.
func (h *FeedbackHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
