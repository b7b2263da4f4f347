// Package conversationhandler exposes the stored conversation summaries.
package conversationhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"djigbo-server/internal/domain/conversation"
	"djigbo-server/internal/interfaces/httpserver/middlewares"
	"djigbo-server/internal/interfaces/httpserver/responses"
)

// ConversationHandler handles conversation summary requests. Every operation
// is scoped to the authenticated caller.
type ConversationHandler struct {
	service *conversation.Service
}

// NewConversationHandler creates a new conversation handler.
func NewConversationHandler(service *conversation.Service) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// List returns the caller's summaries, most recently updated first.
func (h *ConversationHandler) List(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	summaries, err := h.service.List(c.Request.Context(), principal.Subject)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries, "count": len(summaries)})
}

// Get returns one summary by conversation identifier.
func (h *ConversationHandler) Get(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	summary, err := h.service.Get(c.Request.Context(), principal.Subject, c.Param("id"))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": summary})
}

// Delete removes one summary by conversation identifier.
func (h *ConversationHandler) Delete(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	if err := h.service.Delete(c.Request.Context(), principal.Subject, c.Param("id")); err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}

// Stats returns aggregate figures over every stored summary. Routed behind the
// admin scope.
func (h *ConversationHandler) Stats(c *gin.Context) {
	stats, err := h.service.GlobalStats(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
