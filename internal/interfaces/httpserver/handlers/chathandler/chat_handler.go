// Package chathandler exposes the chat turn endpoints.
package chathandler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"djigbo-server/internal/domain/chat"
	"djigbo-server/internal/infrastructure/metrics"
	"djigbo-server/internal/interfaces/httpserver/middlewares"
	"djigbo-server/internal/interfaces/httpserver/requests"
	"djigbo-server/internal/interfaces/httpserver/responses"
)

// ChatHandler handles chat turn requests.
type ChatHandler struct {
	chatService     *chat.Service
	defaultProvider chat.ProviderKind
}

// NewChatHandler creates a new chat handler. defaultProvider backs the
// provider-agnostic endpoint.
func NewChatHandler(chatService *chat.Service, defaultProvider chat.ProviderKind) *ChatHandler {
	return &ChatHandler{chatService: chatService, defaultProvider: defaultProvider}
}

// Chat serves the default chat endpoint.
func (h *ChatHandler) Chat(c *gin.Context) {
	h.complete(c, h.defaultProvider)
}

// OllamaChat pins the turn to the local inference backend.
func (h *ChatHandler) OllamaChat(c *gin.Context) {
	h.complete(c, chat.ProviderOllama)
}

// TogetherChat pins the turn to the hosted open-weights backend.
func (h *ChatHandler) TogetherChat(c *gin.Context) {
	h.complete(c, chat.ProviderTogether)
}

func (h *ChatHandler) complete(c *gin.Context, kind chat.ProviderKind) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleUnauthorized(c, "authentication required")
		return
	}

	var req requests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleValidationError(c, "messages array is required")
		return
	}

	start := time.Now()
	resp, err := h.chatService.Complete(c.Request.Context(), principal.Subject, kind, chat.Request{
		Messages:               req.Messages,
		ConversationID:         req.ConversationID,
		PreviousConversationID: req.PreviousConversationID,
		MaxTokens:              req.MaxTokens,
	})
	metrics.RecordLLMDuration(string(kind), time.Since(start).Seconds())
	if err != nil {
		metrics.RecordChatTurn(string(kind), "error")
		metrics.RecordProviderError(string(kind))
		responses.HandleError(c, err)
		return
	}

	metrics.RecordChatTurn(string(kind), "ok")
	c.JSON(http.StatusOK, resp)
}
