package chathandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"djigbo-server/internal/domain"
	"djigbo-server/internal/domain/chat"
)

type stubProvider struct {
	kind  chat.ProviderKind
	reply string
	err   error
}

func (p *stubProvider) Kind() chat.ProviderKind { return p.kind }

func (p *stubProvider) Send(ctx context.Context, messages []chat.Message, opts chat.SendOptions) (string, error) {
	return p.reply, p.err
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(ctx context.Context, messages []chat.Message) string {
	return "summary"
}

type stubStore struct{}

func (stubStore) Save(ctx context.Context, userID, conversationID, summary string, messageCount int) error {
	return nil
}

func newRouter(t *testing.T, provider chat.ModelProvider, authenticated bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := chat.NewService(
		chat.NewProviderRegistry(provider),
		chat.NewSessionResolver(0),
		stubSummarizer{},
		stubStore{},
	)
	handler := NewChatHandler(service, provider.Kind())

	router := gin.New()
	if authenticated {
		router.Use(func(c *gin.Context) {
			c.Set("principal", domain.Principal{Subject: "auth0|tester"})
		})
	}
	router.POST("/api/chat", handler.Chat)
	return router
}

func postChat(router *gin.Engine, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChatReturnsReplyAndConversationID(t *testing.T) {
	provider := &stubProvider{kind: chat.ProviderOllama, reply: "hello there"}
	router := newRouter(t, provider, true)

	rec := postChat(router, gin.H{
		"messages": []gin.H{{"role": "user", "content": "hi"}},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hello there", resp.Content)
	assert.Regexp(t, `^conv_\d+_[a-z0-9]{9}$`, resp.ConversationID)
}

func TestChatRejectsMissingMessages(t *testing.T) {
	provider := &stubProvider{kind: chat.ProviderOllama, reply: "unused"}
	router := newRouter(t, provider, true)

	rec := postChat(router, gin.H{})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "validation_error", envelope["error"])
}

func TestChatRequiresPrincipal(t *testing.T) {
	provider := &stubProvider{kind: chat.ProviderOllama, reply: "unused"}
	router := newRouter(t, provider, false)

	rec := postChat(router, gin.H{
		"messages": []gin.H{{"role": "user", "content": "hi"}},
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChatMapsProviderFailureToBadGateway(t *testing.T) {
	provider := &stubProvider{kind: chat.ProviderOllama, err: errors.New("backend down")}
	router := newRouter(t, provider, true)

	rec := postChat(router, gin.H{
		"messages": []gin.H{{"role": "user", "content": "hi"}},
	})

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "upstream_error", envelope["error"])
}

func TestChatHonorsExplicitConversationID(t *testing.T) {
	provider := &stubProvider{kind: chat.ProviderOllama, reply: "ok"}
	router := newRouter(t, provider, true)

	rec := postChat(router, gin.H{
		"messages":        []gin.H{{"role": "user", "content": "hi"}},
		"conversation_id": "conv_1712000000000_abc123xyz",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "conv_1712000000000_abc123xyz", resp.ConversationID)
}
