// Package userhandler exposes profile registration and the public avatar.
package userhandler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"djigbo-server/internal/domain/user"
	"djigbo-server/internal/interfaces/httpserver/middlewares"
	"djigbo-server/internal/interfaces/httpserver/requests"
	"djigbo-server/internal/interfaces/httpserver/responses"
)

// UserHandler handles profile requests.
type UserHandler struct {
	service *user.Service
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service *user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Check reports whether the caller has registered a profile yet.
func (h *UserHandler) Check(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	profile, err := h.service.Check(c.Request.Context(), principal.Subject)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": true, "user": profile})
}

// Register creates the caller's profile.
func (h *UserHandler) Register(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	var req requests.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleValidationError(c, "nickname is required")
		return
	}

	profile, err := h.service.Register(c.Request.Context(), principal.Subject, req.Nickname, req.Avatar)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"userId": profile.ID, "user": profile})
}

// Update replaces the caller's nickname and avatar.
func (h *UserHandler) Update(c *gin.Context) {
	principal, _ := middlewares.PrincipalFromContext(c)

	var req requests.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleValidationError(c, "nickname is required")
		return
	}

	profile, err := h.service.Update(c.Request.Context(), principal.Subject, req.Nickname, req.Avatar)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// Avatar serves a user's avatar without authentication so profile images
// render in shared views. External URLs redirect; inline data URLs are decoded
// and served as image bytes with a long-lived cache header.
func (h *UserHandler) Avatar(c *gin.Context) {
	avatar, err := h.service.Avatar(c.Request.Context(), c.Param("userId"))
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	if !strings.HasPrefix(avatar, "data:") {
		c.Redirect(http.StatusFound, avatar)
		return
	}

	meta, payload, _ := strings.Cut(strings.TrimPrefix(avatar, "data:"), ",")
	contentType, _, _ := strings.Cut(meta, ";")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		responses.HandleValidationError(c, "avatar payload is not valid base64")
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, data)
}
