package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"djigbo-server/internal/domain"
	authvalidator "djigbo-server/internal/infrastructure/auth"
	"djigbo-server/internal/infrastructure/metrics"
	"djigbo-server/internal/interfaces/httpserver/responses"
)

const principalContextKey = "principal"

// AuthMiddleware validates bearer tokens issued by the identity provider and
// stores the resulting principal in the request context. Any failure yields
// 401 with the standard envelope; no request proceeds unauthenticated.
func AuthMiddleware(validator *authvalidator.Auth0Validator, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			logger.Warn().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("unauthenticated request")
			metrics.RecordAuth("missing")
			responses.HandleUnauthorized(c, "authentication required")
			return
		}

		claims, err := validator.Validate(c.Request.Context(), token)
		if err != nil {
			logger.Warn().Err(err).Msg("jwt validation failed")
			metrics.RecordAuth("rejected")
			responses.HandleUnauthorized(c, "invalid or expired token")
			return
		}

		metrics.RecordAuth("ok")
		setPrincipal(c, domain.Principal{
			Subject:  claims.Subject,
			Email:    claims.Email,
			Name:     claims.Name,
			Nickname: claims.Nickname,
			Picture:  claims.Picture,
			Scopes:   claims.Scopes,
		})
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}

func setPrincipal(c *gin.Context, principal domain.Principal) {
	c.Set(principalContextKey, principal)
	c.Set("user_id", principal.Subject)
	if principal.Email != "" {
		c.Set("user_email", principal.Email)
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
