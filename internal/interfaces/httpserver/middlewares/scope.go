package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"djigbo-server/internal/interfaces/httpserver/responses"
)

// AdminScope guards the cross-user views.
const AdminScope = "admin"

// RequireScope rejects requests whose principal lacks the given scope.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.HasScope(scope) {
			responses.HandleErrorWithStatus(c, http.StatusForbidden, "forbidden", scope+" scope required")
			return
		}
		c.Next()
	}
}
