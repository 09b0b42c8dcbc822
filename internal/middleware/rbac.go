package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ricogpa/ricogpa-backend/internal/response"
)

// RequireAdmin lets only tokens carrying the admin flag through. Must run after RequireJWT.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if !claims.IsAdmin {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}

		c.Next()
	}
}
