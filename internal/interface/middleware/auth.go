package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devconnect-api/pkg/helpers"
	"github.com/oksasatya/devconnect-api/pkg/response"
)

// TokenHeader is the request header carrying the identity token.
const TokenHeader = "x-auth-token"

// CtxUserIDKey is the Gin context key under which the resolved user id is set.
const CtxUserIDKey = "userID"

// Auth is the gate in front of every protected route: it reads the token
// header, verifies it, and attaches the resolved user id to the context.
// Missing or invalid tokens reject the request before any business logic
// runs. Verification is purely signature + expiry; no store is consulted.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "no token, authorization denied", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "token is not valid", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
