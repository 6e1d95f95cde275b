package middleware

import (
	"net/http"
	"strings"

	"servicefinder/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxIsAdmin  = "isAdmin"
)

// JWTAuthMiddleware validates the bearer token and stashes the caller's
// identity in the request context. Issuing tokens is the account surface's
// job; this layer only consumes them.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
			return
		}
		username, _ := claims["username"].(string)
		isAdmin, _ := claims["admin"].(bool)

		c.Set(CtxUserID, sub)
		c.Set(CtxUsername, username)
		c.Set(CtxIsAdmin, isAdmin)
		c.Next()
	}
}

// AdminOnlyMiddleware short-circuits requests from non-admin callers. Must
// run after JWTAuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
