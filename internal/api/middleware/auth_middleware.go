package middleware

import (
	"net/http"
	"strings"

	"epicode/internal/api/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID = "userID"
	CtxEmail  = "email"
	CtxRole   = "role"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired validates the bearer token and sets the caller's identity in
// the request context, rejecting requests without a valid token.
func AuthRequired(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// AuthOptional resolves the caller's identity when a valid bearer token is
// present but lets anonymous requests through untouched. Used on dual-mode
// routes (comment create, reactions, upvotes).
func AuthOptional(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if ok {
			if claims, err := authService.ValidateToken(token); err == nil {
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxEmail, claims.Email)
				c.Set(CtxRole, claims.Role)
			}
		}
		c.Next()
	}
}

// ActorFrom extracts the authenticated actor from the request context; the
// second return is false for anonymous requests.
func ActorFrom(c *gin.Context) (service.Actor, bool) {
	userID, exists := c.Get(CtxUserID)
	if !exists {
		return service.Actor{}, false
	}
	actor := service.Actor{ID: userID.(string)}
	if email, ok := c.Get(CtxEmail); ok {
		actor.Email = email.(string)
	}
	if role, ok := c.Get(CtxRole); ok {
		actor.Role = role.(string)
	}
	return actor, true
}
