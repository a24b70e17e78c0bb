package middleware

import (
	"net/http"
	"strings"

	"github.com/garghot/food-client/auth"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
	emailKey  = "email"
)

// ValidateToken accepts a session token in the Authorization header, with or
// without the "Bearer " prefix, and stores the user in the context.
func ValidateToken(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalToken stores the user when the request carries a valid session
// token and lets the request through either way.
func OptionalToken(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := tokens.Parse(tokenString); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	tokenString := strings.TrimSpace(c.GetHeader("Authorization"))
	if tokenString == "" {
		// browsers cannot set headers on websocket upgrades
		tokenString = c.Query("token")
	}
	if after, ok := strings.CutPrefix(tokenString, "Bearer "); ok {
		tokenString = strings.TrimSpace(after)
	}
	return tokenString
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(userIDKey, claims.UserID)
	c.Set(roleKey, claims.Role)
	c.Set(emailKey, claims.Email)
}

// UserID returns the user set by ValidateToken.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(userIDKey)
	return id, id != ""
}

func Role(c *gin.Context) string { return c.GetString(roleKey) }

func Email(c *gin.Context) string { return c.GetString(emailKey) }
