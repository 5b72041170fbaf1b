package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/benms/next-tailwind-amazona/services"
)

const sessionKey = "session"

// ValidateToken extracts the current session from the Authorization
// header. The token is parsed and checked before any guarded handler
// runs; a missing or invalid token aborts with 401.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		c.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		c.Abort()
		return
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		c.Abort()
		return
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	c.Set(sessionKey, &services.Session{
		UserID:  userID,
		Name:    name,
		Email:   email,
		IsAdmin: isAdmin,
	})

	c.Next()
}

// RequireAdmin gates administrative endpoints. It runs after
// ValidateToken and rejects non-admin sessions with 401 before any other
// validation happens.
func RequireAdmin(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil || !session.IsAdmin {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "admin sign in required"})
		c.Abort()
		return
	}
	c.Next()
}

// SessionFromContext returns the session set by ValidateToken, or nil.
func SessionFromContext(c *gin.Context) *services.Session {
	val, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	session, ok := val.(*services.Session)
	if !ok {
		return nil
	}
	return session
}
