package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/jwt"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the Bearer token and stores the verified
// identity in the request context. Handlers downstream trust this
// identity unconditionally.
func JWTAuthMiddleware(jwtService *jwt.Service, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			message := "Invalid authorization token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = "Authorization token has expired"
			}
			log.Warn("Rejected request with bad token", "path", c.Request.URL.Path, "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID set by
// JWTAuthMiddleware, or zero when the request is unauthenticated.
func CurrentUserID(c *gin.Context) uint {
	if v, exists := c.Get("userId"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
