package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthRequired rejects requests without a valid session
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
			return
		}
		c.Next()
	}
}

// SuperuserRequired rejects requests whose session is not a superuser's
func SuperuserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
			return
		}
		if !session.IsSuperuser {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Superuser rights required"})
			return
		}
		c.Next()
	}
}
