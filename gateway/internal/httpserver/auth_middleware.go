package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yahya-git/To-Do-List-MS/pkg/identity"
	"github.com/Yahya-git/To-Do-List-MS/pkg/token"
)

// AuthMiddleware validates the bearer token and stashes the caller's
// identity for the proxy layer to forward as headers.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := token.Extract(c.Request)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		claims, err := token.Parse(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		identity.SetGin(c, identity.CurrentUser{ID: claims.UserID, Email: claims.Email})
		c.Next()
	}
}
