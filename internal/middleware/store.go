package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playmo/smartdns-api/internal/store"
)

// RequireStore answers 500 before any handler runs when the document store
// never came up.
func RequireStore(s store.Store) gin.HandlerFunc {
	available := store.Available(s)
	return func(c *gin.Context) {
		if !available {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": store.ErrUnavailable.Error()})
			return
		}
		c.Next()
	}
}
