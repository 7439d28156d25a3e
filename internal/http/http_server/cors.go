package http_server

import (
	"chatrelaygo/internal/config"
	"net/http"

	"github.com/gin-gonic/gin"
)

// corsMiddleware applies the configured origin allow-list. Credentials are
// only offered for non-wildcard matches, as browsers reject the combination
// of "*" and credentials.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	wildcard := len(allowed) == 1 && allowed[0] == "*"

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && config.OriginAllowed(allowed, origin) {
			if wildcard {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Origin, X-Requested-With, Accept")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
