package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods  = "GET, HEAD, POST, DELETE, OPTIONS"
	corsAllowHeaders  = "Authorization, Content-Type, X-Request-Id"
	corsExposeHeaders = "X-Request-Id, X-Status-Message, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset"
)

// CORSMiddleware allows cross-origin requests from allowedOrigins. A "*" entry
// allows every origin.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
			continue
		}
		origins[strings.ToLower(o)] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
			allowed = true
		case origin != "":
			if _, ok := origins[strings.ToLower(origin)]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				allowed = true
			}
		}

		if allowed {
			c.Header("Access-Control-Expose-Headers", corsExposeHeaders)
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		if allowed {
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
				c.Header("Access-Control-Allow-Headers", requested)
				c.Writer.Header().Add("Vary", "Access-Control-Request-Headers")
			} else {
				c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			}
			c.Header("Access-Control-Max-Age", "86400")
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}
