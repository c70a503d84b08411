package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes rejects request bodies over the configured ceiling before the
// handler reads them.
func MaxBodyBytes(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// SecurityHeaders sets the standard hardening headers on every response.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' https://api.mapbox.com https://cdnjs.cloudflare.com; "+
				"style-src 'self' 'unsafe-inline' https://api.mapbox.com https://fonts.googleapis.com; "+
				"font-src 'self' https://fonts.gstatic.com; "+
				"img-src 'self' data: blob: https://api.mapbox.com https://*.mapbox.com; "+
				"connect-src 'self' https://api.mapbox.com https://*.mapbox.com https://events.mapbox.com; "+
				"worker-src 'self' blob:; "+
				"child-src blob:")
		c.Next()
	}
}
