package middlewares

import (
	"github.com/gin-gonic/gin"
)

var securityHeaders = map[string]string{
	"X-Frame-Options":        "DENY",
	"X-Content-Type-Options": "nosniff",
	"Referrer-Policy":        "strict-origin-when-cross-origin",
	"Permissions-Policy":     "geolocation=(), microphone=(), camera=()",
}

// SecurityHeaders sets the headers every response carries. HSTS is only
// sent over TLS.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range securityHeaders {
			c.Header(k, v)
		}
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
