package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityConfig holds configuration for security headers
type SecurityConfig struct {
	// HSTSMaxAge enables Strict-Transport-Security when positive
	HSTSMaxAge            time.Duration
	HSTSIncludeSubdomains bool
	// ContentSecurityPolicy is sent as is; empty disables the header
	ContentSecurityPolicy string
}

// DefaultSecurityConfig leaves HSTS off; TLS terminates at the proxy
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
	}
}

func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	headers := http.Header{}
	headers.Set("X-Frame-Options", "DENY")
	headers.Set("X-Content-Type-Options", "nosniff")
	headers.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	if cfg.ContentSecurityPolicy != "" {
		headers.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
	}
	if cfg.HSTSMaxAge > 0 {
		hsts := "max-age=" + strconv.FormatInt(int64(cfg.HSTSMaxAge/time.Second), 10)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		headers.Set("Strict-Transport-Security", hsts)
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for k, v := range headers {
			h[k] = v
		}
		c.Next()
	}
}
