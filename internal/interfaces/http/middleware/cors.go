package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig allows every origin, which the front end relies on
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", "Authorization", RequestIDHeader, "X-Body-Encoding", "Accept", "Origin", "Cache-Control"},
		ExposeHeaders: []string{RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
}

func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig answers preflight requests itself with 204, so they never
// reach the router or the JWT check. Empty lists take the defaults.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	def := DefaultCORSConfig()
	origins := orDefault(cfg.AllowOrigins, def.AllowOrigins)
	anyOrigin := slices.Contains(origins, "*")

	shared := http.Header{}
	shared.Set("Access-Control-Allow-Methods", strings.Join(orDefault(cfg.AllowMethods, def.AllowMethods), ", "))
	shared.Set("Access-Control-Allow-Headers", strings.Join(orDefault(cfg.AllowHeaders, def.AllowHeaders), ", "))
	if len(cfg.ExposeHeaders) > 0 {
		shared.Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
	}
	if cfg.MaxAge > 0 {
		shared.Set("Access-Control-Max-Age", strconv.FormatInt(int64(cfg.MaxAge/time.Second), 10))
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		origin := c.GetHeader("Origin")
		switch {
		case anyOrigin:
			h.Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(origins, origin):
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
		default:
			origin = ""
		}
		if anyOrigin || origin != "" {
			for k, v := range shared {
				h[k] = v
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
