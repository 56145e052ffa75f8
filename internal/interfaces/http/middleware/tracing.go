// Package middleware provides the gin middleware chain of the API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig configures the request span middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// SkipPrefixes lists paths that never get a span, e.g. "/health"
	SkipPrefixes []string
}

func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName:  "sitinfra-api",
		Enabled:      true,
		SkipPrefixes: []string{"/health", "/uploads/"},
	}
}

// TracingWithConfig starts one server span per request through otelgin.
// Spans are named "METHOD route", e.g. "GET /api/v1/banks/:id".
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	skip := cfg.SkipPrefixes
	return otelgin.Middleware(cfg.ServiceName,
		otelgin.WithGinFilter(func(c *gin.Context) bool {
			for _, prefix := range skip {
				if strings.HasPrefix(c.Request.URL.Path, prefix) {
					return false
				}
			}
			return true
		}),
	)
}

// SpanAttributes runs inside TracingWithConfig. After the handler it tags the
// span with the request and user ids and marks 5xx answers as errors.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		attrs := make([]attribute.KeyValue, 0, 2)
		if id := GetRequestID(c); id != "" {
			attrs = append(attrs, attribute.String("request_id", id))
		}
		if id := GetJWTUserID(c); id != "" {
			attrs = append(attrs, attribute.String("user_id", id))
		}
		span.SetAttributes(attrs...)

		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
