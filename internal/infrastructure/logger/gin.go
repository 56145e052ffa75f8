package logger

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// gin context keys shared with the http middleware package
const (
	ginRequestIDKey = "request_id"
	ginUserIDKey    = "jwt_user_id"
	ginLoggerKey    = "logger"
)

// GinMiddleware writes one access log line per request. Handlers further down
// the chain find a request scoped logger on both the gin and request contexts.
func GinMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		ctx := WithRequestID(NewContext(req.Context(), log), c.GetString(ginRequestIDKey))
		reqLog := FromContext(ctx).With(
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
		)
		c.Request = req.WithContext(NewContext(ctx, reqLog))
		c.Set(ginLoggerKey, reqLog)

		c.Next()

		status := c.Writer.Status()
		fields := make([]zap.Field, 0, 8)
		fields = append(fields,
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", req.UserAgent()),
			zap.Int("body_size", c.Writer.Size()),
		)
		if q := req.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if uid := c.GetString(ginUserIDKey); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}
		if ce := reqLog.Check(accessLevel(status), "HTTP Request"); ce != nil {
			ce.Write(fields...)
		}
	}
}

func accessLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// Recovery turns a panic into a 500 JSON error and logs it with the stack.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			requestID := c.GetString(ginRequestIDKey)
			log.Error("Panic recovered",
				zap.String("request_id", requestID),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Any("panic", rec),
				zap.Stack("stacktrace"),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success":   false,
				"error":     fmt.Sprint(rec),
				"code":      "INTERNAL_ERROR",
				"requestId": requestID,
			})
		}()
		c.Next()
	}
}

// GinLogger returns the request logger set by GinMiddleware, or a no-op logger.
func GinLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(ginLoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
