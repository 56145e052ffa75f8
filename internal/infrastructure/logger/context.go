package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type scopeKey struct{}

// scope is what a request carries for logging. It is copied on every
// change so parent contexts never see fields added further down.
type scope struct {
	log       *zap.Logger
	requestID string
	userID    string
}

func scopeOf(ctx context.Context) scope {
	if s, ok := ctx.Value(scopeKey{}).(scope); ok {
		return s
	}
	return scope{log: zap.NewNop()}
}

// NewContext attaches log to ctx, keeping request and user IDs already set.
func NewContext(ctx context.Context, log *zap.Logger) context.Context {
	s := scopeOf(ctx)
	s.log = log
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext returns the logger attached to ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	return scopeOf(ctx).log
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	s := scopeOf(ctx)
	s.requestID = requestID
	s.log = s.log.With(zap.String("request_id", requestID))
	return context.WithValue(ctx, scopeKey{}, s)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	s := scopeOf(ctx)
	s.userID = userID
	s.log = s.log.With(zap.String("user_id", userID))
	return context.WithValue(ctx, scopeKey{}, s)
}

func RequestID(ctx context.Context) string { return scopeOf(ctx).requestID }

func UserID(ctx context.Context) string { return scopeOf(ctx).userID }

// TraceID is the hex trace ID of the span in ctx, or "".
func TraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}

// L is the logger for ctx with trace_id and span_id added when a span is active.
//
//	logger.L(ctx).Info("bank created", zap.String("bank_id", id))
func L(ctx context.Context) *zap.Logger {
	log := FromContext(ctx)
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return log
	}
	return log.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}
