package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// GormLogger sends gorm's SQL trace to zap. Statements are logged at debug,
// slow ones at warn and failures at error. Request and trace ids found on
// the statement context are attached.
type GormLogger struct {
	log           *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	logNotFound   bool
}

type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is slow; 0 disables it
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slowThreshold = threshold }
}

// WithIgnoreRecordNotFoundError controls whether gorm.ErrRecordNotFound is logged as an error
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(l *GormLogger) { l.logNotFound = !ignore }
}

func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	l := &GormLogger{
		log:           log.Named("gorm"),
		level:         level,
		slowThreshold: defaultSlowQuery,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ParseGormLevel derives the gorm level from the application log level.
// Statements are only traced when the application logs at debug.
func ParseGormLevel(level string) gormlogger.LogLevel {
	switch parseLevel(level).String() {
	case "debug":
		return gormlogger.Info
	case "error", "dpanic", "panic", "fatal":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.log.Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	notFound := errors.Is(err, gormlogger.ErrRecordNotFound)
	failed := err != nil && (l.logNotFound || !notFound)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var write func(string, ...zap.Field)
	var msg string
	switch {
	case failed && l.level >= gormlogger.Error:
		write, msg = l.log.Error, "SQL Error"
	case slow && l.level >= gormlogger.Warn:
		write, msg = l.log.Warn, "SLOW SQL >= "+l.slowThreshold.String()
	case !failed && !notFound && l.level >= gormlogger.Info:
		write, msg = l.log.Debug, "SQL Query"
	default:
		return
	}

	sql, rows := fc()
	fields := append(requestFields(ctx),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	)
	if failed {
		fields = append(fields, zap.Error(err))
	}
	write(msg, fields...)
}

func requestFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 6)
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := TraceID(ctx); id != "" {
		fields = append(fields, zap.String("trace_id", id))
	}
	return fields
}
