// Package logger builds the zap logger used across the service and carries
// request scoped loggers through context.Context.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json or console
	Output      string // stdout, stderr or a file path
	TimeFormat  string
	ServiceName string
}

const defaultTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// New builds a logger from cfg. A nil cfg gives an info level console logger
// on stdout. Unknown levels fall back to info.
func New(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	output := cfg.Output
	if output == "" {
		output = "stdout"
	}
	sink, _, err := zap.Open(output)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output %q: %w", output, err)
	}

	log := zap.New(
		zapcore.NewCore(newEncoder(cfg), sink, parseLevel(cfg.Level)),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if cfg.ServiceName != "" {
		log = log.With(zap.String("service", cfg.ServiceName))
	}
	return log, nil
}

func parseLevel(level string) zapcore.Level {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "warning":
		return zapcore.WarnLevel
	default:
		parsed, err := zapcore.ParseLevel(l)
		if err != nil {
			return zapcore.InfoLevel
		}
		return parsed
	}
}

func newEncoder(cfg *Config) zapcore.Encoder {
	layout := cfg.TimeFormat
	if layout == "" {
		layout = defaultTimeFormat
	}
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(layout)
	ec.EncodeDuration = zapcore.MillisDurationEncoder

	if strings.EqualFold(cfg.Format, "json") {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync(log *zap.Logger) error {
	if err := log.Sync(); err != nil && !strings.Contains(err.Error(), "inappropriate ioctl") &&
		!strings.Contains(err.Error(), "invalid argument") {
		return err
	}
	return nil
}
