package eventbus

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// ZapLoggerAdapter adapts a zap logger to Watermill's LoggerAdapter.
type ZapLoggerAdapter struct {
	logger *zap.Logger
}

// NewZapLoggerAdapter creates a new Watermill logger adapter.
func NewZapLoggerAdapter(logger *zap.Logger) watermill.LoggerAdapter {
	return &ZapLoggerAdapter{logger: logger.With(zap.String("component", "eventbus"))}
}

func (l *ZapLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Error(msg, append(toZapFields(fields), zap.Error(err))...)
}

func (l *ZapLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.logger.Info(msg, toZapFields(fields)...)
}

func (l *ZapLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, toZapFields(fields)...)
}

// Trace maps to debug; zap has no lower level.
func (l *ZapLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &ZapLoggerAdapter{logger: l.logger.With(toZapFields(fields)...)}
}

func toZapFields(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
