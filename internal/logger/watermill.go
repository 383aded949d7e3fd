package logger

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/hashicorp/go-retryablehttp"
)

// WatermillLogger adapts Logger to watermill.LoggerAdapter
type WatermillLogger struct {
	log    *Logger
	fields watermill.LogFields
}

// NewWatermillLogger returns a watermill logger writing through l
func NewWatermillLogger(l *Logger) watermill.LoggerAdapter {
	return &WatermillLogger{log: l}
}

func (w *WatermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	w.log.Errorw(msg, append(w.keysAndValues(fields), "error", err)...)
}

func (w *WatermillLogger) Info(msg string, fields watermill.LogFields) {
	w.log.Infow(msg, w.keysAndValues(fields)...)
}

func (w *WatermillLogger) Debug(msg string, fields watermill.LogFields) {
	w.log.Debugw(msg, w.keysAndValues(fields)...)
}

// Trace is logged at debug level, zap has nothing finer
func (w *WatermillLogger) Trace(msg string, fields watermill.LogFields) {
	w.log.Debugw(msg, w.keysAndValues(fields)...)
}

func (w *WatermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &WatermillLogger{log: w.log, fields: w.fields.Add(fields)}
}

func (w *WatermillLogger) keysAndValues(fields watermill.LogFields) []interface{} {
	all := w.fields.Add(fields)
	kv := make([]interface{}, 0, len(all)*2)
	for k, v := range all {
		kv = append(kv, k, v)
	}
	return kv
}

// RetryableHTTPLogger adapts Logger to retryablehttp.LeveledLogger
type RetryableHTTPLogger struct {
	log *Logger
}

var _ retryablehttp.LeveledLogger = (*RetryableHTTPLogger)(nil)

func NewRetryableHTTPLogger(l *Logger) *RetryableHTTPLogger {
	return &RetryableHTTPLogger{log: l}
}

func (r *RetryableHTTPLogger) Error(msg string, keysAndValues ...interface{}) {
	r.log.Errorw(msg, keysAndValues...)
}

func (r *RetryableHTTPLogger) Info(msg string, keysAndValues ...interface{}) {
	r.log.Infow(msg, keysAndValues...)
}

func (r *RetryableHTTPLogger) Debug(msg string, keysAndValues ...interface{}) {
	r.log.Debugw(msg, keysAndValues...)
}

func (r *RetryableHTTPLogger) Warn(msg string, keysAndValues ...interface{}) {
	r.log.Warnw(msg, keysAndValues...)
}
