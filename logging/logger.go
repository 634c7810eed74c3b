// Package logging provides the process-wide logger sink described in
// spec.md §6: a two-state (enabled/disabled) sink built on
// go.uber.org/zap. It is a pure observability collaborator — nothing
// in the annealing package depends on whether logging is enabled, and
// Log is a true no-op (no formatting, no I/O) when disabled.
package logging

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a nil-safe, enable/disable-able sink. The zero value is
// usable and behaves as disabled.
type Logger struct {
	enabled atomic.Bool
	zap     *zap.SugaredLogger
}

// New constructs a Logger. When enabled is true, entries are written to
// a zap console encoder on stdout; when filePath is non-empty, entries
// are additionally written to that file. enabled may be flipped later
// with SetEnabled.
func New(enabled bool, filePath string) (*Logger, error) {
	cfg := zapcore.EncoderConfig{
		TimeKey:      "timestamp",
		MessageKey:   "message",
		LevelKey:     "",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		LineEnding:   zapcore.DefaultLineEnding,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(cfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stdout)), zapcore.InfoLevel),
	}

	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(f), zapcore.InfoLevel))
	}

	core := zapcore.NewTee(cores...)
	logger := &Logger{zap: zap.New(core).Sugar()}
	logger.enabled.Store(enabled)
	return logger, nil
}

// SetEnabled toggles the sink without reconstructing it.
func (l *Logger) SetEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.enabled.Store(enabled)
}

// Log appends "[timestamp] message" to the sink when enabled; it is a
// no-op when disabled. The message arrives already formatted (the
// annealing package formats it before calling Log), so the caller's
// formatting work is done whether or not the sink is enabled. A nil
// Logger is always disabled.
func (l *Logger) Log(message string) {
	if l == nil || !l.enabled.Load() {
		return
	}
	l.zap.Info(message)
}

// Sync flushes any buffered log entries; callers should defer it after
// constructing a file-backed Logger.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}
